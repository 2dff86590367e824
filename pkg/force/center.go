package force

// Center translates all bodies together so their mean position moves
// toward a point. It does not change relative positions or velocities.
type Center struct {
	x, y     float64
	strength float64
	bodies   []*Body
}

// NewCenter returns a centering force at (x, y) with full strength.
func NewCenter(x, y float64) *Center {
	return &Center{x: x, y: y, strength: 1}
}

// WithStrength sets the fraction of the offset corrected per tick.
func (c *Center) WithStrength(s float64) *Center {
	c.strength = s
	return c
}

// Point returns the centering target.
func (c *Center) Point() (x, y float64) { return c.x, c.y }

// Strength returns the correction fraction.
func (c *Center) Strength() float64 { return c.strength }

// Initialize implements Force.
func (c *Center) Initialize(bodies []*Body, _ Rand) {
	c.bodies = bodies
}

// Apply implements Force.
func (c *Center) Apply(float64) {
	n := len(c.bodies)
	if n == 0 {
		return
	}
	var sx, sy float64
	for _, b := range c.bodies {
		sx += b.X
		sy += b.Y
	}
	dx := (c.x - sx/float64(n)) * c.strength
	dy := (c.y - sy/float64(n)) * c.strength
	for _, b := range c.bodies {
		b.X += dx
		b.Y += dy
	}
}
