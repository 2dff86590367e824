package force

import "math"

// Collide keeps bodies from overlapping by treating each as a disc and
// pushing apart any pair whose predicted positions intersect.
type Collide struct {
	radius     func(i int) float64
	strength   float64
	iterations int

	bodies []*Body
	rnd    Rand
	radii  []float64
}

// NewCollide returns a collision force using radius(i) for body i.
func NewCollide(radius func(i int) float64) *Collide {
	return &Collide{radius: radius, strength: 1, iterations: 1}
}

// WithStrength sets how much of the overlap is resolved per iteration.
func (c *Collide) WithStrength(s float64) *Collide {
	c.strength = s
	return c
}

// WithIterations sets the passes made per tick.
func (c *Collide) WithIterations(n int) *Collide {
	c.iterations = n
	return c
}

// Initialize implements Force.
func (c *Collide) Initialize(bodies []*Body, rnd Rand) {
	c.bodies = bodies
	c.rnd = rnd
	c.radii = make([]float64, len(bodies))
	for i := range bodies {
		c.radii[i] = c.radius(i)
	}
}

// Apply implements Force. Pairs are checked exhaustively; the scenes this
// drives hold a few hundred bodies at most.
func (c *Collide) Apply(float64) {
	n := len(c.bodies)
	for k := 0; k < c.iterations; k++ {
		for i := 0; i < n; i++ {
			a := c.bodies[i]
			ri := c.radii[i]
			ri2 := ri * ri
			xi, yi := a.X+a.VX, a.Y+a.VY
			for j := i + 1; j < n; j++ {
				b := c.bodies[j]
				rj := c.radii[j]
				r := ri + rj
				x := xi - b.X - b.VX
				y := yi - b.Y - b.VY
				l := x*x + y*y
				if l >= r*r {
					continue
				}
				if x == 0 {
					x = jiggle(c.rnd)
					l += x * x
				}
				if y == 0 {
					y = jiggle(c.rnd)
					l += y * y
				}
				l = math.Sqrt(l)
				l = (r - l) / l * c.strength
				x *= l
				y *= l
				rj2 := rj * rj
				w := rj2 / (ri2 + rj2)
				a.VX += x * w
				a.VY += y * w
				b.VX -= x * (1 - w)
				b.VY -= y * (1 - w)
			}
		}
	}
}
