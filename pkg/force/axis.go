package force

// Axis pulls each body toward a fixed coordinate on one axis, with a spring
// proportional to the distance.
type Axis struct {
	vertical bool
	target   float64
	strength float64
	bodies   []*Body
}

// NewX pulls bodies toward the vertical line x.
func NewX(x float64) *Axis {
	return &Axis{target: x, strength: 0.1}
}

// NewY pulls bodies toward the horizontal line y.
func NewY(y float64) *Axis {
	return &Axis{vertical: true, target: y, strength: 0.1}
}

// WithStrength sets the spring constant.
func (a *Axis) WithStrength(s float64) *Axis {
	a.strength = s
	return a
}

// Target returns the coordinate bodies are pulled toward.
func (a *Axis) Target() float64 { return a.target }

// Strength returns the spring constant.
func (a *Axis) Strength() float64 { return a.strength }

// Initialize implements Force.
func (a *Axis) Initialize(bodies []*Body, _ Rand) {
	a.bodies = bodies
}

// Apply implements Force.
func (a *Axis) Apply(alpha float64) {
	k := a.strength * alpha
	for _, b := range a.bodies {
		if a.vertical {
			b.VY += (a.target - b.Y) * k
		} else {
			b.VX += (a.target - b.X) * k
		}
	}
}
