package force

import (
	"log"

	"gonum.org/v1/gonum/spatial/barneshut"
	"gonum.org/v1/gonum/spatial/r2"
)

// particle adapts a Body to barneshut.Particle2 with unit mass.
type particle struct{ b *Body }

func (p particle) Coord2() r2.Vec { return r2.Vec{X: p.b.X, Y: p.b.Y} }
func (p particle) Mass() float64  { return 1 }

// ManyBody applies an inverse-distance force between every pair of bodies,
// approximated with a Barnes-Hut tree. Negative strength repels.
type ManyBody struct {
	strength    float64
	theta       float64
	distanceMin float64

	bodies    []*Body
	particles []barneshut.Particle2
	plane     barneshut.Plane
	forces    []r2.Vec
}

// NewManyBody returns a repulsive force with d3's defaults.
func NewManyBody() *ManyBody {
	return &ManyBody{strength: -30, theta: 0.9, distanceMin: 1}
}

// WithStrength sets the per-body charge.
func (m *ManyBody) WithStrength(s float64) *ManyBody {
	m.strength = s
	return m
}

// WithTheta sets the Barnes-Hut opening criterion.
func (m *ManyBody) WithTheta(t float64) *ManyBody {
	m.theta = t
	return m
}

// WithDistanceMin sets the separation below which the force stops growing.
func (m *ManyBody) WithDistanceMin(d float64) *ManyBody {
	m.distanceMin = d
	return m
}

// Strength returns the per-body charge.
func (m *ManyBody) Strength() float64 { return m.strength }

// Initialize implements Force.
func (m *ManyBody) Initialize(bodies []*Body, _ Rand) {
	m.bodies = bodies
	m.particles = make([]barneshut.Particle2, len(bodies))
	for i, b := range bodies {
		m.particles[i] = particle{b}
	}
	m.plane = barneshut.Plane{Particles: m.particles}
	m.forces = make([]r2.Vec, len(bodies))
}

// Apply implements Force.
func (m *ManyBody) Apply(alpha float64) {
	if len(m.bodies) < 2 {
		return
	}
	if err := m.plane.Reset(); err != nil {
		log.Printf("[force] many-body tree rebuild failed: %v", err)
		return
	}

	minSq := m.distanceMin * m.distanceMin
	k := m.strength * alpha
	charge := func(_, _ barneshut.Particle2, _, m2 float64, v r2.Vec) r2.Vec {
		l := r2.Norm2(v)
		if l == 0 {
			return r2.Vec{}
		}
		if l < minSq {
			l = minSq
		}
		return r2.Scale(k*m2/l, v)
	}

	// Positions must not move while the tree is being queried.
	for i, p := range m.particles {
		m.forces[i] = m.plane.ForceOn(p, m.theta, charge)
	}
	for i, b := range m.bodies {
		b.VX += m.forces[i].X
		b.VY += m.forces[i].Y
	}
}
