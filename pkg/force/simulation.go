// Package force implements a continuous force-directed layout in the style
// of d3-force: bodies carry a position and velocity, named forces nudge
// velocities each tick, and a cooling parameter (alpha) scales the nudges.
package force

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Rand is the random source used to break ties between coincident bodies.
type Rand interface {
	Float64() float64
}

// Body is a simulated point. Fixed, when set, overrides the position
// computed by the forces.
type Body struct {
	X, Y   float64
	VX, VY float64
	Fixed  *r2.Vec
}

// Pin holds the body at (x, y) until Release is called.
func (b *Body) Pin(x, y float64) {
	b.Fixed = &r2.Vec{X: x, Y: y}
}

// Release hands the body back to the forces.
func (b *Body) Release() {
	b.Fixed = nil
}

// Pinned reports whether the body is held in place.
func (b *Body) Pinned() bool {
	return b.Fixed != nil
}

// Pos returns the current position.
func (b *Body) Pos() r2.Vec {
	return r2.Vec{X: b.X, Y: b.Y}
}

// Force adjusts body velocities. Initialize is called whenever the force is
// installed on a simulation.
type Force interface {
	Initialize(bodies []*Body, rnd Rand)
	Apply(alpha float64)
}

const (
	defaultAlphaMin      = 0.001
	defaultVelocityDecay = 0.4
)

// Simulation advances a set of bodies under named forces.
type Simulation struct {
	bodies []*Body
	rnd    Rand

	forces map[string]Force
	order  []string

	alpha         float64
	alphaMin      float64
	alphaDecay    float64
	alphaTarget   float64
	velocityDecay float64

	running bool
	onTick  []func()
}

// New creates a running simulation at alpha 1 with d3's default decay.
func New(bodies []*Body, rnd Rand) *Simulation {
	return &Simulation{
		bodies:        bodies,
		rnd:           rnd,
		forces:        make(map[string]Force),
		alpha:         1,
		alphaMin:      defaultAlphaMin,
		alphaDecay:    1 - math.Pow(defaultAlphaMin, 1.0/300),
		velocityDecay: defaultVelocityDecay,
		running:       true,
	}
}

// Bodies returns the simulated bodies.
func (s *Simulation) Bodies() []*Body { return s.bodies }

// SetForce installs f under name, replacing any force of the same name but
// keeping its position in the application order. A nil force removes it.
func (s *Simulation) SetForce(name string, f Force) *Simulation {
	if f == nil {
		return s.RemoveForce(name)
	}
	if _, ok := s.forces[name]; !ok {
		s.order = append(s.order, name)
	}
	f.Initialize(s.bodies, s.rnd)
	s.forces[name] = f
	return s
}

// Force returns the named force or nil.
func (s *Simulation) Force(name string) Force {
	return s.forces[name]
}

// RemoveForce uninstalls the named force.
func (s *Simulation) RemoveForce(name string) *Simulation {
	if _, ok := s.forces[name]; !ok {
		return s
	}
	delete(s.forces, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return s
}

// Alpha returns the current cooling parameter.
func (s *Simulation) Alpha() float64 { return s.alpha }

// SetAlpha sets the cooling parameter directly.
func (s *Simulation) SetAlpha(a float64) *Simulation {
	s.alpha = a
	return s
}

// AlphaTarget returns the value alpha decays toward.
func (s *Simulation) AlphaTarget() float64 { return s.alphaTarget }

// SetAlphaTarget sets the value alpha decays toward.
func (s *Simulation) SetAlphaTarget(a float64) *Simulation {
	s.alphaTarget = a
	return s
}

// SetAlphaDecay sets the per-tick approach rate of alpha to its target.
// Zero keeps alpha constant so the layout never settles.
func (s *Simulation) SetAlphaDecay(d float64) *Simulation {
	s.alphaDecay = d
	return s
}

// SetAlphaMin sets the alpha below which Advance stops the simulation.
func (s *Simulation) SetAlphaMin(m float64) *Simulation {
	s.alphaMin = m
	return s
}

// SetVelocityDecay sets the fraction of velocity lost per tick.
func (s *Simulation) SetVelocityDecay(d float64) *Simulation {
	s.velocityDecay = d
	return s
}

// OnTick registers fn to run after every Advance.
func (s *Simulation) OnTick(fn func()) *Simulation {
	s.onTick = append(s.onTick, fn)
	return s
}

// Reheat raises the alpha target to a and lifts alpha to at least a.
func (s *Simulation) Reheat(a float64) *Simulation {
	s.alphaTarget = a
	if s.alpha < a {
		s.alpha = a
	}
	return s.Restart()
}

// Restart resumes a stopped simulation.
func (s *Simulation) Restart() *Simulation {
	s.running = true
	return s
}

// Stop halts Advance until Restart.
func (s *Simulation) Stop() *Simulation {
	s.running = false
	return s
}

// Running reports whether Advance will step.
func (s *Simulation) Running() bool { return s.running }

// Step performs one relaxation pass without invoking tick callbacks.
func (s *Simulation) Step() {
	s.alpha += (s.alphaTarget - s.alpha) * s.alphaDecay

	for _, name := range s.order {
		s.forces[name].Apply(s.alpha)
	}

	keep := 1 - s.velocityDecay
	for _, b := range s.bodies {
		if b.Fixed != nil {
			b.X, b.Y = b.Fixed.X, b.Fixed.Y
			b.VX, b.VY = 0, 0
			continue
		}
		b.VX *= keep
		b.VY *= keep
		b.X += b.VX
		b.Y += b.VY
	}
}

// Advance steps once if running, notifies tick listeners and stops the
// simulation once alpha has cooled below the minimum. It reports whether a
// step happened.
func (s *Simulation) Advance() bool {
	if !s.running {
		return false
	}
	s.Step()
	for _, fn := range s.onTick {
		fn()
	}
	if s.alpha < s.alphaMin {
		s.running = false
	}
	return true
}

func jiggle(rnd Rand) float64 {
	if rnd == nil {
		return 1e-6
	}
	return (rnd.Float64() - 0.5) * 1e-6
}
