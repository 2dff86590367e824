// Package scene synthesizes the random network drawn behind the page: nodes
// scattered around the viewport center, links between them and faint
// streak rays anchored to the inner nodes.
package scene

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/sudorandom/network-viz/pkg/force"
	"gonum.org/v1/gonum/spatial/r2"
)

// Rand is the random source consumed by the generators. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed source. Seed 0 seeds from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height float64
}

// Center returns the midpoint of the viewport.
func (v Viewport) Center() r2.Vec {
	return r2.Vec{X: v.Width / 2, Y: v.Height / 2}
}

// Node is a drawn vertex. Only the embedded body moves after creation.
type Node struct {
	force.Body

	ID        int
	Radius    float64
	Color     color.RGBA
	DistRatio float64
}

// Link joins two nodes by ID.
type Link struct {
	Source, Target int
	Color          color.RGBA
	AvgDist        float64
}

// Streak is a short ray cast from an anchor node at a fixed angle.
type Streak struct {
	Node      int
	Angle     float64
	Color     color.RGBA
	Opacity   float64
	DistRatio float64
}

// Scene is the generated set of entities.
type Scene struct {
	Nodes   []*Node
	Links   []Link
	Streaks []Streak

	Center    r2.Vec
	MaxRadius float64

	// DroppedLinks counts link draws discarded as self pairs or duplicates.
	DroppedLinks int
}

// Bodies returns the simulated part of every node, indexed like Nodes.
func (s *Scene) Bodies() []*force.Body {
	bodies := make([]*force.Body, len(s.Nodes))
	for i, n := range s.Nodes {
		bodies[i] = &n.Body
	}
	return bodies
}

// Edges returns the links as simulation edges.
func (s *Scene) Edges() []force.Edge {
	edges := make([]force.Edge, len(s.Links))
	for i, l := range s.Links {
		edges[i] = force.Edge{Source: l.Source, Target: l.Target}
	}
	return edges
}

// Radius returns the radius of node i, for collision sizing.
func (s *Scene) Radius(i int) float64 {
	return s.Nodes[i].Radius
}
