package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/dominikbraun/graph"
	"github.com/sudorandom/network-viz/pkg/config"
)

const (
	minNodeRadius  = 3.5
	nodeRadiusSpan = 2.5
)

// Generator synthesizes scenes from a scene config and a random source.
type Generator struct {
	cfg    config.SceneConfig
	rnd    Rand
	colors *ColorPolicy
}

// NewGenerator parses the configured palettes.
func NewGenerator(cfg config.SceneConfig, rnd Rand) (*Generator, error) {
	warm, err := ParsePalette(cfg.WarmPalette)
	if err != nil {
		return nil, fmt.Errorf("warm palette: %w", err)
	}
	cool, err := ParsePalette(cfg.CoolPalette)
	if err != nil {
		return nil, fmt.Errorf("cool palette: %w", err)
	}
	return &Generator{cfg: cfg, rnd: rnd, colors: NewColorPolicy(warm, cool, rnd)}, nil
}

// Colors returns the color policy used for nodes and links.
func (g *Generator) Colors() *ColorPolicy { return g.colors }

// Generate builds nodes, links and streaks for the viewport.
func (g *Generator) Generate(vp Viewport) *Scene {
	center := vp.Center()
	s := &Scene{
		Center:    center,
		MaxRadius: math.Min(vp.Width, vp.Height) * g.cfg.MaxRadiusFraction,
	}
	if g.cfg.Nodes <= 0 {
		return s
	}
	g.placeNodes(s)
	g.linkNodes(s)
	g.castStreaks(s)
	return s
}

// placeNodes scatters nodes in polar coordinates. Raising a uniform draw to
// a power below one crowds the samples toward the center.
func (g *Generator) placeNodes(s *Scene) {
	s.Nodes = make([]*Node, g.cfg.Nodes)
	for i := range s.Nodes {
		angle := g.rnd.Float64() * 2 * math.Pi
		r := math.Pow(g.rnd.Float64(), g.cfg.CenterBias) * s.MaxRadius

		distRatio := 0.0
		if s.MaxRadius > 0 {
			distRatio = math.Min(r/s.MaxRadius, 1)
		}

		n := &Node{
			ID:        i,
			Radius:    minNodeRadius + (1-distRatio)*nodeRadiusSpan,
			Color:     g.colors.ColorForDistance(distRatio),
			DistRatio: distRatio,
		}
		n.X = s.Center.X + math.Cos(angle)*r
		n.Y = s.Center.Y + math.Sin(angle)*r
		s.Nodes[i] = n
	}
}

// linkNodes makes the configured number of draws. Self pairs and pairs
// already linked in either direction are discarded rather than redrawn, so
// dense configurations end up with fewer links than requested.
func (g *Generator) linkNodes(s *Scene) {
	n := len(s.Nodes)
	seen := graph.New(graph.IntHash)
	for i := 0; i < n; i++ {
		_ = seen.AddVertex(i)
	}

	for i := 0; i < g.cfg.Links; i++ {
		a, b := g.rnd.IntN(n), g.rnd.IntN(n)
		if a == b {
			s.DroppedLinks++
			continue
		}
		if err := seen.AddEdge(min(a, b), max(a, b)); errors.Is(err, graph.ErrEdgeAlreadyExists) {
			s.DroppedLinks++
			continue
		}
		avg := (s.Nodes[a].DistRatio + s.Nodes[b].DistRatio) / 2
		s.Links = append(s.Links, Link{
			Source:  a,
			Target:  b,
			Color:   g.colors.ColorForDistance(avg),
			AvgDist: avg,
		})
	}
}

// castStreaks anchors rays to the inner nodes only.
func (g *Generator) castStreaks(s *Scene) {
	for _, n := range s.Nodes {
		if n.DistRatio > g.cfg.StreakMaxDistRatio {
			continue
		}
		for k := 0; k < g.cfg.StreaksPerNode; k++ {
			s.Streaks = append(s.Streaks, Streak{
				Node:      n.ID,
				Angle:     g.rnd.Float64() * 2 * math.Pi,
				Color:     n.Color,
				Opacity:   g.cfg.StreakOpacityMin + g.rnd.Float64()*g.cfg.StreakOpacitySpan,
				DistRatio: n.DistRatio,
			})
		}
	}
}
