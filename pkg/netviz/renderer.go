package netviz

import (
	"image/color"

	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/scene"
)

// Circle is the drawable bound to a node.
type Circle struct {
	CX, CY  float64
	R       float64
	Fill    color.RGBA
	Opacity float64
}

// Line is the drawable bound to a link or streak.
type Line struct {
	X1, Y1, X2, Y2 float64
	Stroke         color.RGBA
	Opacity        float64
	Width          float64
}

// Renderer keeps one primitive per scene entity. Styles are fixed when the
// primitives are bound; Sync only moves them.
type Renderer struct {
	Nodes   []Circle
	Links   []Line
	Streaks []Line

	NodeBlur, LinkBlur float64

	scene     *scene.Scene
	viewport  scene.Viewport
	streakMax float64
}

// Bind creates the primitives for s.
func Bind(s *scene.Scene, vp scene.Viewport, cfg *config.Config) *Renderer {
	r := &Renderer{
		Nodes:     make([]Circle, len(s.Nodes)),
		Links:     make([]Line, len(s.Links)),
		Streaks:   make([]Line, len(s.Streaks)),
		NodeBlur:  cfg.Render.NodeBlur,
		LinkBlur:  cfg.Render.LinkBlur,
		scene:     s,
		viewport:  vp,
		streakMax: cfg.Scene.StreakMaxLength,
	}
	for i, n := range s.Nodes {
		r.Nodes[i] = Circle{
			R:       n.Radius,
			Fill:    n.Color,
			Opacity: 0.5 + 0.25*(1-n.DistRatio),
		}
	}
	for i, l := range s.Links {
		r.Links[i] = Line{
			Stroke:  l.Color,
			Opacity: 0.15 + 0.12*(1-l.AvgDist),
			Width:   cfg.Render.LinkWidth,
		}
	}
	for i, st := range s.Streaks {
		r.Streaks[i] = Line{
			Stroke:  st.Color,
			Opacity: st.Opacity * (1 - st.DistRatio*0.5),
			Width:   cfg.Render.StreakWidth,
		}
	}
	r.Sync()
	return r
}

// Viewport returns the canvas size the primitives are clipped to.
func (r *Renderer) Viewport() scene.Viewport { return r.viewport }

// SetSize resizes the canvas. Streak ends pick up the new bounds on the
// next Sync.
func (r *Renderer) SetSize(vp scene.Viewport) {
	r.viewport = vp
}

// Sync copies live node positions into the primitives.
func (r *Renderer) Sync() {
	nodes := r.scene.Nodes
	for i, n := range nodes {
		r.Nodes[i].CX, r.Nodes[i].CY = n.X, n.Y
	}
	for i, l := range r.scene.Links {
		src, tgt := nodes[l.Source], nodes[l.Target]
		r.Links[i].X1, r.Links[i].Y1 = src.X, src.Y
		r.Links[i].X2, r.Links[i].Y2 = tgt.X, tgt.Y
	}
	for i, st := range r.scene.Streaks {
		n := nodes[st.Node]
		end := scene.StreakEnd(n.Pos(), st.Angle, r.viewport, r.streakMax)
		r.Streaks[i].X1, r.Streaks[i].Y1 = n.X, n.Y
		r.Streaks[i].X2, r.Streaks[i].Y2 = end.X, end.Y
	}
}
