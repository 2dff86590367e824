package netviz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/scene"
)

func boundScene(t testing.TB, nodes, links int) (*scene.Scene, *Renderer) {
	t.Helper()
	cfg := config.Default()
	cfg.Scene.Nodes = nodes
	cfg.Scene.Links = links
	gen, err := scene.NewGenerator(cfg.Scene, scene.NewRand(11))
	require.NoError(t, err)
	vp := scene.Viewport{Width: 1280, Height: 720}
	s := gen.Generate(vp)
	return s, Bind(s, vp, cfg)
}

func TestBindStyles(t *testing.T) {
	s, r := boundScene(t, 40, 80)
	require.Len(t, r.Nodes, len(s.Nodes))
	require.Len(t, r.Links, len(s.Links))
	require.Len(t, r.Streaks, len(s.Streaks))
	assert.Equal(t, 3.0, r.NodeBlur)
	assert.Equal(t, 1.0, r.LinkBlur)

	for i, n := range s.Nodes {
		c := r.Nodes[i]
		assert.Equal(t, n.Radius, c.R)
		assert.Equal(t, n.Color, c.Fill)
		assert.InDelta(t, 0.5+0.25*(1-n.DistRatio), c.Opacity, 1e-12)
	}
	for i, l := range s.Links {
		assert.InDelta(t, 0.15+0.12*(1-l.AvgDist), r.Links[i].Opacity, 1e-12)
		assert.Equal(t, 0.35, r.Links[i].Width)
	}
	for i, st := range s.Streaks {
		assert.InDelta(t, st.Opacity*(1-st.DistRatio*0.5), r.Streaks[i].Opacity, 1e-12)
		assert.Equal(t, 0.2, r.Streaks[i].Width)
	}
}

func TestSync(t *testing.T) {
	s, r := boundScene(t, 40, 80)
	for _, n := range s.Nodes {
		n.X += 5
		n.Y -= 3
	}
	r.Sync()

	for i, n := range s.Nodes {
		assert.Equal(t, n.X, r.Nodes[i].CX)
		assert.Equal(t, n.Y, r.Nodes[i].CY)
	}
	for i, l := range s.Links {
		assert.Equal(t, s.Nodes[l.Source].X, r.Links[i].X1)
		assert.Equal(t, s.Nodes[l.Target].Y, r.Links[i].Y2)
	}
	for i, st := range s.Streaks {
		line := r.Streaks[i]
		n := s.Nodes[st.Node]
		assert.Equal(t, n.X, line.X1)
		assert.Equal(t, n.Y, line.Y1)
		assert.LessOrEqual(t, math.Hypot(line.X2-line.X1, line.Y2-line.Y1), 140.0+1e-9)
	}
}

func TestSetSizeClipsStreaks(t *testing.T) {
	s, r := boundScene(t, 30, 40)
	r.SetSize(scene.Viewport{Width: 200, Height: 100})
	for _, n := range s.Nodes {
		n.X, n.Y = 100, 50
	}
	r.Sync()
	for _, line := range r.Streaks {
		assert.InDelta(t, 100, line.X2, 100+1e-6)
		assert.InDelta(t, 50, line.Y2, 50+1e-6)
	}
}

func BenchmarkRendererSync(b *testing.B) {
	_, r := boundScene(b, 160, 420)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Sync()
	}
}
