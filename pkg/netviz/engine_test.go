package netviz

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/force"
	"github.com/sudorandom/network-viz/pkg/scene"
)

func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Scene.Nodes = 24
	cfg.Scene.Links = 40
	cfg.Scene.StreaksPerNode = 3
	cfg.Cascade.Columns = 4
	cfg.Cascade.Rows = 6
	return cfg
}

func newTestEngine(t testing.TB, w, h int) *Engine {
	t.Helper()
	e, err := NewEngine(smallConfig(), w, h, scene.NewRand(7))
	require.NoError(t, err)
	require.NotNil(t, e)
	return e
}

func TestMount(t *testing.T) {
	cfg := smallConfig()

	e, err := Mount(WindowHost{Containers: []string{"header", "network-bg"}, Width: 800, Height: 600}, cfg, scene.NewRand(1))
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 800, e.Width)
	assert.Equal(t, 600, e.Height)
	assert.Len(t, e.Scene().Nodes, 24)

	e, err = Mount(WindowHost{Containers: []string{"header"}, Width: 800, Height: 600}, cfg, scene.NewRand(1))
	assert.NoError(t, err)
	assert.Nil(t, e)
}

func TestNewEngineBadBackground(t *testing.T) {
	cfg := smallConfig()
	cfg.Render.Background = "not-a-color"
	_, err := NewEngine(cfg, 100, 100, scene.NewRand(1))
	assert.ErrorIs(t, err, scene.ErrBadColor)
}

func TestEngineForces(t *testing.T) {
	e := newTestEngine(t, 800, 600)
	sim := e.Simulation()

	for _, name := range []string{ForceLink, ForceCharge, ForceCenter, ForceCollision, ForceX, ForceY} {
		assert.NotNil(t, sim.Force(name), name)
	}
	c := sim.Force(ForceCenter).(*force.Center)
	x, y := c.Point()
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)
	assert.Equal(t, 0.2, c.Strength())
	assert.Equal(t, 0.06, sim.Force(ForceX).(*force.Axis).Strength())
	assert.Equal(t, 0.5, sim.Alpha())
}

func TestTickNeverCools(t *testing.T) {
	e := newTestEngine(t, 800, 600)
	for range 500 {
		e.Tick()
	}
	assert.True(t, e.Simulation().Running())
	assert.InDelta(t, 0.5, e.Simulation().Alpha(), 1e-12)
	for _, n := range e.Scene().Nodes {
		assert.False(t, math.IsNaN(n.X) || math.IsNaN(n.Y), "node %d position is NaN", n.ID)
	}
}

func TestResize(t *testing.T) {
	e := newTestEngine(t, 800, 600)
	nodes, links, streaks := len(e.Scene().Nodes), len(e.Scene().Links), len(e.Scene().Streaks)

	e.Resize(1024, 400)

	assert.Equal(t, scene.Viewport{Width: 1024, Height: 400}, e.Viewport())
	assert.Equal(t, 1024, e.Width)
	assert.Equal(t, 400, e.Height)
	assert.Len(t, e.Scene().Nodes, nodes)
	assert.Len(t, e.Scene().Links, links)
	assert.Len(t, e.Scene().Streaks, streaks)

	sim := e.Simulation()
	assert.Equal(t, 0.3, sim.Alpha())
	assert.True(t, sim.Running())
	c := sim.Force(ForceCenter).(*force.Center)
	x, y := c.Point()
	assert.Equal(t, 512.0, x)
	assert.Equal(t, 200.0, y)
	assert.Equal(t, 0.15, c.Strength())
	assert.Equal(t, 512.0, sim.Force(ForceX).(*force.Axis).Target())
	assert.Equal(t, 200.0, sim.Force(ForceY).(*force.Axis).Target())
	assert.Equal(t, 0.04, sim.Force(ForceY).(*force.Axis).Strength())
}

func TestLayout(t *testing.T) {
	e := newTestEngine(t, 800, 600)

	w, h := e.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 0.5, e.Simulation().Alpha())

	w, h = e.Layout(640, 480)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
	assert.Equal(t, 0.3, e.Simulation().Alpha())

	e.FixedSize = true
	w, h = e.Layout(1920, 1080)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestDrag(t *testing.T) {
	e := newTestEngine(t, 800, 600)
	sim := e.Simulation()
	n := e.Scene().Nodes[5]

	e.DragStart(5, 100, 120)
	i, ok := e.Dragging()
	require.True(t, ok)
	assert.Equal(t, 5, i)
	assert.Equal(t, 0.3, sim.AlphaTarget())
	assert.True(t, n.Pinned())

	e.Tick()
	assert.Equal(t, 100.0, n.X)
	assert.Equal(t, 120.0, n.Y)

	e.DragMove(300, 310)
	e.Tick()
	assert.Equal(t, 300.0, n.X)
	assert.Equal(t, 310.0, n.Y)
	assert.Equal(t, 300.0, e.Renderer().Nodes[5].CX)

	e.DragEnd()
	_, ok = e.Dragging()
	assert.False(t, ok)
	assert.False(t, n.Pinned())
	assert.Equal(t, 0.0, sim.AlphaTarget())

	// no-ops without an active drag
	e.DragMove(1, 1)
	e.DragEnd()
	assert.False(t, n.Pinned())
}

func TestNodeAt(t *testing.T) {
	e := newTestEngine(t, 800, 600)
	nodes := e.Scene().Nodes
	for _, n := range nodes {
		n.X, n.Y = -1000, -1000
	}
	nodes[2].X, nodes[2].Y = 50, 50
	nodes[9].X, nodes[9].Y = 52, 50

	i, ok := e.NodeAt(51, 50)
	require.True(t, ok)
	assert.Equal(t, 9, i, "later nodes are drawn on top")

	nodes[9].X = 500
	pad := e.cfg.Forces.CollisionPadding
	i, ok = e.NodeAt(50-nodes[2].Radius-pad+0.01, 50)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	_, ok = e.NodeAt(400, 400)
	assert.False(t, ok)
}

func TestCloseTerminates(t *testing.T) {
	e := newTestEngine(t, 320, 240)
	e.DragStart(0, 10, 10)
	e.Close()

	assert.ErrorIs(t, e.Update(), ebiten.Termination)
	assert.False(t, e.Simulation().Running())
	_, dragging := e.Dragging()
	assert.False(t, dragging)
}

func TestWriteSVG(t *testing.T) {
	e := newTestEngine(t, 640, 480)
	for range 10 {
		e.Tick()
	}

	var buf bytes.Buffer
	require.NoError(t, e.WriteSVG(&buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `<filter id="node-glow"><feGaussianBlur stdDeviation="3"`)
	assert.Contains(t, out, `<filter id="link-glow"><feGaussianBlur stdDeviation="1"`)
	assert.Contains(t, out, `fill="#0d0b09"`)
	assert.Equal(t, len(e.Scene().Nodes), strings.Count(out, "<circle "))
	assert.Equal(t, len(e.Scene().Links)+len(e.Scene().Streaks), strings.Count(out, "<line "))
}
