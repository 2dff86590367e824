package force

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 7))
}

func dist(a, b *Body) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func TestAdvanceNeverStopsWithoutDecay(t *testing.T) {
	bodies := []*Body{{X: 10, Y: 10}, {X: 20, Y: 20}}
	sim := New(bodies, testRand()).SetAlpha(0.5).SetAlphaDecay(0)

	ticks := 0
	sim.OnTick(func() { ticks++ })
	for i := 0; i < 5000; i++ {
		require.True(t, sim.Advance())
	}
	assert.Equal(t, 5000, ticks)
	assert.Equal(t, 0.5, sim.Alpha())
	assert.True(t, sim.Running())
}

func TestAdvanceStopsWhenCooled(t *testing.T) {
	sim := New([]*Body{{}}, testRand())
	steps := 0
	for sim.Advance() {
		steps++
		require.Less(t, steps, 10000)
	}
	assert.Less(t, sim.Alpha(), defaultAlphaMin)
	assert.False(t, sim.Advance())

	sim.Restart()
	assert.True(t, sim.Advance())
}

func TestStopAndRestart(t *testing.T) {
	sim := New([]*Body{{}}, testRand()).SetAlphaDecay(0)
	sim.Stop()
	assert.False(t, sim.Advance())
	sim.Restart()
	assert.True(t, sim.Advance())
}

func TestReheat(t *testing.T) {
	sim := New(nil, testRand()).SetAlpha(0.1).Stop()
	sim.Reheat(0.3)
	assert.Equal(t, 0.3, sim.Alpha())
	assert.Equal(t, 0.3, sim.AlphaTarget())
	assert.True(t, sim.Running())

	// never lowers alpha
	sim.SetAlpha(0.5).Reheat(0.3)
	assert.Equal(t, 0.5, sim.Alpha())
}

func TestSetForceKeepsOrder(t *testing.T) {
	sim := New(nil, testRand())
	sim.SetForce("a", NewX(0)).SetForce("b", NewY(0)).SetForce("a", NewX(5))
	assert.Equal(t, []string{"a", "b"}, sim.order)
	assert.Equal(t, 5.0, sim.Force("a").(*Axis).Target())

	sim.SetForce("a", nil)
	assert.Nil(t, sim.Force("a"))
	assert.Equal(t, []string{"b"}, sim.order)
}

func TestPinnedBodyStays(t *testing.T) {
	a := &Body{X: 0, Y: 0}
	b := &Body{X: 1, Y: 0}
	sim := New([]*Body{a, b}, testRand()).SetAlphaDecay(0)
	sim.SetForce("charge", NewManyBody().WithStrength(-100))

	a.Pin(50, 60)
	for i := 0; i < 20; i++ {
		sim.Step()
		assert.Equal(t, 50.0, a.X)
		assert.Equal(t, 60.0, a.Y)
		assert.Zero(t, a.VX)
	}

	a.Release()
	assert.False(t, a.Pinned())
	sim.Step()
	assert.NotEqual(t, 50.0, a.X)
}

func TestLinkPullsTowardDistance(t *testing.T) {
	a := &Body{X: 0, Y: 0}
	b := &Body{X: 200, Y: 0}
	sim := New([]*Body{a, b}, testRand()).SetAlpha(0.5).SetAlphaDecay(0)
	sim.SetForce("link", NewLink([]Edge{{0, 1}}).WithDistance(70))

	before := dist(a, b)
	for i := 0; i < 300; i++ {
		sim.Step()
	}
	after := dist(a, b)
	assert.Less(t, after, before)
	assert.InDelta(t, 70, after, 1)
}

func TestLinkStrengthUsesDegree(t *testing.T) {
	bodies := []*Body{{}, {X: 1}, {X: 2}}
	l := NewLink([]Edge{{0, 1}, {0, 2}})
	l.Initialize(bodies, testRand())

	// body 0 has degree 2, the others 1
	assert.Equal(t, []float64{1, 1}, l.strengths)
	assert.InDelta(t, 2.0/3.0, l.bias[0], 1e-12)
}

func TestManyBodyRepels(t *testing.T) {
	a := &Body{X: 100, Y: 100}
	b := &Body{X: 110, Y: 100}
	sim := New([]*Body{a, b}, testRand()).SetAlpha(0.5).SetAlphaDecay(0)
	sim.SetForce("charge", NewManyBody().WithStrength(-50))

	before := dist(a, b)
	sim.Step()
	assert.Greater(t, dist(a, b), before)
	assert.Less(t, a.X, 100.0)
	assert.Greater(t, b.X, 110.0)
}

func TestManyBodyManyParticles(t *testing.T) {
	rnd := testRand()
	bodies := make([]*Body, 200)
	for i := range bodies {
		bodies[i] = &Body{X: rnd.Float64() * 500, Y: rnd.Float64() * 500}
	}
	sim := New(bodies, rnd).SetAlpha(0.5).SetAlphaDecay(0)
	sim.SetForce("charge", NewManyBody().WithStrength(-50).WithTheta(0.9))
	for i := 0; i < 10; i++ {
		sim.Step()
	}
	for _, b := range bodies {
		require.False(t, math.IsNaN(b.X) || math.IsNaN(b.Y))
	}
}

func TestCenterMovesMean(t *testing.T) {
	bodies := []*Body{{X: 0, Y: 0}, {X: 10, Y: 20}}
	c := NewCenter(105, 110).WithStrength(1)
	c.Initialize(bodies, testRand())
	c.Apply(1)

	assert.InDelta(t, 105, (bodies[0].X+bodies[1].X)/2, 1e-9)
	assert.InDelta(t, 110, (bodies[0].Y+bodies[1].Y)/2, 1e-9)
	// relative layout is preserved
	assert.InDelta(t, 10, bodies[1].X-bodies[0].X, 1e-9)
}

func TestCenterPartialStrength(t *testing.T) {
	bodies := []*Body{{X: 0, Y: 0}}
	c := NewCenter(100, 0).WithStrength(0.2)
	c.Initialize(bodies, nil)
	c.Apply(1)
	assert.InDelta(t, 20, bodies[0].X, 1e-9)
}

func TestAxisForces(t *testing.T) {
	b := &Body{X: 0, Y: 0}
	x := NewX(100).WithStrength(0.06)
	y := NewY(50).WithStrength(0.06)
	x.Initialize([]*Body{b}, nil)
	y.Initialize([]*Body{b}, nil)
	x.Apply(0.5)
	y.Apply(0.5)
	assert.InDelta(t, 3, b.VX, 1e-9)
	assert.InDelta(t, 1.5, b.VY, 1e-9)
}

func TestCollideSeparatesOverlap(t *testing.T) {
	a := &Body{X: 0, Y: 0}
	b := &Body{X: 2, Y: 0}
	radii := []float64{5, 5}
	sim := New([]*Body{a, b}, testRand()).SetAlphaDecay(0)
	sim.SetForce("collision", NewCollide(func(i int) float64 { return radii[i] }))

	for i := 0; i < 50; i++ {
		sim.Step()
	}
	assert.GreaterOrEqual(t, dist(a, b), 9.5)
}

func TestCollideCoincidentBodies(t *testing.T) {
	a := &Body{X: 3, Y: 3}
	b := &Body{X: 3, Y: 3}
	c := NewCollide(func(int) float64 { return 4 })
	c.Initialize([]*Body{a, b}, testRand())
	c.Apply(1)
	assert.False(t, math.IsNaN(a.VX) || math.IsNaN(b.VX))
	assert.NotEqual(t, a.VX, b.VX)
}
