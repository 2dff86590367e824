// Package netviz renders the animated network background with ebiten: it
// owns the scene, the layout simulation and the repaint loop.
package netviz

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/sudorandom/network-viz/pkg/cascade"
	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/force"
	"github.com/sudorandom/network-viz/pkg/scene"
	"golang.org/x/image/font/gofont/gomono"
)

// Names of the forces installed on the simulation.
const (
	ForceLink      = "link"
	ForceCharge    = "charge"
	ForceCenter    = "center"
	ForceCollision = "collision"
	ForceX         = "x"
	ForceY         = "y"
)

const noDrag = -1

type Engine struct {
	Width, Height int

	// FixedSize ignores window size changes (headless rendering).
	FixedSize bool

	FrameCaptureDir string
	CaptureEvery    int
	OnFrame         func(screen *ebiten.Image)

	cfg        *config.Config
	scene      *scene.Scene
	cascade    *cascade.Cascade
	sim        *force.Simulation
	renderer   *Renderer
	background color.RGBA

	monoSource   *text.GoTextFaceSource
	glowImage    *ebiten.Image
	lineLayer    *ebiten.Image
	columnImages []*ebiten.Image

	dragging int
	ticks    int
	frames   int
	closing  atomic.Bool
}

func NewEngine(cfg *config.Config, width, height int, rnd scene.Rand) (*Engine, error) {
	gen, err := scene.NewGenerator(cfg.Scene, rnd)
	if err != nil {
		return nil, err
	}
	vp := scene.Viewport{Width: float64(width), Height: float64(height)}
	sc := gen.Generate(vp)
	if sc.DroppedLinks > 0 {
		log.Printf("[netviz] %d of %d link draws were self pairs or duplicates", sc.DroppedLinks, cfg.Scene.Links)
	}

	cs, err := cascade.Generate(cfg.Cascade, rnd)
	if err != nil {
		return nil, err
	}
	bg, err := scene.ParseColor(cfg.Render.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	mono, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return nil, fmt.Errorf("load glyph font: %w", err)
	}

	e := &Engine{
		Width:      width,
		Height:     height,
		cfg:        cfg,
		scene:      sc,
		cascade:    cs,
		renderer:   Bind(sc, vp, cfg),
		background: bg,
		monoSource: mono,
		dragging:   noDrag,
	}

	f := cfg.Forces
	e.sim = force.New(sc.Bodies(), rnd).
		SetForce(ForceLink, force.NewLink(sc.Edges()).WithDistance(f.LinkDistance)).
		SetForce(ForceCharge, force.NewManyBody().WithStrength(f.Charge).WithTheta(f.Theta)).
		SetForce(ForceCollision, force.NewCollide(func(i int) float64 {
			return sc.Radius(i) + f.CollisionPadding
		})).
		SetAlpha(f.Alpha).
		SetAlphaDecay(f.AlphaDecay).
		SetVelocityDecay(f.VelocityDecay).
		OnTick(e.renderer.Sync)
	e.center(vp, f.CenterStrength, f.AxisStrength)

	log.Printf("[netviz] mounted %dx%d: %d nodes, %d links, %d streaks, %d glyphs",
		width, height, len(sc.Nodes), len(sc.Links), len(sc.Streaks), cs.Cells())
	return e, nil
}

// center points the centering forces at the middle of vp.
func (e *Engine) center(vp scene.Viewport, strength, axisStrength float64) {
	c := vp.Center()
	e.sim.
		SetForce(ForceCenter, force.NewCenter(c.X, c.Y).WithStrength(strength)).
		SetForce(ForceX, force.NewX(c.X).WithStrength(axisStrength)).
		SetForce(ForceY, force.NewY(c.Y).WithStrength(axisStrength))
}

func (e *Engine) Scene() *scene.Scene { return e.scene }

func (e *Engine) Cascade() *cascade.Cascade { return e.cascade }

func (e *Engine) Simulation() *force.Simulation { return e.sim }

func (e *Engine) Renderer() *Renderer { return e.renderer }

// Viewport returns the current drawing area.
func (e *Engine) Viewport() scene.Viewport { return e.renderer.Viewport() }

// Elapsed returns animation time in seconds, derived from ticks so captured
// frames advance at a steady rate.
func (e *Engine) Elapsed() float64 { return float64(e.ticks) / float64(ebiten.TPS()) }

// Tick advances the layout by one frame.
func (e *Engine) Tick() {
	e.sim.Advance()
	e.ticks++
}

func (e *Engine) Update() error {
	if e.closing.Load() {
		e.teardown()
		return ebiten.Termination
	}
	e.handlePointer()
	e.Tick()
	return nil
}

func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !e.FixedSize && outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != e.Width || outsideHeight != e.Height) {
		e.Resize(outsideWidth, outsideHeight)
	}
	return e.Width, e.Height
}

// Resize adopts a new window size. Entities are kept; the centering forces
// move to the new midpoint at reduced strength and the layout is given
// enough energy to drift there.
func (e *Engine) Resize(width, height int) {
	e.Width, e.Height = width, height
	vp := scene.Viewport{Width: float64(width), Height: float64(height)}
	e.renderer.SetSize(vp)

	f := e.cfg.Forces
	e.center(vp, f.ResizeCenterStrength, f.ResizeAxisStrength)
	e.sim.SetAlpha(f.ResizeAlpha).Restart()
	e.renderer.Sync()
	log.Printf("[netviz] resized to %dx%d", width, height)
}

// Close asks the loop to stop. The next Update releases GPU resources and
// ends the game. Safe to call from any goroutine.
func (e *Engine) Close() {
	e.closing.Store(true)
}

func (e *Engine) teardown() {
	e.sim.Stop()
	if e.dragging != noDrag {
		e.DragEnd()
	}
	for _, img := range append(e.columnImages, e.glowImage, e.lineLayer) {
		if img != nil {
			img.Deallocate()
		}
	}
	e.columnImages, e.glowImage, e.lineLayer = nil, nil, nil
	log.Println("[netviz] stopped")
}
