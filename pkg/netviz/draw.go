package netviz

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	glowTextureSize = 64
	// lineHeight is the glyph pitch as a multiple of the font size.
	lineHeight = 1.2
)

// offsets used to smear the line layer into a soft halo
var glowOffsets = [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func (e *Engine) Draw(screen *ebiten.Image) {
	screen.Fill(e.background)
	e.drawCascade(screen)
	e.drawLines(screen)
	e.drawNodes(screen)

	e.frames++
	if e.CaptureEvery > 0 && e.frames%e.CaptureEvery == 0 {
		e.captureFrame(screen, e.frames)
	}
	if e.OnFrame != nil {
		e.OnFrame(screen)
	}
}

// InitGlowTexture builds the soft disc stamped under every node.
func (e *Engine) InitGlowTexture() {
	size := glowTextureSize
	e.glowImage = ebiten.NewImage(size, size)
	pixels := make([]byte, size*size*4)
	center := float64(size) / 2
	sigma := center / 2.5
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := float64(x)+0.5-center, float64(y)+0.5-center
			d2 := dx*dx + dy*dy
			if d2 >= center*center {
				continue
			}
			val := math.Exp(-d2 / (2 * sigma * sigma))
			off := (y*size + x) * 4
			a := uint8(val * 255)
			// premultiplied white
			pixels[off], pixels[off+1], pixels[off+2], pixels[off+3] = a, a, a, a
		}
	}
	e.glowImage.WritePixels(pixels)
}

func (e *Engine) ensureLineLayer() {
	if e.lineLayer != nil {
		b := e.lineLayer.Bounds()
		if b.Dx() == e.Width && b.Dy() == e.Height {
			e.lineLayer.Clear()
			return
		}
		e.lineLayer.Deallocate()
	}
	e.lineLayer = ebiten.NewImage(max(e.Width, 1), max(e.Height, 1))
}

// drawLines paints streaks then links on an offscreen layer and composites
// it with a faint offset halo.
func (e *Engine) drawLines(screen *ebiten.Image) {
	r := e.renderer
	if len(r.Links) == 0 && len(r.Streaks) == 0 {
		return
	}
	e.ensureLineLayer()
	for _, l := range r.Streaks {
		strokeLine(e.lineLayer, l)
	}
	for _, l := range r.Links {
		strokeLine(e.lineLayer, l)
	}

	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	for _, o := range glowOffsets {
		op.GeoM.Reset()
		op.GeoM.Translate(o[0]*r.LinkBlur, o[1]*r.LinkBlur)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(0.25)
		screen.DrawImage(e.lineLayer, op)
	}
	screen.DrawImage(e.lineLayer, nil)
}

func strokeLine(dst *ebiten.Image, l Line) {
	vector.StrokeLine(dst,
		float32(l.X1), float32(l.Y1), float32(l.X2), float32(l.Y2),
		float32(math.Max(l.Width, 0.1)), withOpacity(l.Stroke, l.Opacity), true)
}

// drawNodes stamps the glow sprite and then the solid disc for each node.
func (e *Engine) drawNodes(screen *ebiten.Image) {
	r := e.renderer
	if len(r.Nodes) == 0 {
		return
	}
	if e.glowImage == nil {
		e.InitGlowTexture()
	}
	half := float64(glowTextureSize) / 2
	op := &ebiten.DrawImageOptions{}
	op.Blend = ebiten.BlendLighter
	for _, c := range r.Nodes {
		reach := c.R + 2*r.NodeBlur
		scale := reach / half
		op.GeoM.Reset()
		op.GeoM.Translate(-half, -half)
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(c.CX, c.CY)
		op.ColorScale.Reset()
		op.ColorScale.ScaleWithColor(c.Fill)
		op.ColorScale.ScaleAlpha(float32(c.Opacity * 0.6))
		screen.DrawImage(e.glowImage, op)
	}
	for _, c := range r.Nodes {
		vector.DrawFilledCircle(screen, float32(c.CX), float32(c.CY), float32(c.R), withOpacity(c.Fill, c.Opacity), true)
	}
}

func (e *Engine) columnSize() (w, h float64) {
	size := e.cfg.Cascade.FontSize
	return math.Ceil(size), float64(e.cfg.Cascade.Rows) * size * lineHeight
}

// renderColumns rasterizes every cascade column once; frames only move them.
func (e *Engine) renderColumns() {
	size := e.cfg.Cascade.FontSize
	face := &text.GoTextFace{Source: e.monoSource, Size: size}
	w, h := e.columnSize()
	e.columnImages = make([]*ebiten.Image, len(e.cascade.Columns))
	for i, col := range e.cascade.Columns {
		img := ebiten.NewImage(max(int(w), 1), max(int(math.Ceil(h)), 1))
		for r, g := range col.Glyphs {
			op := &text.DrawOptions{}
			op.GeoM.Translate(0, float64(r)*size*lineHeight)
			op.ColorScale.ScaleWithColor(g.Color)
			op.ColorScale.ScaleAlpha(float32(g.Opacity))
			text.Draw(img, g.Char, face, op)
		}
		e.columnImages[i] = img
	}
}

// drawCascade slides each column down the viewport, fading it as it goes.
func (e *Engine) drawCascade(screen *ebiten.Image) {
	if len(e.cascade.Columns) == 0 || e.cfg.Cascade.Rows == 0 {
		return
	}
	if e.columnImages == nil {
		e.renderColumns()
	}
	w, h := e.columnSize()
	elapsed := e.Elapsed()
	op := &ebiten.DrawImageOptions{}
	for i, col := range e.cascade.Columns {
		phase := col.Phase(elapsed, e.cascade.Period)
		op.GeoM.Reset()
		op.GeoM.Translate(col.X(float64(e.Width))-w/2, col.Offset(elapsed, e.cascade.Period, h, float64(e.Height)))
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(1 - 0.7*phase))
		screen.DrawImage(e.columnImages[i], op)
	}
}

func withOpacity(c color.RGBA, opacity float64) color.NRGBA {
	a := math.Max(0, math.Min(opacity, 1))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}
