package netviz

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// WriteSVG writes the current frame as a standalone SVG document. Glow is
// expressed with blur filters; the cascade is drawn at its resting offset.
func (e *Engine) WriteSVG(w io.Writer) error {
	r := e.renderer
	vp := r.Viewport()
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height)
	fmt.Fprintln(bw, "<defs>")
	writeGlowFilter(bw, "node-glow", r.NodeBlur)
	writeGlowFilter(bw, "link-glow", r.LinkBlur)
	fmt.Fprintln(bw, "</defs>")
	fmt.Fprintf(bw, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", hex(e.background))

	e.writeCascadeSVG(bw)

	fmt.Fprintln(bw, `<g class="streaks" filter="url(#link-glow)">`)
	for _, l := range r.Streaks {
		writeLine(bw, l)
	}
	fmt.Fprintln(bw, "</g>")

	fmt.Fprintln(bw, `<g class="links" filter="url(#link-glow)">`)
	for _, l := range r.Links {
		writeLine(bw, l)
	}
	fmt.Fprintln(bw, "</g>")

	fmt.Fprintln(bw, `<g class="nodes" filter="url(#node-glow)">`)
	for _, c := range r.Nodes {
		fmt.Fprintf(bw, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.3f"/>`+"\n",
			c.CX, c.CY, c.R, hex(c.Fill), c.Opacity)
	}
	fmt.Fprintln(bw, "</g>")
	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

func writeGlowFilter(w io.Writer, id string, blur float64) {
	fmt.Fprintf(w, `<filter id="%s"><feGaussianBlur stdDeviation="%g" result="blur"/>`, id, blur)
	fmt.Fprintln(w, `<feMerge><feMergeNode in="blur"/><feMergeNode in="SourceGraphic"/></feMerge></filter>`)
}

func writeLine(w io.Writer, l Line) {
	fmt.Fprintf(w, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%g"/>`+"\n",
		l.X1, l.Y1, l.X2, l.Y2, hex(l.Stroke), l.Opacity, l.Width)
}

func (e *Engine) writeCascadeSVG(w io.Writer) {
	cols := e.cascade.Columns
	if len(cols) == 0 {
		return
	}
	size := e.cfg.Cascade.FontSize
	_, colH := e.columnSize()
	elapsed := e.Elapsed()
	vpW, vpH := e.renderer.Viewport().Width, e.renderer.Viewport().Height
	fmt.Fprintf(w, `<g class="cascade" font-family="monospace" font-size="%g" text-anchor="middle">`+"\n", size)
	for _, col := range cols {
		x := col.X(vpW)
		y0 := col.Offset(elapsed, e.cascade.Period, colH, vpH)
		for r, g := range col.Glyphs {
			y := y0 + float64(r+1)*size*lineHeight
			if y < 0 || y > vpH+size {
				continue
			}
			fmt.Fprintf(w, `<text x="%.1f" y="%.1f" fill="%s" fill-opacity="%.3f">%s</text>`+"\n",
				x, y, hex(g.Color), math.Max(0, g.Opacity), g.Char)
		}
	}
	fmt.Fprintln(w, "</g>")
}

func hex(c color.RGBA) string {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hex()
}
