// Package cascade generates the columns of falling binary digits drawn
// behind the network.
package cascade

import (
	"fmt"
	"image/color"
	"math"

	"github.com/sudorandom/network-viz/pkg/config"
	"github.com/sudorandom/network-viz/pkg/scene"
)

// Columns are spread across this share of the width, leaving an inset of
// (100-spreadPercent)/2 percent on each side.
const spreadPercent = 94

// Glyph is one digit in a column.
type Glyph struct {
	Char    string
	Color   color.RGBA
	Opacity float64
}

// Column is a vertical strip of glyphs sharing one animation offset.
type Column struct {
	Index       int
	LeftPercent float64
	Delay       float64 // seconds, always negative
	Glyphs      []Glyph
}

// Cascade is the full set of columns.
type Cascade struct {
	Columns []Column
	Period  float64
}

// Generate builds the cascade described by cfg.
func Generate(cfg config.CascadeConfig, rnd scene.Rand) (*Cascade, error) {
	palette, err := scene.ParsePalette(cfg.Palette)
	if err != nil {
		return nil, fmt.Errorf("cascade palette: %w", err)
	}

	c := &Cascade{Columns: make([]Column, cfg.Columns), Period: cfg.Period}
	for i := range c.Columns {
		col := Column{
			Index:       i,
			LeftPercent: leftPercent(i, cfg.Columns),
			// Negative so every column is already mid-fall at start.
			Delay:  -(cfg.BaseDelay + float64(i)*cfg.Stagger + rnd.Float64()*cfg.Jitter),
			Glyphs: make([]Glyph, cfg.Rows),
		}
		for r := range col.Glyphs {
			char := "0"
			if rnd.Float64() > 0.5 {
				char = "1"
			}
			col.Glyphs[r] = Glyph{
				Char:    char,
				Color:   palette.Pick(rnd),
				Opacity: cfg.OpacityMin + rnd.Float64()*cfg.OpacitySpan,
			}
		}
		c.Columns[i] = col
	}
	return c, nil
}

func leftPercent(i, n int) float64 {
	if n <= 1 {
		return 50
	}
	return float64(i)/float64(n-1)*spreadPercent + (100-spreadPercent)/2
}

// Cells returns the total number of glyphs.
func (c *Cascade) Cells() int {
	n := 0
	for _, col := range c.Columns {
		n += len(col.Glyphs)
	}
	return n
}

// Phase returns how far through its fall the column is after elapsed
// seconds, in [0,1).
func (col Column) Phase(elapsed, period float64) float64 {
	if period <= 0 {
		return 0
	}
	p := math.Mod(elapsed-col.Delay, period) / period
	if p < 0 {
		p++
	}
	return p
}

// Offset returns the top edge of a column of the given height travelling
// from just above the viewport to just below it.
func (col Column) Offset(elapsed, period, columnHeight, viewportHeight float64) float64 {
	return -columnHeight + col.Phase(elapsed, period)*(viewportHeight+columnHeight)
}

// X returns the horizontal center of the column for a viewport width.
func (col Column) X(width float64) float64 {
	return col.LeftPercent / 100 * width
}
