package scene

import (
	"errors"
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ErrBadColor is wrapped when a palette entry cannot be parsed.
var ErrBadColor = errors.New("bad color")

// warmBoundary splits the warm core from the cool rim.
const warmBoundary = 0.5

// Palette is an ordered set of colors to draw from.
type Palette []color.RGBA

// ParsePalette converts "#RRGGBB" strings to a palette.
func ParsePalette(hexes []string) (Palette, error) {
	p := make(Palette, 0, len(hexes))
	for _, h := range hexes {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	return p, nil
}

// ParseColor converts a single "#RRGGBB" string.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q: %v", ErrBadColor, hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Pick returns a uniformly chosen entry. An empty palette yields white.
func (p Palette) Pick(rnd Rand) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{255, 255, 255, 255}
	}
	return p[rnd.IntN(len(p))]
}

// ColorPolicy colors entities by how far from the center they sit.
type ColorPolicy struct {
	Warm, Cool Palette
	rnd        Rand
}

// NewColorPolicy builds a policy over the two palettes.
func NewColorPolicy(warm, cool Palette, rnd Rand) *ColorPolicy {
	return &ColorPolicy{Warm: warm, Cool: cool, rnd: rnd}
}

// PaletteFor returns the warm palette strictly inside the boundary and the
// cool palette from the boundary outward.
func (c *ColorPolicy) PaletteFor(distRatio float64) Palette {
	if distRatio < warmBoundary {
		return c.Warm
	}
	return c.Cool
}

// ColorForDistance draws a color once for an entity at distRatio. Two
// entities at the same ratio may get different colors.
func (c *ColorPolicy) ColorForDistance(distRatio float64) color.RGBA {
	return c.PaletteFor(distRatio).Pick(c.rnd)
}
