package core

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// HSLA is a hue/saturation/lightness/alpha color with byte channels.
// Hue arithmetic wraps at 256, matching the palette math of the
// simulation (a hue step of 11 walks the full circle in ~23 hops).
type HSLA struct {
	H, S, L, A uint8
}

// WithAlpha returns the color with its alpha channel replaced.
func (c HSLA) WithAlpha(a uint8) HSLA {
	c.A = a
	return c
}

// ShiftHue returns the color with the hue advanced by offset, wrapping
// at 256.
func (c HSLA) ShiftHue(offset uint8) HSLA {
	c.H = uint8((uint16(c.H) + uint16(offset)) % 256)
	return c
}

// NRGBA converts to a straight-alpha RGBA color.
func (c HSLA) NRGBA() color.NRGBA {
	rgb := colorful.Hsl(float64(c.H)/255*360, float64(c.S)/255, float64(c.L)/255)
	r, g, b := rgb.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}
