package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = Hex(0xFFFFFF)
	ColorRed   = Hex(0xFF0000)
	ColorGreen = Hex(0x00FF00)
	ColorBlue  = Hex(0x0000FF)
)

// RGB creates an opaque color from RGB values.
func RGB(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) color.RGBA {
	return color.RGBA{r, g, b, a}
}

// Hex unpacks a color from a packed integer.
//
// Values up to 0xFFFFFF are read as 0xRRGGBB and get alpha 255. Larger
// values are read as 0xRRGGBBAA.
func Hex(v uint32) color.RGBA {
	if v > 0xFFFFFF {
		return color.RGBA{
			R: uint8(v >> 24),
			G: uint8(v >> 16),
			B: uint8(v >> 8),
			A: uint8(v),
		}
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}

// Gray returns the opaque gray for a light intensity, intensity*255 on
// every channel. The product is truncated and clamped to [0, 255].
func Gray(intensity float64) color.RGBA {
	v := clamp8(intensity * 255)
	return color.RGBA{v, v, v, 255}
}

func clamp8(v float64) uint8 {
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
