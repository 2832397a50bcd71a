package render

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFramebuffer(t *testing.T) {
	tests := []struct {
		name         string
		channels     int
		wantChannels int
		wantPixel    color.RGBA
	}{
		{"rgb starts opaque black", 3, 3, ColorBlack},
		{"rgba starts transparent", 4, 4, color.RGBA{}},
		{"odd channel count is rgba", 1, 4, color.RGBA{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := NewFramebufferChannels(4, 3, tc.channels)
			assert.Equal(t, tc.wantChannels, fb.Channels)
			assert.Len(t, fb.Pixels, 12)
			assert.Equal(t, tc.wantPixel, fb.GetPixel(2, 1))
		})
	}

	assert.Equal(t, 3, NewFramebuffer(1, 1).Channels)
	assert.Empty(t, NewFramebuffer(-5, 10).Pixels)
}

func TestSetPixelClipped(t *testing.T) {
	fb := NewFramebuffer(5, 5)
	before := append([]color.RGBA(nil), fb.Pixels...)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {100, 100}, {-100, 3}} {
		fb.SetPixel(p[0], p[1], ColorRed)
	}
	assert.Equal(t, before, fb.Pixels)

	fb.SetPixel(4, 4, ColorRed)
	assert.Equal(t, ColorRed, fb.GetPixel(4, 4))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(5, 4), "out of bounds read")
}

func TestSetPixelAlpha(t *testing.T) {
	translucent := Hex(0xAABBCCDD)

	rgb := NewFramebuffer(1, 1)
	rgb.SetPixel(0, 0, translucent)
	assert.Equal(t, color.RGBA{0xAA, 0xBB, 0xCC, 0xFF}, rgb.GetPixel(0, 0))

	rgba := NewFramebufferChannels(1, 1, 4)
	rgba.SetPixel(0, 0, translucent)
	assert.Equal(t, translucent, rgba.GetPixel(0, 0))
}

func TestClear(t *testing.T) {
	fb := NewFramebuffer(3, 3)
	fb.Clear(RGBA(10, 20, 30, 0))
	for _, p := range fb.Pixels {
		assert.Equal(t, RGB(10, 20, 30), p)
	}
}

func TestFlip(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(2, 1, ColorGreen)

	fb.FlipVertical()
	assert.Equal(t, ColorRed, fb.GetPixel(0, 1))
	assert.Equal(t, ColorGreen, fb.GetPixel(2, 0))
	assert.Equal(t, ColorBlack, fb.GetPixel(0, 0))

	fb.FlipHorizontal()
	assert.Equal(t, ColorRed, fb.GetPixel(2, 1))
	assert.Equal(t, ColorGreen, fb.GetPixel(0, 0))
}

func TestFlipVerticalOddHeight(t *testing.T) {
	fb := NewFramebuffer(1, 3)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(0, 1, ColorGreen)
	fb.SetPixel(0, 2, ColorBlue)

	fb.FlipVertical()
	assert.Equal(t, []color.RGBA{ColorBlue, ColorGreen, ColorRed}, fb.Pixels)
}

func TestToImage(t *testing.T) {
	fb := NewFramebufferChannels(2, 2, 4)
	fb.SetPixel(1, 0, Hex(0xAABBCCDD))

	img := fb.ToImage()
	require.Equal(t, 2, img.Bounds().Dx())
	assert.Equal(t, color.NRGBA{0xAA, 0xBB, 0xCC, 0xDD}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 1))
}

func TestScaled(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.SetPixel(0, 0, ColorRed)
	fb.SetPixel(1, 1, ColorBlue)

	out := fb.Scaled(3)
	require.Equal(t, 6, out.Width)
	require.Equal(t, 6, out.Height)
	assert.Equal(t, fb.Channels, out.Channels)

	for y := range 6 {
		for x := range 6 {
			assert.Equal(t, fb.GetPixel(x/3, y/3), out.GetPixel(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestScaledKeepsAlpha(t *testing.T) {
	fb := NewFramebufferChannels(1, 1, 4)
	fb.SetPixel(0, 0, Hex(0x11223344))

	out := fb.Scaled(2)
	for _, p := range out.Pixels {
		assert.Equal(t, Hex(0x11223344), p)
	}
}

func TestScaledIdentity(t *testing.T) {
	fb := NewFramebuffer(4, 4)
	fb.DrawLine(0, 0, 3, 3, ColorWhite)

	for _, factor := range []int{0, 1} {
		out := fb.Scaled(factor)
		assert.Equal(t, fb.Pixels, out.Pixels)
		out.SetPixel(0, 3, ColorRed)
		assert.NotEqual(t, fb.GetPixel(0, 3), ColorRed, "Scaled must copy")
	}
}
