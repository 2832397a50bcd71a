package lessons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taigrr/tiny/pkg/render"
)

func count(fb *render.Framebuffer, c render.Color) int {
	n := 0
	for _, p := range fb.Pixels {
		if p == c {
			n++
		}
	}
	return n
}

func TestPixels(t *testing.T) {
	fb := Pixels()
	assert.Equal(t, render.ColorRed, fb.GetPixel(10, 10))
	assert.Equal(t, render.ColorGreen, fb.GetPixel(11, 10))
	assert.Equal(t, 100*100-2, count(fb, render.ColorBlack))
}

func TestLines(t *testing.T) {
	fb := Lines()

	// The reversed red line covers every white pixel.
	assert.Zero(t, count(fb, render.ColorWhite))
	assert.Equal(t, render.ColorRed, fb.GetPixel(13, 20))
	assert.Equal(t, render.ColorRed, fb.GetPixel(80, 40))
	assert.Equal(t, render.ColorRed, fb.GetPixel(40, 80))
	// 68 pixels per line, one of them shared.
	assert.Equal(t, 135, count(fb, render.ColorRed))
}

func TestTriangles(t *testing.T) {
	tests := []struct {
		mode render.FillMode
		// Vertices on a triangle's top row are left out by the scanline
		// filler.
		skip map[[2]int]bool
	}{
		{render.FillScanline, map[[2]int]bool{{50, 160}: true, {70, 180}: true, {130, 180}: true}},
		{render.FillBarycentric, nil},
		{render.FillOutline, nil},
	}

	for _, tc := range tests {
		t.Run(tc.mode.String(), func(t *testing.T) {
			fb := Triangles(tc.mode)
			assert.Equal(t, 200, fb.Width)
			for _, tri := range TutorialTriangles {
				for _, p := range tri.Pts {
					if tc.skip[[2]int{p.X, p.Y}] {
						continue
					}
					assert.Equal(t, tri.Color, fb.GetPixel(p.X, p.Y), "vertex %v", p)
				}
			}
		})
	}
}

func TestTrianglesOutlineCounts(t *testing.T) {
	fb := Triangles(render.FillOutline)
	assert.Equal(t, 229, count(fb, render.ColorRed))
	assert.Equal(t, 358, count(fb, render.ColorWhite))
	assert.Equal(t, 130, count(fb, render.ColorGreen))
}

func TestTrianglesFilledInterior(t *testing.T) {
	for _, mode := range []render.FillMode{render.FillScanline, render.FillBarycentric} {
		fb := Triangles(mode)
		assert.Equal(t, render.ColorRed, fb.GetPixel(45, 100), mode.String())
		assert.Equal(t, render.ColorWhite, fb.GetPixel(140, 80), mode.String())
		assert.Equal(t, render.ColorGreen, fb.GetPixel(140, 165), mode.String())
		assert.Equal(t, render.ColorBlack, fb.GetPixel(5, 5), mode.String())
	}
}
