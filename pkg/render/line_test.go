package render

import (
	"image/color"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// painted returns the set of pixels that differ from the clear color.
func painted(fb *Framebuffer) map[[2]int]bool {
	out := make(map[[2]int]bool)
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			if fb.GetPixel(x, y) != ColorBlack {
				out[[2]int{x, y}] = true
			}
		}
	}
	return out
}

func drawLine(w, h, x0, y0, x1, y1 int) map[[2]int]bool {
	fb := NewFramebuffer(w, h)
	fb.DrawLine(x0, y0, x1, y1, ColorWhite)
	return painted(fb)
}

var lineCases = []struct {
	name           string
	x0, y0, x1, y1 int
}{
	{"shallow", 13, 20, 80, 40},
	{"steep", 20, 13, 40, 80},
	{"shallow descending", 80, 40, 13, 20},
	{"steep descending", 40, 80, 20, 13},
	{"negative slope", 5, 90, 95, 10},
	{"diagonal", 0, 0, 99, 99},
	{"horizontal", 0, 50, 99, 50},
	{"vertical", 50, 0, 50, 99},
	{"short", 3, 3, 4, 7},
}

func TestDrawLineSymmetry(t *testing.T) {
	for _, tc := range lineCases {
		t.Run(tc.name, func(t *testing.T) {
			forward := drawLine(100, 100, tc.x0, tc.y0, tc.x1, tc.y1)
			backward := drawLine(100, 100, tc.x1, tc.y1, tc.x0, tc.y0)
			assert.Equal(t, forward, backward)
		})
	}
}

func TestDrawLineConnectivity(t *testing.T) {
	for _, tc := range lineCases {
		t.Run(tc.name, func(t *testing.T) {
			px := drawLine(100, 100, tc.x0, tc.y0, tc.x1, tc.y1)

			dx, dy := abs(tc.x1-tc.x0), abs(tc.y1-tc.y0)
			steep := dx < dy

			// Exactly one pixel per step of the major axis, and
			// neighbors differ by at most one on the minor axis.
			lo, hi := min(tc.x0, tc.x1), max(tc.x0, tc.x1)
			if steep {
				lo, hi = min(tc.y0, tc.y1), max(tc.y0, tc.y1)
			}
			minor := make(map[int]int)
			for p := range px {
				major, m := p[0], p[1]
				if steep {
					major, m = p[1], p[0]
				}
				_, dup := minor[major]
				assert.False(t, dup, "two pixels at major coordinate %d", major)
				minor[major] = m
			}
			assert.Len(t, minor, hi-lo+1)
			for i := lo + 1; i <= hi; i++ {
				assert.LessOrEqual(t, abs(minor[i]-minor[i-1]), 1, "gap at major coordinate %d", i)
			}
		})
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	for _, tc := range lineCases {
		t.Run(tc.name, func(t *testing.T) {
			px := drawLine(100, 100, tc.x0, tc.y0, tc.x1, tc.y1)
			assert.True(t, px[[2]int{tc.x0, tc.y0}], "start not painted")
			assert.True(t, px[[2]int{tc.x1, tc.y1}], "end not painted")
		})
	}
}

func TestDrawLineExactPixels(t *testing.T) {
	px := drawLine(10, 10, 0, 0, 3, 1)
	want := map[[2]int]bool{
		{0, 0}: true,
		{1, 0}: true,
		{2, 1}: true,
		{3, 1}: true,
	}
	assert.Equal(t, want, px)
}

func TestDrawLineSinglePoint(t *testing.T) {
	px := drawLine(10, 10, 4, 6, 4, 6)
	assert.Equal(t, map[[2]int]bool{{4, 6}: true}, px)
}

func TestDrawLineClipped(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	// Runs far outside the buffer on both ends; only the visible part lands.
	fb.DrawLine(-50, 5, 50, 5, ColorRed)
	for x := range 10 {
		assert.Equal(t, ColorRed, fb.GetPixel(x, 5))
	}
	assert.Len(t, painted(fb), 10)
}

// bresenham walks the whole line without clipping and returns the
// pixels that land inside a w×h buffer.
func bresenham(w, h, x0, y0, x1, y1 int) map[[2]int]bool {
	out := make(map[[2]int]bool)
	keep := func(x, y int) {
		if x >= 0 && x < w && y >= 0 && y < h {
			out[[2]int{x, y}] = true
		}
	}
	if x0 == x1 && y0 == y1 {
		keep(x0, y0)
		return out
	}
	steep := abs(x0-x1) < abs(y0-y1)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	if x0 > x1 {
		x0, x1, y0, y1 = x1, x0, y1, y0
	}
	dx, derr, sy := x1-x0, abs(y1-y0)*2, 1
	if y1 < y0 {
		sy = -1
	}
	err, y := 0, y0
	for x := x0; x <= x1; x++ {
		if steep {
			keep(y, x)
		} else {
			keep(x, y)
		}
		err += derr
		if err > dx {
			y += sy
			err -= dx * 2
		}
	}
	return out
}

func TestDrawLineClipKeepsPixels(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for range 2000 {
		x0, y0 := rng.Intn(600)-300, rng.Intn(600)-300
		x1, y1 := rng.Intn(600)-300, rng.Intn(600)-300
		want := bresenham(40, 30, x0, y0, x1, y1)
		got := drawLine(40, 30, x0, y0, x1, y1)
		assert.Equal(t, want, got, "(%d,%d)-(%d,%d)", x0, y0, x1, y1)
	}
}

func TestDrawLineHuge(t *testing.T) {
	// A walk over every step would take seconds; clipping makes it instant.
	px := drawLine(10, 10, -2_000_000_000, 5, 2_000_000_000, 5)
	assert.Len(t, px, 10)

	px = drawLine(10, 10, -1_000_000_000, -1_000_000_000, 1_000_000_000, 1_000_000_000)
	want := make(map[[2]int]bool)
	for i := range 10 {
		want[[2]int{i, i}] = true
	}
	assert.Equal(t, want, px)
}

func TestDrawLineV(t *testing.T) {
	a := NewFramebuffer(50, 50)
	b := NewFramebuffer(50, 50)
	a.DrawLine(1, 2, 40, 30, color.RGBA{1, 2, 3, 255})
	b.DrawLineV(v2i(1, 2), v2i(40, 30), color.RGBA{1, 2, 3, 255})
	assert.Equal(t, a.Pixels, b.Pixels)
}

func BenchmarkDrawLine(b *testing.B) {
	fb := NewFramebuffer(512, 512)
	for b.Loop() {
		fb.DrawLine(0, 0, 511, 300, ColorWhite)
	}
}
