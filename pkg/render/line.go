package render

import (
	"image/color"

	"github.com/taigrr/tiny/pkg/math3d"
)

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's
// algorithm with an integer error term.
//
// The walk always runs along the longer axis in increasing order, so the
// same pixels are painted whichever endpoint comes first, and each step
// moves at most one pixel on the minor axis.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c color.RGBA) {
	if x0 == x1 && y0 == y1 {
		fb.SetPixel(x0, y0, c)
		return
	}

	steep := false
	if abs(x0-x1) < abs(y0-y1) {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
		steep = true
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	derr := abs(dy) * 2
	sy := 1
	if y1 < y0 {
		sy = -1
	}

	// Clip the walk to the buffer along the major axis. Skipped steps are
	// replayed in closed form so the visible pixels do not move.
	limit := fb.Width
	if steep {
		limit = fb.Height
	}
	if x1 < 0 || x0 >= limit {
		return
	}

	err := 0
	y := y0
	start := x0
	if x0 < 0 {
		start = 0
		n := -x0
		if acc := n*derr - dx; acc > 0 {
			steps := (acc + 2*dx - 1) / (2 * dx)
			y += sy * steps
			err = n*derr - 2*dx*steps
		} else {
			err = n * derr
		}
	}

	for x := start; x <= min(x1, limit-1); x++ {
		if steep {
			fb.SetPixel(y, x, c) // transposed
		} else {
			fb.SetPixel(x, y, c)
		}
		err += derr
		if err > dx {
			y += sy
			err -= dx * 2
		}
	}
}

// DrawLineV draws a line between two screen points.
func (fb *Framebuffer) DrawLineV(a, b math3d.Vec2i, c color.RGBA) {
	fb.DrawLine(a.X, a.Y, b.X, b.Y, c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
