package render

import (
	"cmp"
	"image/color"
	"math"
	"slices"

	"github.com/taigrr/tiny/pkg/math3d"
)

// FillMode selects how triangles are painted.
type FillMode int

const (
	FillScanline    FillMode = iota // Edge-walk, one span per row
	FillBarycentric                 // Bounding-box scan with a barycentric inside test
	FillOutline                     // Three edges only
)

// String returns the flag spelling of the mode.
func (m FillMode) String() string {
	switch m {
	case FillScanline:
		return "scanline"
	case FillBarycentric:
		return "barycentric"
	case FillOutline:
		return "outline"
	default:
		return "unknown"
	}
}

// ParseFillMode parses "scanline", "barycentric" or "outline".
func ParseFillMode(s string) (FillMode, bool) {
	for _, m := range []FillMode{FillScanline, FillBarycentric, FillOutline} {
		if m.String() == s {
			return m, true
		}
	}
	return FillScanline, false
}

// FillTriangle paints a triangle with the given mode.
func (fb *Framebuffer) FillTriangle(pts [3]math3d.Vec2i, c color.RGBA, mode FillMode) {
	switch mode {
	case FillBarycentric:
		fb.DrawTriangleBarycentric(pts, c)
	case FillOutline:
		fb.DrawTriangleOutline(pts, c)
	default:
		fb.DrawTriangle(pts, c)
	}
}

// DrawTriangleOutline draws the three edges of a triangle.
func (fb *Framebuffer) DrawTriangleOutline(pts [3]math3d.Vec2i, c color.RGBA) {
	fb.DrawLineV(pts[0], pts[1], c)
	fb.DrawLineV(pts[1], pts[2], c)
	fb.DrawLineV(pts[2], pts[0], c)
}

// DrawTriangle fills a triangle one row at a time.
//
// The vertices are sorted by y. Every row between the lowest and the
// highest vertex (the highest row excluded) is bounded by the long edge
// t0→t2 and by whichever short edge spans that row; both ends of the span
// are painted. Edge positions are interpolated in float32 and truncated
// toward zero. Triangles with no vertical extent paint nothing. Rows and
// spans are clipped to the buffer before they are walked.
func (fb *Framebuffer) DrawTriangle(pts [3]math3d.Vec2i, c color.RGBA) {
	if pts[0].Y == pts[1].Y && pts[0].Y == pts[2].Y {
		return
	}

	slices.SortStableFunc(pts[:], func(a, b math3d.Vec2i) int {
		return cmp.Compare(a.Y, b.Y)
	})
	t0 := pts[0]

	first := max(0, -t0.Y)
	last := min(pts[2].Y-t0.Y, fb.Height-t0.Y)
	for i := first; i < last; i++ {
		x0, x1 := scanlineSpan(pts, i)
		x0, x1 = max(x0, 0), min(x1, fb.Width-1)

		y := t0.Y + i
		for x := x0; x <= x1; x++ {
			fb.SetPixel(x, y, c)
		}
	}
}

// scanlineSpan returns the inclusive x range of row t0.Y+i of a triangle
// whose vertices are sorted by y.
func scanlineSpan(pts [3]math3d.Vec2i, i int) (int, int) {
	t0, t1, t2 := pts[0], pts[1], pts[2]
	total := t2.Y - t0.Y
	lower := t1.Y - t0.Y
	second := i > lower || t1.Y == t0.Y

	seg, offset := lower, 0
	if second {
		seg, offset = t2.Y-t1.Y, lower
	}

	alpha := float32(i) / float32(total)
	beta := float32(i-offset) / float32(seg)

	a := t0.Lerp(t2, alpha)
	var b math3d.Vec2i
	if second {
		b = t1.Lerp(t2, beta)
	} else {
		b = t0.Lerp(t1, beta)
	}
	if a.X > b.X {
		a, b = b, a
	}
	return a.X, b.X
}

// DrawTriangleBarycentric fills a triangle by testing every pixel of its
// bounding box, clamped to the buffer, against the barycentric inside
// test. Pixels on an edge count as inside.
func (fb *Framebuffer) DrawTriangleBarycentric(pts [3]math3d.Vec2i, c color.RGBA) {
	if fb.Width == 0 || fb.Height == 0 {
		return
	}

	maxX, maxY := fb.Width-1, fb.Height-1
	bmin := math3d.V2i(maxX, maxY)
	bmax := math3d.V2i(0, 0)
	for _, p := range pts {
		bmin.X = max(0, min(bmin.X, p.X))
		bmin.Y = max(0, min(bmin.Y, p.Y))
		bmax.X = min(maxX, max(bmax.X, p.X))
		bmax.Y = min(maxY, max(bmax.Y, p.Y))
	}

	for x := bmin.X; x <= bmax.X; x++ {
		for y := bmin.Y; y <= bmax.Y; y++ {
			bc := Barycentric(pts, math3d.V2i(x, y))
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}
			fb.SetPixel(x, y, c)
		}
	}
}

// Barycentric returns the weights (w0, w1, w2) of p with respect to the
// triangle pts, so that p = w0*pts[0] + w1*pts[1] + w2*pts[2].
//
// A triangle whose doubled signed area is below one pixel is treated as
// degenerate and yields (-1, 1, 1), which every inside test rejects.
func Barycentric(pts [3]math3d.Vec2i, p math3d.Vec2i) math3d.Vec3 {
	u := math3d.V3(
		float64(pts[2].X-pts[0].X),
		float64(pts[1].X-pts[0].X),
		float64(pts[0].X-p.X),
	).Cross(math3d.V3(
		float64(pts[2].Y-pts[0].Y),
		float64(pts[1].Y-pts[0].Y),
		float64(pts[0].Y-p.Y),
	))
	if math.Abs(u.Z) < 1 {
		return math3d.V3(-1, 1, 1)
	}
	return math3d.V3(1-(u.X+u.Y)/u.Z, u.Y/u.Z, u.X/u.Z)
}
