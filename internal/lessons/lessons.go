// Package lessons holds the fixed 2D scenes of the tutorial programs.
//
// Every function paints into a fresh framebuffer in the rasterizer's
// bottom-up coordinates; flipping and encoding are left to the caller.
package lessons

import (
	"github.com/taigrr/tiny/pkg/math3d"
	"github.com/taigrr/tiny/pkg/render"
)

// Pixels paints a red pixel at (10, 10) and a green one right of it.
func Pixels() *render.Framebuffer {
	fb := render.NewFramebuffer(100, 100)
	fb.SetPixel(10, 10, render.ColorRed)
	fb.SetPixel(11, 10, render.ColorGreen)
	return fb
}

// Lines draws a shallow white line, a steep red line and the shallow line
// again in red from its other end, which must cover the white one exactly.
func Lines() *render.Framebuffer {
	fb := render.NewFramebuffer(100, 100)
	fb.DrawLine(13, 20, 80, 40, render.Hex(0xFFFFFF))
	fb.DrawLine(20, 13, 40, 80, render.ColorRed)
	fb.DrawLine(80, 40, 13, 20, render.ColorRed)
	return fb
}

// Triangle is a screen-space triangle with its paint color.
type Triangle struct {
	Pts   [3]math3d.Vec2i
	Color render.Color
}

// TutorialTriangles are the three test triangles of the triangle lesson:
// one with an edge steeper than the others, one spanning almost the whole
// height and one small one.
var TutorialTriangles = []Triangle{
	{[3]math3d.Vec2i{math3d.V2i(10, 70), math3d.V2i(50, 160), math3d.V2i(70, 80)}, render.ColorRed},
	{[3]math3d.Vec2i{math3d.V2i(180, 50), math3d.V2i(150, 1), math3d.V2i(70, 180)}, render.ColorWhite},
	{[3]math3d.Vec2i{math3d.V2i(180, 150), math3d.V2i(120, 160), math3d.V2i(130, 180)}, render.ColorGreen},
}

// Triangles paints the tutorial triangles into a 200×200 buffer.
func Triangles(mode render.FillMode) *render.Framebuffer {
	fb := render.NewFramebuffer(200, 200)
	for _, t := range TutorialTriangles {
		fb.FillTriangle(t.Pts, t.Color, mode)
	}
	return fb
}
