package math3d

// Vec2i is an integer screen-space point.
type Vec2i struct {
	X, Y int
}

// V2i creates a new Vec2i.
func V2i(x, y int) Vec2i {
	return Vec2i{x, y}
}

// U returns the first component. Alias of X.
func (a Vec2i) U() int { return a.X }

// V returns the second component. Alias of Y.
func (a Vec2i) V() int { return a.Y }

// Lerp interpolates from a towards b by t in float32. Each component is
// truncated toward zero, not rounded; scanline fills depend on both.
func (a Vec2i) Lerp(b Vec2i, t float32) Vec2i {
	return Vec2i{
		lerp32(a.X, b.X, t),
		lerp32(a.Y, b.Y, t),
	}
}

// lerp32 rounds the product before the sum, so the result never depends
// on whether the compiler fuses the multiply-add.
func lerp32(a, b int, t float32) int {
	return int(float32(a) + float32(float32(b-a)*t))
}
