package math3d

import "math"

// Mat4 is an affine model transform stored in column-major order: columns
// 0-2 are the images of the x, y and z axes, column 3 is the translation.
// The renderer has no camera, so the bottom row is always 0 0 0 1.
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
type Mat4 [16]float64

// affine builds a matrix from its three basis columns and a translation.
func affine(x, y, z, t Vec3) Mat4 {
	return Mat4{
		x.X, x.Y, x.Z, 0,
		y.X, y.Y, y.Z, 0,
		z.X, z.Y, z.Z, 0,
		t.X, t.Y, t.Z, 1,
	}
}

var (
	axisX = V3(1, 0, 0)
	axisY = V3(0, 1, 0)
	axisZ = V3(0, 0, 1)
)

// Identity returns the identity matrix.
func Identity() Mat4 {
	return affine(axisX, axisY, axisZ, Zero3())
}

// Translate moves points by v.
func Translate(v Vec3) Mat4 {
	return affine(axisX, axisY, axisZ, v)
}

// Scale stretches each axis by the matching component of v.
func Scale(v Vec3) Mat4 {
	return affine(axisX.Scale(v.X), axisY.Scale(v.Y), axisZ.Scale(v.Z), Zero3())
}

func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX turns y toward z by angle radians.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return affine(axisX, V3(0, c, s), V3(0, -s, c), Zero3())
}

// RotateY turns z toward x by angle radians.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return affine(V3(c, 0, -s), axisY, V3(s, 0, c), Zero3())
}

// RotateZ turns x toward y by angle radians.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return affine(V3(c, s, 0), V3(-s, c, 0), axisZ, Zero3())
}

func (m Mat4) column(i int) Vec3 {
	return Vec3{m[i*4], m[i*4+1], m[i*4+2]}
}

// Mul composes two transforms; the result applies b first, then a.
func (a Mat4) Mul(b Mat4) Mat4 {
	return affine(
		a.MulDir(b.column(0)),
		a.MulDir(b.column(1)),
		a.MulDir(b.column(2)),
		a.MulVec3(b.column(3)),
	)
}

// MulVec3 transforms v as a point.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulDir(v).Add(m.column(3))
}

// MulDir transforms v as a direction, ignoring the translation.
func (m Mat4) MulDir(v Vec3) Vec3 {
	return m.column(0).Scale(v.X).Add(m.column(1).Scale(v.Y)).Add(m.column(2).Scale(v.Z))
}
