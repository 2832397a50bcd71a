package render

import (
	"github.com/taigrr/tiny/pkg/math3d"
)

// FaceNormal returns the unit normal of a triangle as
// normalize((v2 - v0) × (v1 - v0)).
//
// The operand order fixes the sign of the normal and with it which faces
// are lit. Degenerate triangles give the zero vector.
func FaceNormal(v [3]math3d.Vec3) math3d.Vec3 {
	return v[2].Sub(v[0]).Cross(v[1].Sub(v[0])).Normalize()
}

// FlatIntensity returns the light intensity of a face: the dot product of
// its normal with the light direction. It is not clamped.
func FlatIntensity(v [3]math3d.Vec3, lightDir math3d.Vec3) float64 {
	return FaceNormal(v).Dot(lightDir)
}

// FlatShade computes the single gray a face is filled with.
// ok is false when the face is turned away from the light (intensity <= 0)
// and must not be drawn.
func FlatShade(v [3]math3d.Vec3, lightDir math3d.Vec3) (c Color, ok bool) {
	intensity := FlatIntensity(v, lightDir)
	if !(intensity > 0) {
		return Color{}, false
	}
	return Gray(intensity), true
}
