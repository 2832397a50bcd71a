// Package models provides triangle meshes and the loaders that fill them.
package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/tiny/pkg/math3d"
)

// ErrFaceIndex is returned when a face refers to a vertex the mesh does not
// have.
var ErrFaceIndex = errors.New("face index out of range")

// Mesh represents a 3D mesh with vertices and triangular faces.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    []Face

	// Loaded is set once a loader has read the whole source. A mesh whose
	// file could not be opened is returned empty with Loaded false.
	Loaded bool

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// Face represents a triangle face by zero-based vertex indices.
type Face struct {
	V [3]int // Indices into Mesh.Vertices
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]math3d.Vec3, 0),
		Faces:    make([]Face, 0),
	}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v)
		m.BoundsMax = m.BoundsMax.Max(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Vertex returns vertex i, or false if i is out of range.
func (m *Mesh) Vertex(i int) (math3d.Vec3, bool) {
	if i < 0 || i >= len(m.Vertices) {
		return math3d.Vec3{}, false
	}
	return m.Vertices[i], true
}

// Face returns face i, or false if i is out of range.
func (m *Mesh) Face(i int) (Face, bool) {
	if i < 0 || i >= len(m.Faces) {
		return Face{}, false
	}
	return m.Faces[i], true
}

// Validate reports the first face that refers to a missing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: vertex %d of %d: %w", i, idx, n, ErrFaceIndex)
			}
		}
	}
	return nil
}

// Transform applies a transformation matrix to all vertices.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(m.Vertices[i])
	}
	m.CalculateBounds()
}

// Fit centers the mesh on the origin and scales it uniformly so its
// largest dimension spans [-1, 1]. Flat meshes keep their scale.
func (m *Mesh) Fit() {
	m.CalculateBounds()
	size := m.Size()
	maxDim := max(size.X, size.Y, size.Z)
	center := m.Center()
	if maxDim <= 0 {
		m.Transform(math3d.Translate(center.Negate()))
		return
	}
	m.Transform(math3d.ScaleUniform(2 / maxDim).Mul(math3d.Translate(center.Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]math3d.Vec3, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Loaded:    m.Loaded,
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	return clone
}

// GetVertex returns the position of vertex i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetVertex(i int) math3d.Vec3 {
	return m.Vertices[i]
}

// GetFace returns the vertex indices for face i.
// Implements render.MeshRenderer interface.
func (m *Mesh) GetFace(i int) [3]int {
	return m.Faces[i].V
}

// GetBounds returns the axis-aligned bounding box.
func (m *Mesh) GetBounds() (minV, maxV math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}
