package render

import (
	"github.com/taigrr/tiny/pkg/math3d"
)

// MeshRenderer is the read-only view of a mesh the renderer needs.
// It keeps this package free of the models package.
type MeshRenderer interface {
	VertexCount() int
	TriangleCount() int
	GetVertex(i int) math3d.Vec3
	GetFace(i int) [3]int
}

// Stats counts what happened to the faces of the last draw calls.
type Stats struct {
	Faces    int // Faces visited
	Drawn    int // Faces painted
	Culled   int // Faces facing away from the light
	Rejected int // Faces with vertex indices outside the mesh
}

// Renderer draws meshes into a framebuffer with an orthographic
// projection and no depth buffer: faces are painted in mesh order and
// later faces overwrite earlier ones.
type Renderer struct {
	fb    *Framebuffer
	Fill  FillMode // How flat-shaded faces are painted
	Stats Stats    // Statistics for debugging/benchmarking
}

// NewRenderer creates a renderer that paints into fb.
func NewRenderer(fb *Framebuffer) *Renderer {
	return &Renderer{fb: fb}
}

// Framebuffer returns the render target.
func (r *Renderer) Framebuffer() *Framebuffer {
	return r.fb
}

// Width returns the framebuffer width.
func (r *Renderer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Renderer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ResetStats clears the face counters.
func (r *Renderer) ResetStats() {
	r.Stats = Stats{}
}

// Project maps x and y from [-1, 1] onto the framebuffer, truncating to
// whole pixels. z is ignored.
func (r *Renderer) Project(v math3d.Vec3) math3d.Vec2i {
	return math3d.V2i(
		int((v.X+1)*float64(r.Width())/2),
		int((v.Y+1)*float64(r.Height())/2),
	)
}

// faceVertices gathers and transforms the vertices of face i.
// ok is false when an index is outside the vertex list.
func (r *Renderer) faceVertices(mesh MeshRenderer, i int, transform math3d.Mat4) (world [3]math3d.Vec3, screen [3]math3d.Vec2i, ok bool) {
	face := mesh.GetFace(i)
	n := mesh.VertexCount()
	for j, idx := range face {
		if idx < 0 || idx >= n {
			return world, screen, false
		}
		world[j] = transform.MulVec3(mesh.GetVertex(idx))
		screen[j] = r.Project(world[j])
	}
	return world, screen, true
}

// DrawMeshFlat renders a mesh with flat shading: one gray per face from
// the face normal and lightDir. Faces turned away from the light are
// skipped.
func (r *Renderer) DrawMeshFlat(mesh MeshRenderer, transform math3d.Mat4, lightDir math3d.Vec3) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		r.Stats.Faces++

		world, screen, ok := r.faceVertices(mesh, i, transform)
		if !ok {
			r.Stats.Rejected++
			continue
		}

		color, lit := FlatShade(world, lightDir)
		if !lit {
			r.Stats.Culled++
			continue
		}

		r.fb.FillTriangle(screen, color, r.Fill)
		r.Stats.Drawn++
	}
}

// DrawMeshWireframe renders a mesh as wireframe.
func (r *Renderer) DrawMeshWireframe(mesh MeshRenderer, transform math3d.Mat4, color Color) {
	for i := 0; i < mesh.TriangleCount(); i++ {
		r.Stats.Faces++

		_, screen, ok := r.faceVertices(mesh, i, transform)
		if !ok {
			r.Stats.Rejected++
			continue
		}

		r.fb.DrawTriangleOutline(screen, color)
		r.Stats.Drawn++
	}
}
