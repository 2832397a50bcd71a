package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/taigrr/tiny/pkg/math3d"
	"github.com/taigrr/tiny/pkg/models"
	"github.com/taigrr/tiny/pkg/render"
)

// LoadMesh loads a mesh by file extension: .obj, .glb or .gltf.
func LoadMesh(path string, flipWinding bool, logger *log.Logger) (*models.Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		mesh, stats, err := models.LoadOBJ(path)
		if err != nil {
			return nil, fmt.Errorf("load mesh: %w", err)
		}
		if stats.Skipped > 0 {
			logger.Warn("skipped malformed obj records", "path", path, "skipped", stats.Skipped)
		}
		if flipWinding {
			for i := range mesh.Faces {
				f := &mesh.Faces[i]
				f.V[1], f.V[2] = f.V[2], f.V[1]
			}
		}
		return mesh, nil
	case ".glb", ".gltf":
		loader := &models.GLTFLoader{FlipWinding: flipWinding}
		mesh, err := loader.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load mesh: %w", err)
		}
		return mesh, nil
	default:
		return nil, fmt.Errorf("unsupported mesh format: %q (use .obj, .glb or .gltf)", ext)
	}
}

// Render paints mesh into a new framebuffer. The buffer is left in the
// rasterizer's bottom-up orientation.
func (s Scene) Render(mesh *models.Mesh) (*render.Framebuffer, render.Stats, error) {
	if err := s.Validate(); err != nil {
		return nil, render.Stats{}, err
	}
	bg, _ := ParseColor(s.Background)
	fg, _ := ParseColor(s.Color)
	fill, _ := render.ParseFillMode(s.Fill)

	if s.Fit {
		mesh = mesh.Clone()
		mesh.Fit()
	}

	fb := render.NewFramebufferChannels(s.Width, s.Height, s.Channels)
	fb.Clear(bg)

	r := render.NewRenderer(fb)
	r.Fill = fill
	switch s.Mode {
	case ModeWireframe:
		r.DrawMeshWireframe(mesh, math3d.Identity(), fg)
	default:
		r.DrawMeshFlat(mesh, math3d.Identity(), s.LightDir())
	}
	return fb, r.Stats, nil
}

// Export flips fb upright, enlarges it by scale and saves it to path.
// fb is flipped in place.
func Export(fb *render.Framebuffer, path string, scale int) error {
	fb.FlipVertical()
	if scale > 1 {
		fb = fb.Scaled(scale)
	}
	if err := fb.Save(path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// Run loads the mesh, renders it and writes the image.
func (s Scene) Run(logger *log.Logger) (render.Stats, error) {
	if err := s.Validate(); err != nil {
		return render.Stats{}, err
	}

	mesh, err := LoadMesh(s.Mesh, s.FlipWinding, logger)
	if err != nil {
		return render.Stats{}, err
	}
	logger.Debug("mesh loaded", "name", mesh.Name, "vertices", mesh.VertexCount(), "faces", mesh.TriangleCount())

	fb, stats, err := s.Render(mesh)
	if err != nil {
		return stats, err
	}
	if err := Export(fb, s.Output, s.Scale); err != nil {
		return stats, err
	}

	logger.Info("rendered",
		"output", s.Output,
		"width", s.Width*s.Scale,
		"height", s.Height*s.Scale,
		"mode", s.Mode,
		"faces", stats.Faces,
		"drawn", stats.Drawn,
		"culled", stats.Culled,
	)
	return stats, nil
}
