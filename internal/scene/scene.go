// Package scene describes a single mesh render and runs it: load the mesh,
// paint it, flip the result upright and write it to disk.
//
// Scenes start from the lesson defaults, may be overridden by a TOML file
// and finally by command-line flags.
package scene

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/taigrr/tiny/pkg/math3d"
	"github.com/taigrr/tiny/pkg/render"
)

// ErrInvalidScene is returned by Validate for unusable settings.
var ErrInvalidScene = errors.New("invalid scene")

// Render modes.
const (
	ModeFlat      = "flat"
	ModeWireframe = "wireframe"
)

// Scene holds everything needed to render one mesh to one image.
type Scene struct {
	// Output
	Width    int    `toml:"width"`
	Height   int    `toml:"height"`
	Channels int    `toml:"channels"`
	Output   string `toml:"output"`
	Scale    int    `toml:"scale"`

	// Input
	Mesh        string `toml:"mesh"`
	FlipWinding bool   `toml:"flip_winding"`
	Fit         bool   `toml:"fit"`

	// Shading
	Mode       string     `toml:"mode"`
	Fill       string     `toml:"fill"`
	Light      [3]float64 `toml:"light"`
	Color      string     `toml:"color"`
	Background string     `toml:"background"`
}

// Default returns the flat-shading lesson: a 512×512 image lit from the
// viewer along (0, 0, -1).
func Default() Scene {
	return Scene{
		Width:      512,
		Height:     512,
		Channels:   3,
		Output:     "lesson2.png",
		Scale:      1,
		Mesh:       filepath.Join("assets", "torus.obj"),
		Mode:       ModeFlat,
		Fill:       render.FillScanline.String(),
		Light:      [3]float64{0, 0, -1},
		Color:      "#ffffff",
		Background: "#000000",
	}
}

// Wireframe returns the wireframe lesson: white edges on black, 512×512.
func Wireframe() Scene {
	s := Default()
	s.Mode = ModeWireframe
	s.Output = "wireframe.png"
	return s
}

// Load reads a TOML scene file on top of base. Keys missing from the file
// keep the base values; unknown keys are an error. Relative mesh and
// output paths set by the file are taken relative to the file.
func Load(path string, base Scene) (Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("scene: read %s: %w", path, err)
	}

	s := base
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return base, fmt.Errorf("scene: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if s.Mesh != base.Mesh && s.Mesh != "" && !filepath.IsAbs(s.Mesh) {
		s.Mesh = filepath.Join(dir, s.Mesh)
	}
	if s.Output != base.Output && s.Output != "" && !filepath.IsAbs(s.Output) {
		s.Output = filepath.Join(dir, s.Output)
	}
	return s, nil
}

// Flags holds command-line values that override file settings. Zero
// values leave the scene unchanged.
type Flags struct {
	Width  int
	Height int
	Mesh   string
	Output string
	Mode   string
	Fill   string
	Light  *[3]float64
	Scale  int
}

// Resolve applies the non-zero flags.
func (s *Scene) Resolve(f Flags) {
	if f.Width > 0 {
		s.Width = f.Width
	}
	if f.Height > 0 {
		s.Height = f.Height
	}
	if f.Mesh != "" {
		s.Mesh = f.Mesh
	}
	if f.Output != "" {
		s.Output = f.Output
	}
	if f.Mode != "" {
		s.Mode = f.Mode
	}
	if f.Fill != "" {
		s.Fill = f.Fill
	}
	if f.Light != nil {
		s.Light = *f.Light
	}
	if f.Scale > 0 {
		s.Scale = f.Scale
	}
}

// Validate checks every setting and reports the first problem.
func (s Scene) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidScene, s.Width, s.Height)
	case s.Channels != 3 && s.Channels != 4:
		return fmt.Errorf("%w: channels must be 3 or 4, got %d", ErrInvalidScene, s.Channels)
	case s.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalidScene, s.Scale)
	case s.Mesh == "":
		return fmt.Errorf("%w: no mesh", ErrInvalidScene)
	case s.Mode != ModeFlat && s.Mode != ModeWireframe:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidScene, s.Mode)
	}
	if _, ok := render.ParseFillMode(s.Fill); !ok {
		return fmt.Errorf("%w: unknown fill %q", ErrInvalidScene, s.Fill)
	}
	if _, err := render.FormatFromPath(s.Output); err != nil {
		return fmt.Errorf("%w: output: %w", ErrInvalidScene, err)
	}
	if _, err := ParseColor(s.Color); err != nil {
		return fmt.Errorf("%w: color: %w", ErrInvalidScene, err)
	}
	if _, err := ParseColor(s.Background); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalidScene, err)
	}
	return nil
}

// LightDir returns the light as a vector.
func (s Scene) LightDir() math3d.Vec3 {
	return math3d.V3(s.Light[0], s.Light[1], s.Light[2])
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"; the "#" may also be "0x"
// or left out.
func ParseColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(s), "#"), "0x")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(h) == 8 {
		// Hex reads small values as RGB, so spell out the alpha form.
		return render.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return render.Hex(uint32(v)), nil
}

// ParseLight parses "x,y,z".
func ParseLight(s string) ([3]float64, error) {
	var out [3]float64
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return out, fmt.Errorf("light %q: want x,y,z", s)
	}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return out, fmt.Errorf("light %q: %w", s, err)
		}
		out[i] = f
	}
	return out, nil
}
