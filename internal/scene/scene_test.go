package scene

import (
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/tiny/pkg/render"
)

const triangleOBJ = `v -0.5 -0.5 0
v 0.5 -0.5 0
v 0 0.5 0
f 1/1/1 2/2/2 3/3/3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, Wireframe().Validate())
	assert.Equal(t, ModeWireframe, Wireframe().Mode)
	assert.Equal(t, [3]float64{0, 0, -1}, Default().Light)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "scene.toml", `
width = 64
mesh = "models/head.obj"
output = "/tmp/abs.webp"
light = [1.0, 0.0, -1.0]
fill = "barycentric"
`)

	s, err := Load(path, Default())
	require.NoError(t, err)
	assert.Equal(t, 64, s.Width)
	assert.Equal(t, 512, s.Height, "missing keys keep the base value")
	assert.Equal(t, filepath.Join(dir, "models", "head.obj"), s.Mesh)
	assert.Equal(t, "/tmp/abs.webp", s.Output)
	assert.Equal(t, [3]float64{1, 0, -1}, s.Light)
	assert.Equal(t, "barycentric", s.Fill)
	assert.Equal(t, ModeFlat, s.Mode)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"), Default())
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, dir, "unknown.toml", "zbuffer = true\n"), Default())
	assert.Error(t, err)

	_, err = Load(writeFile(t, dir, "broken.toml", "width = \n"), Default())
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	s := Default()
	light := [3]float64{0, 1, 0}
	s.Resolve(Flags{Width: 10, Output: "x.tga", Light: &light, Fill: "outline"})

	assert.Equal(t, 10, s.Width)
	assert.Equal(t, 512, s.Height)
	assert.Equal(t, "x.tga", s.Output)
	assert.Equal(t, light, s.Light)
	assert.Equal(t, "outline", s.Fill)
	assert.Equal(t, Default().Mesh, s.Mesh)
	assert.Equal(t, 1, s.Scale)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Scene)
	}{
		{"zero width", func(s *Scene) { s.Width = 0 }},
		{"negative height", func(s *Scene) { s.Height = -1 }},
		{"two channels", func(s *Scene) { s.Channels = 2 }},
		{"zero scale", func(s *Scene) { s.Scale = 0 }},
		{"no mesh", func(s *Scene) { s.Mesh = "" }},
		{"unknown mode", func(s *Scene) { s.Mode = "gouraud" }},
		{"unknown fill", func(s *Scene) { s.Fill = "flood" }},
		{"bad output", func(s *Scene) { s.Output = "out.bmp" }},
		{"bad color", func(s *Scene) { s.Color = "#fff" }},
		{"bad background", func(s *Scene) { s.Background = "black" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidScene)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#ff0000", color.RGBA{255, 0, 0, 255}, false},
		{"0x00FF00", color.RGBA{0, 255, 0, 255}, false},
		{"0000ff", color.RGBA{0, 0, 255, 255}, false},
		{"#aabbccdd", color.RGBA{0xAA, 0xBB, 0xCC, 0xDD}, false},
		{"#000000ff", color.RGBA{0, 0, 0, 255}, false},
		{"#00000000", color.RGBA{}, false},
		{"#fff", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseLight(t *testing.T) {
	l, err := ParseLight("0, 0.5,-1")
	require.NoError(t, err)
	assert.Equal(t, [3]float64{0, 0.5, -1}, l)

	_, err = ParseLight("1,2")
	assert.Error(t, err)
	_, err = ParseLight("1,a,2")
	assert.Error(t, err)
}

func TestLoadMesh(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tri.obj", triangleOBJ)

	mesh, err := LoadMesh(path, false, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 1, 2}, mesh.GetFace(0))

	flipped, err := LoadMesh(path, true, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 2, 1}, flipped.GetFace(0))

	_, err = LoadMesh(writeFile(t, dir, "mesh.stl", ""), false, quietLogger())
	assert.Error(t, err)

	_, err = LoadMesh(filepath.Join(dir, "missing.obj"), false, quietLogger())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	mesh, err := LoadMesh(writeFile(t, dir, "tri.obj", triangleOBJ), false, quietLogger())
	require.NoError(t, err)

	s := Default()
	s.Width, s.Height = 100, 100
	s.Background = "#102030"

	fb, stats, err := s.Render(mesh)
	require.NoError(t, err)
	assert.Equal(t, render.Stats{Faces: 1, Drawn: 1}, stats)
	assert.Equal(t, render.ColorWhite, fb.GetPixel(50, 40))
	assert.Equal(t, render.RGB(0x10, 0x20, 0x30), fb.GetPixel(5, 5))

	s.Light = [3]float64{0, 0, 1}
	fb, stats, err = s.Render(mesh)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Culled)
	assert.Equal(t, render.RGB(0x10, 0x20, 0x30), fb.GetPixel(50, 40))

	s.Mode = ModeWireframe
	s.Color = "#ff0000"
	fb, _, err = s.Render(mesh)
	require.NoError(t, err)
	assert.Equal(t, render.ColorRed, fb.GetPixel(25, 25))
	assert.Equal(t, render.RGB(0x10, 0x20, 0x30), fb.GetPixel(50, 40))
}

func TestRenderFit(t *testing.T) {
	dir := t.TempDir()
	mesh, err := LoadMesh(writeFile(t, dir, "big.obj", "v 0 0 0\nv 40 0 0\nv 20 40 0\nf 1 3 2\n"), false, quietLogger())
	require.NoError(t, err)

	s := Default()
	s.Width, s.Height = 100, 100
	s.Mode = ModeWireframe
	s.Fit = true

	fb, _, err := s.Render(mesh)
	require.NoError(t, err)
	assert.Equal(t, render.ColorWhite, fb.GetPixel(0, 0))
	assert.Equal(t, 40.0, mesh.Vertices[1].X, "fit must not touch the caller's mesh")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	s := Default()
	s.Width, s.Height = 100, 100
	s.Scale = 2
	s.Mesh = writeFile(t, dir, "tri.obj", triangleOBJ)
	s.Output = filepath.Join(dir, "out.png")

	stats, err := s.Run(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Drawn)

	f, err := os.Open(s.Output)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)

	assert.Equal(t, 200, img.Bounds().Dx())
	// (50, 40) bottom-up is row 59 top-down, doubled by the scale.
	r, g, b, _ := img.At(100, 118).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})
	r, g, b, _ = img.At(100, 199).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r, g, b})
}

func TestRunInvalid(t *testing.T) {
	s := Default()
	s.Width = 0
	_, err := s.Run(quietLogger())
	assert.ErrorIs(t, err, ErrInvalidScene)
}
