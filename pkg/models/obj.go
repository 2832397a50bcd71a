package models

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/tiny/pkg/math3d"
)

// OBJStats counts what the OBJ parser did with its input.
type OBJStats struct {
	Lines    int // Lines read
	Vertices int // "v" records accepted
	Polygons int // "f" records accepted
	Skipped  int // Malformed "v" or "f" records, and faces using missing vertices
}

// LoadOBJ loads a Wavefront OBJ file.
//
// A file that cannot be opened yields an empty mesh with Loaded false
// together with the error, so callers may either check the error or the
// flag.
func LoadOBJ(path string) (*Mesh, OBJStats, error) {
	name := filepath.Base(path)

	f, err := os.Open(path)
	if err != nil {
		return NewMesh(name), OBJStats{}, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, stats, err := ParseOBJ(f, name)
	if err != nil {
		return mesh, stats, fmt.Errorf("parse %s: %w", path, err)
	}
	return mesh, stats, nil
}

// ParseOBJ reads OBJ data from r.
//
// Only positions ("v x y z") and faces ("f a/b/c ...") are read. Of each
// face vertex only the position index is used; it is converted from the
// file's 1-based numbering, and negative indices count back from the
// latest vertex. Polygons are split into a triangle fan around their first
// vertex. Every other record is ignored. Malformed "v" and "f" lines, and
// faces that refer to a vertex the file never defines, are skipped, so a
// partly broken file still loads.
//
// The returned error is only set when reading fails.
func ParseOBJ(r io.Reader, name string) (*Mesh, OBJStats, error) {
	mesh := NewMesh(name)
	var (
		stats OBJStats
		polys [][]int
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		stats.Lines++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, ok := parseVertex(fields[1:])
			if !ok {
				stats.Skipped++
				continue
			}
			mesh.Vertices = append(mesh.Vertices, v)
			stats.Vertices++
		case "f":
			idx, ok := parseFace(fields[1:], len(mesh.Vertices))
			if !ok {
				stats.Skipped++
				continue
			}
			polys = append(polys, idx)
		}
	}
	if err := scanner.Err(); err != nil {
		return mesh, stats, fmt.Errorf("read obj: %w", err)
	}

	// Faces may name vertices defined further down, so they are checked
	// once the whole file is read.
	for _, idx := range polys {
		if !inRange(idx, len(mesh.Vertices)) {
			stats.Skipped++
			continue
		}
		for i := 1; i+1 < len(idx); i++ {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{idx[0], idx[i], idx[i+1]}})
		}
		stats.Polygons++
	}

	mesh.CalculateBounds()
	mesh.Loaded = true
	return mesh, stats, nil
}

// parseVertex reads the x, y and z of a "v" record. A fourth (w)
// coordinate is allowed and ignored.
func parseVertex(fields []string) (math3d.Vec3, bool) {
	if len(fields) < 3 {
		return math3d.Vec3{}, false
	}
	var xyz [3]float64
	for i := range xyz {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math3d.Vec3{}, false
		}
		xyz[i] = f
	}
	return math3d.V3(xyz[0], xyz[1], xyz[2]), true
}

func inRange(idx []int, n int) bool {
	for _, i := range idx {
		if i < 0 || i >= n {
			return false
		}
	}
	return true
}

// parseFace returns the zero-based position indices of an "f" record.
// nverts is the number of vertices defined so far, for relative indices.
func parseFace(fields []string, nverts int) ([]int, bool) {
	if len(fields) < 3 {
		return nil, false
	}
	idx := make([]int, 0, len(fields))
	for _, group := range fields {
		pos, _, _ := strings.Cut(group, "/")
		n, err := strconv.Atoi(pos)
		if err != nil || n == 0 {
			return nil, false
		}
		if n < 0 {
			n += nverts
		} else {
			n--
		}
		idx = append(idx, n)
	}
	return idx, true
}
