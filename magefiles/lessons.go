//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

type Lessons mg.Namespace

const outDir = "out"

// Renders every lesson image into out/.
func (Lessons) All() error {
	mg.Deps(Build.Binary)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	runs := [][]string{
		{"pixels", "-o", "lesson0.png", "--scale", "4"},
		{"lines", "-o", "lesson1.png", "--scale", "4"},
		{"triangles", "-o", "triangles.png", "--scale", "2"},
		{"triangles", "-o", "triangles-barycentric.png", "--scale", "2", "--fill", "barycentric"},
		{"wireframe", "-o", "wireframe.png"},
		{"flat", "-o", "lesson2.png"},
	}
	for _, args := range runs {
		args[2] = filepath.Join(outDir, args[2])
		if _, err := executeCmd(filepath.Join("bin", "tiny"), withArgs(args...)); err != nil {
			return err
		}
	}
	fmt.Printf("Lessons written to %s/\n", outDir)
	return nil
}
