//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

type Build mg.Namespace

// Builds the tiny binary into bin/.
func (Build) Binary() error {
	return sh.RunV("go", "build", "-o", "bin/tiny", "./cmd/tiny")
}

// Runs go mod tidy and go vet.
func (Build) Tidy() error {
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	return sh.RunV("go", "vet", "./...")
}

type Test mg.Namespace

// Runs every unit test.
func (Test) Unit() error {
	return sh.RunV("go", "test", "./...")
}

// Runs the rasterizer benchmarks.
func (Test) Bench() error {
	return sh.RunV("go", "test", "-run", "^$", "-bench", ".", "./pkg/...")
}
