//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Tidies the module and builds every package.
func (Build) Engine() error {
	if err := goTool(nil, "mod", "tidy"); err != nil {
		return err
	}
	return goTool(nil, "build", "./...")
}

// Runs the test suite with the race detector.
func (Build) Test() error {
	return goTool(nil, "test", "-race", "./...")
}
