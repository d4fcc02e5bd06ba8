//go:build mage

package main

import (
	"fmt"
	"strconv"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Runs the testbed in a native window with the given backend (glfw or sdl).
func (Run) Testbed(backend string) error {
	fmt.Printf("Run testbed on %s...\n", backend)
	return goTool(nil, testbedArgs(backend)...)
}

// Runs the testbed for a number of frames without opening a window.
func (Run) Headless(frames int) error {
	mg.Deps(Build.Engine)
	fmt.Printf("Run testbed headless for %d frames...\n", frames)
	env := map[string]string{"OXIDE_LOG": "debug"}
	return goTool(env, testbedArgs("headless", "-frames", strconv.Itoa(frames))...)
}
