//go:build mage

package main

import (
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// goTool runs the go command with args on top of the current environment
// plus env, streaming its output.
func goTool(env map[string]string, args ...string) error {
	fmt.Printf("go %s\n", strings.Join(args, " "))
	if err := sh.RunWithV(env, mg.GoCmd(), args...); err != nil {
		return fmt.Errorf("go %s: %w", args[0], err)
	}
	return nil
}

// testbedArgs builds the command line of the testbed binary for backend.
func testbedArgs(backend string, extra ...string) []string {
	args := []string{"run", ".", "-backend", backend}
	return append(args, extra...)
}
