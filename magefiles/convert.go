//go:build mage

package main

import (
	"os"
	"os/exec"
)

// C2G converts the project's Cursor rules into Copilot instructions.
// See prd001-rules-conversion for full requirements.
func C2G() error {
	return runRuler("c2g")
}

// G2C converts the project's Copilot instructions into Cursor rules.
// See prd001-rules-conversion for full requirements.
func G2C() error {
	return runRuler("g2c")
}

// runRuler runs the CLI from source so targets work without a prior Build.
func runRuler(args ...string) error {
	goArgs := append([]string{"run", cmdPkg}, args...)
	cmd := exec.Command("go", goArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
