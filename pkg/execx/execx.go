// Package execx provides a stub-friendly interface for running external
// commands (package managers, shells).
package execx

import (
	"bytes"
	"context"
	"os/exec"
)

// Result holds the outcome of a command execution.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner runs external commands. Implementations must be safe for stubbing
// in tests.
type Runner interface {
	// Run executes a command and returns its result. A non-zero exit is
	// reported through Result.ExitCode, not through the error; the error is
	// reserved for execution failures (binary not found, context canceled).
	Run(ctx context.Context, name string, args ...string) (Result, error)

	// LookPath reports whether name resolves to an executable on PATH.
	LookPath(name string) bool
}

// OSRunner is the production Runner over os/exec.
type OSRunner struct{}

func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}

func (r *OSRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
