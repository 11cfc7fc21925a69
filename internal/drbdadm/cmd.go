package drbdadm

import (
	"context"
	"io"
	"os/exec"
)

// Cmd is the subset of [exec.Cmd] used by this package.
type Cmd interface {
	Output() ([]byte, error)
	CombinedOutput() ([]byte, error)
	SetStderr(io.Writer)
}

// ExecCommandContext is overridable for testing purposes.
var ExecCommandContext = func(ctx context.Context, name string, arg ...string) Cmd {
	return (*execCmd)(exec.CommandContext(ctx, name, arg...))
}

// dummy decorator to isolate from [exec.Cmd] struct fields
type execCmd exec.Cmd

var _ Cmd = &execCmd{}

func (r *execCmd) Output() ([]byte, error)         { return (*exec.Cmd)(r).Output() }
func (r *execCmd) CombinedOutput() ([]byte, error) { return (*exec.Cmd)(r).CombinedOutput() }
func (r *execCmd) SetStderr(w io.Writer)           { (*exec.Cmd)(r).Stderr = w }

// helper to isolate from [exec.ExitError]
func errToExitCode(err error) int {
	type exitCode interface{ ExitCode() int }

	if errWithExitCode, ok := err.(exitCode); ok {
		return errWithExitCode.ExitCode()
	}

	return -1
}
