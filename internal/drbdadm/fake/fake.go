// Package fake replaces drbdadm.ExecCommandContext with a scripted sequence
// of expected commands for tests.
package fake

import (
	"bytes"
	"context"
	"io"
	"slices"
	"testing"

	"github.com/jbweber/drbdvol/internal/drbdadm"
)

type Exec struct {
	cmds []*ExpectedCmd
}

func (b *Exec) ExpectCommands(cmds ...*ExpectedCmd) {
	b.cmds = append(b.cmds, cmds...)
}

// Setup installs the fake for the duration of the test. Every expected
// command must be executed, in order.
func (b *Exec) Setup(t *testing.T) {
	t.Helper()

	tmp := drbdadm.ExecCommandContext

	i := 0

	drbdadm.ExecCommandContext = func(_ context.Context, name string, args ...string) drbdadm.Cmd {
		if len(b.cmds) <= i {
			t.Fatalf("expected %d command executions, got more (%s %v)", len(b.cmds), name, args)
		}
		cmd := b.cmds[i]

		if !cmd.Matches(name, args...) {
			t.Fatalf("unexpected command at call index %d: got %s %v, want %s %v", i, name, args, cmd.Name, cmd.Args)
		}

		i++
		return cmd
	}

	t.Cleanup(func() {
		drbdadm.ExecCommandContext = tmp

		if i != len(b.cmds) {
			t.Errorf("expected %d command executions, got %d", len(b.cmds), i)
		}
	})
}

type ExpectedCmd struct {
	Name string
	Args []string

	// Stdout is returned by Output and CombinedOutput.
	Stdout []byte
	// Stderr is written to the stderr writer and appended by CombinedOutput.
	Stderr    []byte
	ResultErr error

	stderr io.Writer
}

var _ drbdadm.Cmd = &ExpectedCmd{}

func (c *ExpectedCmd) Matches(name string, args ...string) bool {
	return c.Name == name && slices.Equal(c.Args, args)
}

func (c *ExpectedCmd) Output() ([]byte, error) {
	if c.stderr != nil {
		_, _ = io.Copy(c.stderr, bytes.NewReader(c.Stderr))
	}
	return c.Stdout, c.ResultErr
}

func (c *ExpectedCmd) CombinedOutput() ([]byte, error) {
	return append(slices.Clone(c.Stdout), c.Stderr...), c.ResultErr
}

func (c *ExpectedCmd) SetStderr(w io.Writer) {
	c.stderr = w
}

// ExitErr mimics [exec.ExitError] without spawning a process.
type ExitErr struct{ Code int }

func (e ExitErr) Error() string { return "ExitErr" }
func (e ExitErr) ExitCode() int { return e.Code }
