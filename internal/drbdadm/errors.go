package drbdadm

import (
	"fmt"
	"strings"
)

// CommandError is returned when an external DRBD tool cannot be started or
// exits non-zero. It carries the diagnostic text the tool produced.
type CommandError struct {
	Err             error
	commandWithArgs []string
	output          string
	exitCode        int
}

func newCommandError(err error, name string, args []string, output string) *CommandError {
	return &CommandError{
		Err:             err,
		commandWithArgs: append([]string{name}, args...),
		output:          output,
		exitCode:        errToExitCode(err),
	}
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", strings.Join(e.commandWithArgs, " "), e.Err)
	if out := strings.TrimSpace(e.output); out != "" {
		msg += ": " + out
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// CommandWithArgs returns the argv that was executed.
func (e *CommandError) CommandWithArgs() []string { return e.commandWithArgs }

// Output returns the captured diagnostic output.
func (e *CommandError) Output() string { return e.output }

// ExitCode returns the process exit code, or -1 if the process never ran.
func (e *CommandError) ExitCode() int { return e.exitCode }
