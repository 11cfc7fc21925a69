package drbdadm

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Verb is a state-changing drbdadm subcommand.
type Verb string

const (
	VerbUp        Verb = "up"
	VerbDown      Verb = "down"
	VerbPrimary   Verb = "primary"
	VerbSecondary Verb = "secondary"
	VerbAdjust    Verb = "adjust"
)

func (v Verb) args(resource string) ([]string, error) {
	switch v {
	case VerbUp:
		return UpArgs(resource), nil
	case VerbDown:
		return DownArgs(resource), nil
	case VerbPrimary:
		return PrimaryArgs(resource), nil
	case VerbSecondary:
		return SecondaryArgs(resource), nil
	case VerbAdjust:
		return AdjustArgs(resource), nil
	default:
		return nil, fmt.Errorf("unknown drbdadm verb %q", string(v))
	}
}

// Execute runs one drbdadm verb against a resource and blocks until it
// exits. A non-zero exit is returned as a *CommandError holding the
// combined output. There is no retry.
func Execute(ctx context.Context, verb Verb, resource string) error {
	args, err := verb.args(resource)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"command": Command,
		"args":    args,
	}).Debug("executing drbd admin command")

	cmd := ExecCommandContext(ctx, Command, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return newCommandError(err, Command, args, string(out))
	}

	return nil
}

// Executor runs admin verbs through Execute. It satisfies the command
// runner interfaces declared by consumers.
type Executor struct{}

// Execute implements the consumer-side command runner.
func (Executor) Execute(ctx context.Context, verb Verb, resource string) error {
	return Execute(ctx, verb, resource)
}
