package drbdadm

import (
	"bytes"
	"context"

	"github.com/sirupsen/logrus"
)

// ListOverview runs the connection listing and returns its stdout.
func ListOverview(ctx context.Context) (string, error) {
	return list(ctx, OverviewCommand, OverviewArgs)
}

// ListStatistics runs the capacity listing and returns its stdout.
func ListStatistics(ctx context.Context) (string, error) {
	return list(ctx, SetupCommand, StatisticsArgs)
}

// list returns nothing on failure; a partial stdout is never handed back.
func list(ctx context.Context, name string, args []string) (string, error) {
	logrus.WithFields(logrus.Fields{
		"command": name,
		"args":    args,
	}).Debug("listing drbd status")

	cmd := ExecCommandContext(ctx, name, args...)

	var stderr bytes.Buffer
	cmd.SetStderr(&stderr)

	out, err := cmd.Output()
	if err != nil {
		return "", newCommandError(err, name, args, stderr.String())
	}

	return string(out), nil
}

// Lister runs the two status listings. It satisfies the lister interface
// declared by the registry.
type Lister struct{}

func (Lister) ListOverview(ctx context.Context) (string, error)   { return ListOverview(ctx) }
func (Lister) ListStatistics(ctx context.Context) (string, error) { return ListStatistics(ctx) }
