package lifecycle

import (
	"context"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/drbdadm"
)

// statusSource reads the live state of a resource.
//
// In production, this is satisfied by *registry.Registry.
// In tests, this is satisfied by mock implementations.
type statusSource interface {
	// GetResource returns the status of one resource, or an error wrapping
	// drbd.ErrResourceNotConfigured when it is not listed
	GetResource(ctx context.Context, name string) (drbd.ResourceStatus, error)
}

// commandRunner issues one state-changing admin verb.
//
// In production, this is satisfied by drbdadm.Executor.
// In tests, this is satisfied by mock implementations.
type commandRunner interface {
	Execute(ctx context.Context, verb drbdadm.Verb, resource string) error
}
