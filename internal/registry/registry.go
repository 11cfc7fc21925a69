// Package registry queries the replication engine for the live state and
// capacity of its resources.
package registry

import (
	"context"
	"fmt"

	"github.com/jbweber/drbdvol/internal/drbd"
)

// lister runs the two external status listings.
//
// In production, this is satisfied by drbdadm.Lister.
// In tests, this is satisfied by mock implementations.
type lister interface {
	ListOverview(ctx context.Context) (string, error)
	ListStatistics(ctx context.Context) (string, error)
}

// Registry reads resource state. It keeps no copy between calls; every
// query runs the external listing again.
type Registry struct {
	lister lister
}

// New creates a registry backed by the given lister.
func New(l lister) *Registry {
	return &Registry{lister: l}
}

// ListResources returns the status of every resource in the connection
// listing, or only the one named filter when filter is non-empty.
func (r *Registry) ListResources(ctx context.Context, filter string) (map[string]drbd.ResourceStatus, error) {
	out, err := r.lister.ListOverview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	all, err := drbd.ParseOverview(out)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	if filter == "" {
		return all, nil
	}

	res := make(map[string]drbd.ResourceStatus, 1)
	if st, ok := all[filter]; ok {
		res[filter] = st
	}
	return res, nil
}

// GetCapacity returns the usable size of every resource in the capacity
// listing, or only the one named filter when filter is non-empty.
func (r *Registry) GetCapacity(ctx context.Context, filter string) (map[string]drbd.Capacity, error) {
	out, err := r.lister.ListStatistics(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource capacity: %w", err)
	}

	all, err := drbd.ParseStatistics(out)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource capacity: %w", err)
	}
	if filter == "" {
		return all, nil
	}

	res := make(map[string]drbd.Capacity, 1)
	if c, ok := all[filter]; ok {
		res[filter] = c
	}
	return res, nil
}

// GetResource returns the status of a single resource. It fails with
// drbd.ErrResourceNotConfigured when the resource is not listed.
func (r *Registry) GetResource(ctx context.Context, name string) (drbd.ResourceStatus, error) {
	all, err := r.ListResources(ctx, name)
	if err != nil {
		return drbd.ResourceStatus{}, err
	}

	st, ok := all[name]
	if !ok {
		return drbd.ResourceStatus{}, fmt.Errorf("resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	return st, nil
}

// GetResourceCapacity returns the usable size of a single resource in
// bytes. It fails with drbd.ErrResourceNotConfigured when the resource has
// no capacity block.
func (r *Registry) GetResourceCapacity(ctx context.Context, name string) (uint64, error) {
	all, err := r.GetCapacity(ctx, name)
	if err != nil {
		return 0, err
	}

	c, ok := all[name]
	if !ok {
		return 0, fmt.Errorf("capacity of resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	return c.SizeBytes, nil
}
