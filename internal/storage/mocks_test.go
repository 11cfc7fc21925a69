package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/jbweber/drbdvol/internal/drbd"
)

// mockQuerier is a mock implementation of the resourceQuerier interface.
type mockQuerier struct {
	mu sync.Mutex

	// Configurable state; a nil status means the resource is not configured
	status      *drbd.ResourceStatus
	capacity    uint64
	hasCapacity bool

	getResourceErr error
	capacityErr    error

	// Call tracking
	capacityCalls []string
}

func newMockQuerier(status *drbd.ResourceStatus, capacity uint64) *mockQuerier {
	return &mockQuerier{status: status, capacity: capacity, hasCapacity: true}
}

func (m *mockQuerier) GetResource(_ context.Context, name string) (drbd.ResourceStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.getResourceErr != nil {
		return drbd.ResourceStatus{}, m.getResourceErr
	}
	if m.status == nil {
		return drbd.ResourceStatus{}, fmt.Errorf("resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	return *m.status, nil
}

func (m *mockQuerier) GetResourceCapacity(_ context.Context, name string) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.capacityCalls = append(m.capacityCalls, name)

	if m.capacityErr != nil {
		return 0, m.capacityErr
	}
	if !m.hasCapacity {
		return 0, fmt.Errorf("capacity of resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	return m.capacity, nil
}

// mockController is a mock implementation of the lifecycleController interface.
type mockController struct {
	mu sync.Mutex

	err error

	// Call tracking, formatted as "operation resource"
	calls []string
}

func (m *mockController) record(op, resource string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, op+" "+resource)
	return m.err
}

func (m *mockController) ActivateStorage(_ context.Context, resource string) error {
	return m.record("activate-storage", resource)
}

func (m *mockController) DeactivateStorage(_ context.Context, resource string) error {
	return m.record("deactivate-storage", resource)
}

func (m *mockController) ActivateVolume(_ context.Context, resource string) error {
	return m.record("activate-volume", resource)
}

func (m *mockController) DeactivateVolume(_ context.Context, resource string) error {
	return m.record("deactivate-volume", resource)
}

// mockUsage is a mock implementation of the usageSource interface.
type mockUsage struct {
	users []string
	err   error

	paths []string
}

func (m *mockUsage) VolumeUsers(_ context.Context, devicePath string) ([]string, error) {
	m.paths = append(m.paths, devicePath)
	return m.users, m.err
}

func connected() *drbd.ResourceStatus {
	return &drbd.ResourceStatus{
		Name:          testResource,
		ConnState:     drbd.ConnConnected,
		Role:          drbd.RoleSecondary,
		PeerRole:      drbd.RoleSecondary,
		DiskState:     drbd.DiskUpToDate,
		PeerDiskState: drbd.DiskUpToDate,
	}
}
