package lifecycle

import (
	"context"
	"fmt"
	"sync"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/drbdadm"
)

// mockStatusSource is a mock implementation of the statusSource interface.
// It returns states in order; the last state repeats once exhausted.
type mockStatusSource struct {
	mu sync.Mutex

	states []drbd.ResourceStatus
	err    error

	getResourceCalls []string
}

func newMockStatusSource(states ...drbd.ResourceStatus) *mockStatusSource {
	return &mockStatusSource{states: states}
}

func (m *mockStatusSource) GetResource(_ context.Context, name string) (drbd.ResourceStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := len(m.getResourceCalls)
	m.getResourceCalls = append(m.getResourceCalls, name)

	if m.err != nil {
		return drbd.ResourceStatus{}, m.err
	}
	if len(m.states) == 0 {
		return drbd.ResourceStatus{}, fmt.Errorf("resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	if idx >= len(m.states) {
		idx = len(m.states) - 1
	}
	return m.states[idx], nil
}

// mockRunner is a mock implementation of the commandRunner interface.
type mockRunner struct {
	mu sync.Mutex

	// Configurable behavior: failures keyed by verb
	failOn map[drbdadm.Verb]error

	// Call tracking, formatted as "verb resource"
	calls []string
}

func newMockRunner() *mockRunner {
	return &mockRunner{failOn: make(map[drbdadm.Verb]error)}
}

func (m *mockRunner) Execute(_ context.Context, verb drbdadm.Verb, resource string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf("%s %s", verb, resource))
	return m.failOn[verb]
}

// fakeEngine simulates a two-node replication engine from this node's point
// of view. It satisfies both statusSource and commandRunner so tests can
// run whole scenarios.
type fakeEngine struct {
	mu sync.Mutex

	state    drbd.ResourceStatus
	peerRole drbd.Role // peer role once connected

	calls []string
}

func newFakeEngine(name string) *fakeEngine {
	return &fakeEngine{
		state:    unconfigured(name),
		peerRole: drbd.RoleSecondary,
	}
}

func (f *fakeEngine) GetResource(_ context.Context, name string) (drbd.ResourceStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name != f.state.Name {
		return drbd.ResourceStatus{}, fmt.Errorf("resource %s: %w", name, drbd.ErrResourceNotConfigured)
	}
	return f.state, nil
}

func (f *fakeEngine) Execute(_ context.Context, verb drbdadm.Verb, resource string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf("%s %s", verb, resource))

	switch verb {
	case drbdadm.VerbUp, drbdadm.VerbAdjust:
		f.state.ConnState = drbd.ConnConnected
		f.state.Role = drbd.RoleSecondary
		f.state.PeerRole = f.peerRole
		f.state.DiskState = drbd.DiskUpToDate
		f.state.PeerDiskState = drbd.DiskUpToDate
	case drbdadm.VerbSecondary:
		if f.state.ConnState == drbd.ConnUnconfigured {
			return fmt.Errorf("%s: no such resource", resource)
		}
		f.state.Role = drbd.RoleSecondary
	case drbdadm.VerbPrimary:
		if f.state.PeerRole == drbd.RolePrimary {
			return fmt.Errorf("%s: multiple primaries not allowed", resource)
		}
		f.state.Role = drbd.RolePrimary
	case drbdadm.VerbDown:
		f.state = unconfigured(f.state.Name)
	}
	return nil
}

func unconfigured(name string) drbd.ResourceStatus {
	return drbd.ResourceStatus{
		Name:          name,
		ConnState:     drbd.ConnUnconfigured,
		Role:          drbd.RoleUnknown,
		PeerRole:      drbd.RoleUnknown,
		DiskState:     drbd.DiskUnconfigured,
		PeerDiskState: drbd.DiskUnconfigured,
	}
}

func withConn(name string, conn drbd.ConnState, role, peerRole drbd.Role) drbd.ResourceStatus {
	return drbd.ResourceStatus{
		Name:          name,
		ConnState:     conn,
		Role:          role,
		PeerRole:      peerRole,
		DiskState:     drbd.DiskUpToDate,
		PeerDiskState: drbd.DiskUpToDate,
	}
}
