package lifecycle

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/drbdadm"
)

func newTestController(src statusSource, run commandRunner) (*Controller, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return New(src, run, log), hook
}

func TestActivateStorage(t *testing.T) {
	const res = "res0"

	tests := []struct {
		name      string
		states    []drbd.ResourceStatus
		wantCalls []string
		wantErr   error
	}{
		{
			name:      "connected is a no-op",
			states:    []drbd.ResourceStatus{withConn(res, drbd.ConnConnected, drbd.RoleSecondary, drbd.RoleSecondary)},
			wantCalls: nil,
		},
		{
			name:      "waiting for connection is a no-op",
			states:    []drbd.ResourceStatus{withConn(res, drbd.ConnWaitingForConnection, drbd.RoleSecondary, drbd.RoleUnknown)},
			wantCalls: nil,
		},
		{
			name: "unconfigured is brought up as secondary",
			states: []drbd.ResourceStatus{
				unconfigured(res),
				withConn(res, drbd.ConnWaitingForConnection, drbd.RoleSecondary, drbd.RoleUnknown),
			},
			wantCalls: []string{"up res0", "secondary res0"},
		},
		{
			name: "standalone is adjusted",
			states: []drbd.ResourceStatus{
				withConn(res, drbd.ConnStandAlone, drbd.RoleSecondary, drbd.RoleUnknown),
				withConn(res, drbd.ConnConnected, drbd.RoleSecondary, drbd.RoleSecondary),
			},
			wantCalls: []string{"adjust res0"},
		},
		{
			name: "standalone that becomes unconfigured after adjust is brought up",
			states: []drbd.ResourceStatus{
				withConn(res, drbd.ConnStandAlone, drbd.RoleSecondary, drbd.RoleUnknown),
				unconfigured(res),
				withConn(res, drbd.ConnConnected, drbd.RoleSecondary, drbd.RoleSecondary),
			},
			wantCalls: []string{"adjust res0", "up res0", "secondary res0"},
		},
		{
			name: "still unconfigured after up fails",
			states: []drbd.ResourceStatus{
				unconfigured(res),
			},
			wantCalls: []string{"up res0", "secondary res0"},
			wantErr:   drbd.ErrResourceNotReady,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newMockStatusSource(tt.states...)
			run := newMockRunner()
			c, _ := newTestController(src, run)

			err := c.ActivateStorage(context.Background(), res)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, run.calls)
		})
	}
}

func TestActivateStorage_StandAlonePersistsIsReported(t *testing.T) {
	standalone := withConn("res0", drbd.ConnStandAlone, drbd.RoleSecondary, drbd.RoleUnknown)
	src := newMockStatusSource(standalone, standalone)
	run := newMockRunner()
	c, hook := newTestController(src, run)

	require.NoError(t, c.ActivateStorage(context.Background(), "res0"))
	assert.Equal(t, []string{"adjust res0"}, run.calls)
	assert.Len(t, src.getResourceCalls, 2, "state must be re-read after adjust")

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warned = true
		}
	}
	assert.True(t, warned, "persisting StandAlone must be logged as a warning")
}

func TestActivateStorage_CommandFailureStops(t *testing.T) {
	src := newMockStatusSource(unconfigured("res0"))
	run := newMockRunner()
	toolErr := errors.New("exit status 10")
	run.failOn[drbdadm.VerbUp] = toolErr
	c, _ := newTestController(src, run)

	err := c.ActivateStorage(context.Background(), "res0")
	require.Error(t, err)
	assert.ErrorIs(t, err, toolErr)
	assert.Contains(t, err.Error(), "res0")
	assert.Contains(t, err.Error(), "drbdadm up")
	assert.Equal(t, []string{"up res0"}, run.calls, "secondary must not run after up fails")
}

func TestActivateStorage_NotConfigured(t *testing.T) {
	src := newMockStatusSource()
	run := newMockRunner()
	c, _ := newTestController(src, run)

	err := c.ActivateStorage(context.Background(), "res0")
	assert.ErrorIs(t, err, drbd.ErrResourceNotConfigured)
	assert.Empty(t, run.calls)
}

func TestDeactivateStorage(t *testing.T) {
	tests := []struct {
		name      string
		state     drbd.ResourceStatus
		wantCalls []string
	}{
		{
			name:      "unconfigured is a no-op",
			state:     unconfigured("res0"),
			wantCalls: nil,
		},
		{
			name:      "primary is demoted then downed",
			state:     withConn("res0", drbd.ConnConnected, drbd.RolePrimary, drbd.RoleSecondary),
			wantCalls: []string{"secondary res0", "down res0"},
		},
		{
			name:      "secondary is still demoted before down",
			state:     withConn("res0", drbd.ConnStandAlone, drbd.RoleSecondary, drbd.RoleUnknown),
			wantCalls: []string{"secondary res0", "down res0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := newMockRunner()
			c, _ := newTestController(newMockStatusSource(tt.state), run)

			require.NoError(t, c.DeactivateStorage(context.Background(), "res0"))
			assert.Equal(t, tt.wantCalls, run.calls)
		})
	}
}

func TestDeactivateStorage_SecondaryFailureSkipsDown(t *testing.T) {
	run := newMockRunner()
	run.failOn[drbdadm.VerbSecondary] = errors.New("device is held open")
	c, _ := newTestController(newMockStatusSource(withConn("res0", drbd.ConnConnected, drbd.RolePrimary, drbd.RoleSecondary)), run)

	err := c.DeactivateStorage(context.Background(), "res0")
	require.Error(t, err)
	assert.Equal(t, []string{"secondary res0"}, run.calls)
}

func TestActivateVolume(t *testing.T) {
	tests := []struct {
		name      string
		state     drbd.ResourceStatus
		wantCalls []string
		wantErr   error
	}{
		{
			name:    "not up",
			state:   unconfigured("res0"),
			wantErr: drbd.ErrResourceNotReady,
		},
		{
			name:    "peer already primary",
			state:   withConn("res0", drbd.ConnConnected, drbd.RoleSecondary, drbd.RolePrimary),
			wantErr: drbd.ErrPeerConflict,
		},
		{
			name:      "connected secondary is promoted",
			state:     withConn("res0", drbd.ConnConnected, drbd.RoleSecondary, drbd.RoleSecondary),
			wantCalls: []string{"primary res0"},
		},
		{
			name:      "waiting with unknown peer is promoted",
			state:     withConn("res0", drbd.ConnWaitingForConnection, drbd.RoleSecondary, drbd.RoleUnknown),
			wantCalls: []string{"primary res0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := newMockRunner()
			c, _ := newTestController(newMockStatusSource(tt.state), run)

			err := c.ActivateVolume(context.Background(), "res0")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, run.calls)
		})
	}
}

func TestDeactivateVolume(t *testing.T) {
	tests := []struct {
		name      string
		state     drbd.ResourceStatus
		wantCalls []string
		wantErr   error
	}{
		{
			name:    "not up",
			state:   unconfigured("res0"),
			wantErr: drbd.ErrResourceNotReady,
		},
		{
			name:      "primary is demoted",
			state:     withConn("res0", drbd.ConnConnected, drbd.RolePrimary, drbd.RoleSecondary),
			wantCalls: []string{"secondary res0"},
		},
		{
			name:      "already secondary is demoted again",
			state:     withConn("res0", drbd.ConnConnected, drbd.RoleSecondary, drbd.RoleSecondary),
			wantCalls: []string{"secondary res0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := newMockRunner()
			c, _ := newTestController(newMockStatusSource(tt.state), run)

			err := c.DeactivateVolume(context.Background(), "res0")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, run.calls)
		})
	}
}

func TestScenario_ActivateStorageThenVolume(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine("res0")
	c, _ := newTestController(eng, eng)

	require.NoError(t, c.ActivateStorage(ctx, "res0"))
	assert.Equal(t, []string{"up res0", "secondary res0"}, eng.calls)

	st, err := eng.GetResource(ctx, "res0")
	require.NoError(t, err)
	assert.Equal(t, drbd.ConnConnected, st.ConnState)
	assert.Equal(t, drbd.RoleSecondary, st.PeerRole)

	require.NoError(t, c.ActivateVolume(ctx, "res0"))
	assert.Equal(t, []string{"up res0", "secondary res0", "primary res0"}, eng.calls)

	// Second activation is idempotent: the resource is already up.
	require.NoError(t, c.ActivateStorage(ctx, "res0"))
	assert.Len(t, eng.calls, 3)

	require.NoError(t, c.DeactivateStorage(ctx, "res0"))
	assert.Equal(t, []string{"up res0", "secondary res0", "primary res0", "secondary res0", "down res0"}, eng.calls)

	require.NoError(t, c.DeactivateStorage(ctx, "res0"))
	assert.Len(t, eng.calls, 5)
}

func TestScenario_PeerPrimaryBlocksPromotion(t *testing.T) {
	ctx := context.Background()
	eng := newFakeEngine("res0")
	eng.peerRole = drbd.RolePrimary
	c, _ := newTestController(eng, eng)

	require.NoError(t, c.ActivateStorage(ctx, "res0"))
	before := len(eng.calls)

	err := c.ActivateVolume(ctx, "res0")
	assert.ErrorIs(t, err, drbd.ErrPeerConflict)
	assert.Len(t, eng.calls, before, "no mutating call may be issued on peer conflict")
}
