package status

import (
	"fmt"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/drbd"
)

// PhaseFor summarizes a resource state as a storage phase.
func PhaseFor(st drbd.ResourceStatus) v1alpha1.StoragePhase {
	switch {
	case !st.IsUp():
		return v1alpha1.StoragePhaseDown
	case st.ConnState == drbd.ConnStandAlone:
		return v1alpha1.StoragePhaseStandAlone
	case st.ConnState != drbd.ConnConnected:
		return v1alpha1.StoragePhaseConnecting
	case st.Role == drbd.RolePrimary:
		return v1alpha1.StoragePhasePrimary
	default:
		return v1alpha1.StoragePhaseSecondary
	}
}

// Apply records the observed resource state and capacity on the storage
// object: phase, conditions and the raw connection fields.
func Apply(s *v1alpha1.DRBDStorage, st drbd.ResourceStatus, capacityBytes uint64) {
	s.SetPhase(PhaseFor(st))
	s.Status.CapacityBytes = capacityBytes
	s.Status.Connection = &v1alpha1.ConnectionStatus{
		Minor:         st.Minor,
		ConnState:     string(st.ConnState),
		Role:          string(st.Role),
		PeerRole:      string(st.PeerRole),
		DiskState:     string(st.DiskState),
		PeerDiskState: string(st.PeerDiskState),
	}

	boolCondition(s, v1alpha1.ConditionConfigured, st.IsUp(), "ResourceUp", "ResourceDown",
		fmt.Sprintf("connection state %s", st.ConnState))
	boolCondition(s, v1alpha1.ConditionPeerConnected, st.ConnState == drbd.ConnConnected, "Connected", "NotConnected",
		fmt.Sprintf("peer role %s", st.PeerRole))
	boolCondition(s, v1alpha1.ConditionDiskUpToDate, st.DiskState == drbd.DiskUpToDate, "UpToDate", "NotUpToDate",
		fmt.Sprintf("disk state %s", st.DiskState))
	boolCondition(s, v1alpha1.ConditionPeerDiskUpToDate, st.PeerDiskState == drbd.DiskUpToDate, "UpToDate", "NotUpToDate",
		fmt.Sprintf("peer disk state %s", st.PeerDiskState))
}

// MarkNotConfigured records that the replication engine does not list the
// resource at all.
func MarkNotConfigured(s *v1alpha1.DRBDStorage) {
	s.SetPhase(v1alpha1.StoragePhaseDown)
	s.Status.CapacityBytes = 0
	s.Status.Connection = nil
	SetCondition(s, v1alpha1.ConditionConfigured, v1alpha1.ConditionFalse, "NotConfigured",
		fmt.Sprintf("resource %s is not known to the replication engine", s.Spec.Resource))
	for _, c := range []string{v1alpha1.ConditionPeerConnected, v1alpha1.ConditionDiskUpToDate, v1alpha1.ConditionPeerDiskUpToDate} {
		SetCondition(s, c, v1alpha1.ConditionUnknown, "NotConfigured", "")
	}
}

// IsDegraded returns true if the resource is up but not paired.
func IsDegraded(phase v1alpha1.StoragePhase) bool {
	return phase == v1alpha1.StoragePhaseConnecting || phase == v1alpha1.StoragePhaseStandAlone
}
