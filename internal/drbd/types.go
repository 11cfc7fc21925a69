package drbd

import "errors"

// ConnState is the pairing status between the two nodes of a resource.
type ConnState string

const (
	ConnUnconfigured         ConnState = "Unconfigured" // Never brought up on this node
	ConnConnected            ConnState = "Connected"    // Fully paired with the peer
	ConnWaitingForConnection ConnState = "WFConnection" // Up and retrying the peer
	ConnStandAlone           ConnState = "StandAlone"   // Up, lost the peer, stopped retrying
)

// Role is whether a node serves I/O for a resource.
type Role string

const (
	RoleUnknown   Role = "Unknown"
	RolePrimary   Role = "Primary"
	RoleSecondary Role = "Secondary"
)

// DiskState is the coarse state of a node's local copy of the data.
// Only "current" is distinguished from everything else.
type DiskState string

const (
	DiskUnconfigured DiskState = "Unconfigured"
	DiskUpToDate     DiskState = "UpToDate"
)

// ResourceStatus is the live state of one replicated resource as reported
// by the connection listing.
type ResourceStatus struct {
	Name          string    `json:"name" yaml:"name"`
	Minor         int       `json:"minor" yaml:"minor"`
	VolumeIndex   int       `json:"volumeIndex" yaml:"volumeIndex"`
	ConnState     ConnState `json:"connState" yaml:"connState"`
	Role          Role      `json:"role" yaml:"role"`
	PeerRole      Role      `json:"peerRole" yaml:"peerRole"`
	DiskState     DiskState `json:"diskState" yaml:"diskState"`
	PeerDiskState DiskState `json:"peerDiskState" yaml:"peerDiskState"`
}

// IsUp reports whether the resource has been brought up on this node.
func (s ResourceStatus) IsUp() bool {
	return s.ConnState != ConnUnconfigured
}

// Capacity is the usable size of a resource in bytes.
type Capacity struct {
	Name      string `json:"name" yaml:"name"`
	SizeBytes uint64 `json:"sizeBytes" yaml:"sizeBytes"`
}

// KiB is the unit the capacity reporter uses.
const KiB = 1024

var (
	// ErrResourceNotConfigured means the resource is absent from the
	// replication engine's listing.
	ErrResourceNotConfigured = errors.New("resource not configured")

	// ErrResourceNotReady means a volume operation was attempted while the
	// resource is not up.
	ErrResourceNotReady = errors.New("resource not up")

	// ErrPeerConflict means the peer already holds the Primary role.
	ErrPeerConflict = errors.New("peer is already primary")
)
