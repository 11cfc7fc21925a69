package v1alpha1

// DRBDStorage is a host storage definition backed by one replicated DRBD
// resource. The resource is the storage's only volume.
//
// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Resource",type=string,JSONPath=`.spec.resource`
// +kubebuilder:printcolumn:name="Phase",type=string,JSONPath=`.status.phase`
type DRBDStorage struct {
	TypeMeta `json:",inline" yaml:",inline"`

	// +optional
	ObjectMeta `json:"metadata,omitempty" yaml:"metadata,omitempty"`

	// Spec defines the storage configuration.
	Spec DRBDStorageSpec `json:"spec" yaml:"spec"`

	// Status is the observed state, filled in when the storage is queried.
	// +optional
	Status DRBDStorageStatus `json:"status,omitempty" yaml:"status,omitempty"`
}

// DRBDStorageSpec defines the storage configuration.
type DRBDStorageSpec struct {
	// Resource is the replicated resource name. It is also the volume name
	// and must follow vm-<vmid>-disk-<suffix>.
	Resource string `json:"resource" yaml:"resource"`

	// DeviceNamespace is the directory holding by-res device links.
	// Defaults to "dev/drbd".
	// +optional
	DeviceNamespace string `json:"deviceNamespace,omitempty" yaml:"deviceNamespace,omitempty"`

	// VolumeIndex is the sub-volume exposed to the host. Defaults to 0.
	// +optional
	// +kubebuilder:validation:Minimum=0
	VolumeIndex int `json:"volumeIndex,omitempty" yaml:"volumeIndex,omitempty"`

	// Content is the content type stored. Only "images" is supported.
	// +optional
	// +kubebuilder:default=images
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// LibvirtSocket is the libvirt daemon socket used to find VMs using
	// the volume. Defaults to /var/run/libvirt/libvirt-sock.
	// +optional
	LibvirtSocket string `json:"libvirtSocket,omitempty" yaml:"libvirtSocket,omitempty"`
}

// DRBDStorageStatus is the observed state of the storage.
type DRBDStorageStatus struct {
	// +optional
	Phase StoragePhase `json:"phase,omitempty" yaml:"phase,omitempty"`

	// +optional
	Conditions []Condition `json:"conditions,omitempty" yaml:"conditions,omitempty"`

	// CapacityBytes is the live size of the resource.
	// +optional
	CapacityBytes uint64 `json:"capacityBytes,omitempty" yaml:"capacityBytes,omitempty"`

	// Connection is the raw state from the connection listing.
	// +optional
	Connection *ConnectionStatus `json:"connection,omitempty" yaml:"connection,omitempty"`
}

// ConnectionStatus mirrors the connection listing for the resource.
type ConnectionStatus struct {
	Minor         int    `json:"minor" yaml:"minor"`
	ConnState     string `json:"connState" yaml:"connState"`
	Role          string `json:"role" yaml:"role"`
	PeerRole      string `json:"peerRole" yaml:"peerRole"`
	DiskState     string `json:"diskState" yaml:"diskState"`
	PeerDiskState string `json:"peerDiskState" yaml:"peerDiskState"`
}

// StoragePhase is a coarse summary of the resource state on this node.
type StoragePhase string

const (
	StoragePhaseDown       StoragePhase = "Down"       // Not brought up
	StoragePhaseConnecting StoragePhase = "Connecting" // Up, waiting for the peer
	StoragePhaseStandAlone StoragePhase = "StandAlone" // Up, peer lost
	StoragePhaseSecondary  StoragePhase = "Secondary"  // Connected, not serving I/O
	StoragePhasePrimary    StoragePhase = "Primary"    // Connected, serving I/O
)

// Standard condition types for DRBDStorage resources.
const (
	// ConditionConfigured indicates the resource is up on this node.
	ConditionConfigured = "Configured"

	// ConditionPeerConnected indicates the resource is paired with its peer.
	ConditionPeerConnected = "PeerConnected"

	// ConditionDiskUpToDate indicates the local copy is current.
	ConditionDiskUpToDate = "DiskUpToDate"

	// ConditionPeerDiskUpToDate indicates the peer's copy is current.
	ConditionPeerDiskUpToDate = "PeerDiskUpToDate"
)
