package storage

import (
	"errors"
	"fmt"
)

// VolumeFormat represents the disk format.
type VolumeFormat string

const (
	VolumeFormatRaw   VolumeFormat = "raw"   // Raw block device
	VolumeFormatQCOW2 VolumeFormat = "qcow2" // QCOW2 (not supported here)
)

// Feature is a volume capability the host may query.
type Feature string

const (
	FeatureCopy     Feature = "copy"
	FeatureSnapshot Feature = "snapshot"
	FeatureClone    Feature = "clone"
	FeatureTemplate Feature = "template"
	FeatureResize   Feature = "resize"
)

// FeatureSource is the state a feature is applied from.
type FeatureSource string

const (
	SourceBase     FeatureSource = "base"
	SourceCurrent  FeatureSource = "current"
	SourceSnapshot FeatureSource = "snap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrCapacityExceeded  = errors.New("requested size exceeds capacity")
	ErrNameMismatch      = errors.New("volume name mismatch")
	ErrNotImplemented    = errors.New("not implemented")
)

// VolumeInfo describes the storage's single volume.
type VolumeInfo struct {
	Name      string       `json:"name" yaml:"name"`
	VMID      int          `json:"vmid" yaml:"vmid"`
	Format    VolumeFormat `json:"format" yaml:"format"`
	Path      string       `json:"path" yaml:"path"`
	SizeBytes uint64       `json:"sizeBytes" yaml:"sizeBytes"`
	UsedBy    []string     `json:"usedBy,omitempty" yaml:"usedBy,omitempty"` // Domains referencing the device
}

// VolumePath is the result of resolving a volume name.
type VolumePath struct {
	Path      string
	VMID      int
	SizeBytes uint64
}

// StorageStatus is the storage-level usage report.
type StorageStatus struct {
	TotalBytes uint64 `json:"totalBytes" yaml:"totalBytes"`
	UsedBytes  uint64 `json:"usedBytes" yaml:"usedBytes"`
	FreeBytes  uint64 `json:"freeBytes" yaml:"freeBytes"`
	Active     bool   `json:"active" yaml:"active"`
}

// Options configures a Manager.
type Options struct {
	Resource        string // Replicated resource name (also the volume name)
	DeviceNamespace string // Device link namespace (default: dev/drbd)
	VolumeIndex     int    // Sub-volume exposed to the host (default: 0)
}

// Validate checks the options.
func (o *Options) Validate() error {
	if o.Resource == "" {
		return fmt.Errorf("resource is required")
	}
	if o.VolumeIndex < 0 {
		return fmt.Errorf("volume index must be >= 0, got %d", o.VolumeIndex)
	}
	return nil
}
