package v1alpha1

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// GroupName is the API group for drbdvol resources.
	GroupName = "drbdvol.cofront.xyz"

	// Version is the API version.
	Version = "v1alpha1"

	// DRBDStorageKind is the kind string for DRBDStorage resources.
	DRBDStorageKind = "DRBDStorage"

	// DefaultDeviceNamespace is where by-res device links live.
	DefaultDeviceNamespace = "dev/drbd"

	// ContentImages is the only supported content type.
	ContentImages = "images"
)

// NewDRBDStorage creates a DRBDStorage for a resource with TypeMeta and
// ObjectMeta defaults. The object is named after the resource.
func NewDRBDStorage(resource string) *DRBDStorage {
	return &DRBDStorage{
		TypeMeta: TypeMeta{
			APIVersion: GroupName + "/" + Version,
			Kind:       DRBDStorageKind,
		},
		ObjectMeta: ObjectMeta{
			Name:              resource,
			UID:               uuid.New().String(),
			CreationTimestamp: time.Now(),
			Generation:        1,
		},
		Spec: DRBDStorageSpec{
			Resource:        resource,
			DeviceNamespace: DefaultDeviceNamespace,
			Content:         ContentImages,
		},
		Status: DRBDStorageStatus{
			Phase: StoragePhaseDown,
		},
	}
}

// SetDefaultAPIVersion fills in apiVersion and kind when missing.
func SetDefaultAPIVersion(s *DRBDStorage) {
	if s.APIVersion == "" {
		s.APIVersion = GroupName + "/" + Version
	}
	if s.Kind == "" {
		s.Kind = DRBDStorageKind
	}
}

// GetDeviceNamespace returns the device namespace with default fallback.
func (s *DRBDStorage) GetDeviceNamespace() string {
	if s.Spec.DeviceNamespace == "" {
		return DefaultDeviceNamespace
	}
	return s.Spec.DeviceNamespace
}

// GetContent returns the content type with default fallback.
func (s *DRBDStorage) GetContent() string {
	if s.Spec.Content == "" {
		return ContentImages
	}
	return s.Spec.Content
}

// SetPhase sets the phase in status.
func (s *DRBDStorage) SetPhase(phase StoragePhase) {
	s.Status.Phase = phase
}

// GetPhase returns the current phase.
func (s *DRBDStorage) GetPhase() StoragePhase {
	return s.Status.Phase
}

// Normalize trims user input and fills defaults. Called before validation.
func (s *DRBDStorage) Normalize() {
	s.Name = strings.TrimSpace(s.Name)
	// Resource names are case-sensitive to the replication engine
	s.Spec.Resource = strings.TrimSpace(s.Spec.Resource)
	s.Spec.DeviceNamespace = strings.Trim(strings.TrimSpace(s.Spec.DeviceNamespace), "/")
	s.Spec.Content = strings.ToLower(strings.TrimSpace(s.Spec.Content))

	if s.Name == "" {
		s.Name = s.Spec.Resource
	}
	if s.Spec.DeviceNamespace == "" {
		s.Spec.DeviceNamespace = DefaultDeviceNamespace
	}
	if s.Spec.Content == "" {
		s.Spec.Content = ContentImages
	}
}
