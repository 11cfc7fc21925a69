// Package loader provides functions for loading DRBDStorage definitions
// from YAML files.
package loader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/naming"
)

// LoadFromFile loads a DRBDStorage resource from a YAML file.
// The file must be in the drbdvol.cofront.xyz/v1alpha1 format.
func LoadFromFile(path string) (*v1alpha1.DRBDStorage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return LoadFromYAML(data)
}

// LoadFromYAML loads a DRBDStorage resource from YAML bytes.
func LoadFromYAML(data []byte) (*v1alpha1.DRBDStorage, error) {
	var s v1alpha1.DRBDStorage
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if s.APIVersion == "" {
		return nil, fmt.Errorf("missing required field: apiVersion")
	}
	if s.Kind == "" {
		return nil, fmt.Errorf("missing required field: kind")
	}

	expectedAPIVersion := v1alpha1.GroupName + "/" + v1alpha1.Version
	if s.APIVersion != expectedAPIVersion {
		return nil, fmt.Errorf("unsupported apiVersion: %s (expected: %s)", s.APIVersion, expectedAPIVersion)
	}
	if s.Kind != v1alpha1.DRBDStorageKind {
		return nil, fmt.Errorf("unsupported kind: %s (expected: %s)", s.Kind, v1alpha1.DRBDStorageKind)
	}

	applyDefaults(&s)

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// applyDefaults sets default values for optional fields.
func applyDefaults(s *v1alpha1.DRBDStorage) {
	s.Normalize()

	if s.Status.Phase == "" {
		s.Status.Phase = v1alpha1.StoragePhaseDown
	}
}

// Validate checks the spec for required fields and consistency. Callers that
// change the spec after loading, such as a command-line override of the
// resource, must validate again.
func Validate(s *v1alpha1.DRBDStorage) error {
	if err := validateSpec(s); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func validateSpec(s *v1alpha1.DRBDStorage) error {
	if s.Spec.Resource == "" {
		return fmt.Errorf("spec.resource is required")
	}

	// The resource doubles as the volume name, so it must carry its owner
	if _, err := naming.ParseVolumeName(s.Spec.Resource); err != nil {
		return fmt.Errorf("spec.resource: %w", err)
	}

	if s.Spec.VolumeIndex < 0 {
		return fmt.Errorf("spec.volumeIndex must be >= 0, got %d", s.Spec.VolumeIndex)
	}

	if c := s.GetContent(); c != v1alpha1.ContentImages {
		return fmt.Errorf("spec.content %q is not supported (only %q)", c, v1alpha1.ContentImages)
	}

	return nil
}
