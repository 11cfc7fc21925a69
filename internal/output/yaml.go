package output

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/storage"
)

// YAMLFormatter formats resources as YAML.
type YAMLFormatter struct{}

// FormatStorage formats a DRBDStorage as YAML.
func (f *YAMLFormatter) FormatStorage(s *v1alpha1.DRBDStorage) (string, error) {
	v1alpha1.SetDefaultAPIVersion(s)

	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to marshal storage to YAML: %w", err)
	}

	return string(data), nil
}

// FormatVolumes formats volumes as a YAML sequence.
func (f *YAMLFormatter) FormatVolumes(vols []storage.VolumeInfo) (string, error) {
	if vols == nil {
		vols = []storage.VolumeInfo{}
	}

	data, err := yaml.Marshal(vols)
	if err != nil {
		return "", fmt.Errorf("failed to marshal volumes to YAML: %w", err)
	}

	return string(data), nil
}
