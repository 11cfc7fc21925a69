package output

import (
	"encoding/json"
	"fmt"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/storage"
)

// JSONFormatter formats resources as JSON.
type JSONFormatter struct{}

// FormatStorage formats a DRBDStorage as JSON.
func (f *JSONFormatter) FormatStorage(s *v1alpha1.DRBDStorage) (string, error) {
	v1alpha1.SetDefaultAPIVersion(s)

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal storage to JSON: %w", err)
	}

	return string(data) + "\n", nil
}

// FormatVolumes formats volumes as a JSON array.
func (f *JSONFormatter) FormatVolumes(vols []storage.VolumeInfo) (string, error) {
	if len(vols) == 0 {
		return "[]\n", nil
	}

	data, err := json.MarshalIndent(vols, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal volumes to JSON: %w", err)
	}

	return string(data) + "\n", nil
}
