package storage

import (
	"context"
	"fmt"
)

// HasFeature reports whether a volume feature is available from the given
// source state. Only copying from a base or current volume is supported.
func HasFeature(feature Feature, source FeatureSource) bool {
	if feature != FeatureCopy {
		return false
	}
	return source == SourceBase || source == SourceCurrent
}

// Features lists every known feature with the sources it supports.
func Features() map[Feature][]FeatureSource {
	all := []Feature{FeatureCopy, FeatureSnapshot, FeatureClone, FeatureTemplate, FeatureResize}
	sources := []FeatureSource{SourceBase, SourceCurrent, SourceSnapshot}

	res := make(map[Feature][]FeatureSource, len(all))
	for _, f := range all {
		res[f] = []FeatureSource{}
		for _, s := range sources {
			if HasFeature(f, s) {
				res[f] = append(res[f], s)
			}
		}
	}
	return res
}

func notImplemented(op string) error {
	return fmt.Errorf("%s: %w on replicated storage", op, ErrNotImplemented)
}

// CreateSnapshot is not supported.
func (m *Manager) CreateSnapshot(ctx context.Context, volumeName, snapName string) error {
	return notImplemented("create snapshot")
}

// RollbackSnapshot is not supported.
func (m *Manager) RollbackSnapshot(ctx context.Context, volumeName, snapName string) error {
	return notImplemented("rollback snapshot")
}

// DeleteSnapshot is not supported.
func (m *Manager) DeleteSnapshot(ctx context.Context, volumeName, snapName string) error {
	return notImplemented("delete snapshot")
}

// ResizeVolume is not supported.
func (m *Manager) ResizeVolume(ctx context.Context, volumeName string, sizeBytes uint64) error {
	return notImplemented("resize volume")
}

// CreateBase is not supported.
func (m *Manager) CreateBase(ctx context.Context, volumeName string) error {
	return notImplemented("create base image")
}

// CloneVolume is not supported.
func (m *Manager) CloneVolume(ctx context.Context, baseName, volumeName string, vmid int) error {
	return notImplemented("clone volume")
}
