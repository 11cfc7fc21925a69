package storage

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/naming"
)

// ResolveVolume returns the device path, owning VMID and size of a volume.
// The path is computed, not checked: the device node only exists once the
// resource is up.
func (m *Manager) ResolveVolume(ctx context.Context, volumeName string) (*VolumePath, error) {
	if err := m.checkName(volumeName); err != nil {
		return nil, err
	}

	vn, err := naming.ParseVolumeName(volumeName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNameMismatch, err)
	}

	size, err := m.query.GetResourceCapacity(ctx, m.opts.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve volume %s: %w", volumeName, err)
	}

	return &VolumePath{
		Path:      m.DevicePath(),
		VMID:      vn.VMID,
		SizeBytes: size,
	}, nil
}

// Capacity returns the live size of the resource in bytes.
func (m *Manager) Capacity(ctx context.Context) (uint64, error) {
	size, err := m.query.GetResourceCapacity(ctx, m.opts.Resource)
	if err != nil {
		return 0, fmt.Errorf("failed to get capacity: %w", err)
	}
	return size, nil
}

// Allocate validates a volume request and returns the volume name. Nothing
// is created: the whole resource is the single allocatable volume.
//
// sizeKB is in kibibytes. An empty name requests the default volume.
func (m *Manager) Allocate(ctx context.Context, format VolumeFormat, name string, vmid int, sizeKB uint64) (string, error) {
	if format != VolumeFormatRaw {
		return "", fmt.Errorf("%w: %q (only %s is supported)", ErrUnsupportedFormat, format, VolumeFormatRaw)
	}

	if name != "" && !naming.IsOwnedBy(name, vmid) {
		return "", fmt.Errorf("%w: %q does not belong to VM %d", ErrNameMismatch, name, vmid)
	}

	owner, err := naming.ParseVolumeName(m.opts.Resource)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNameMismatch, err)
	}
	if owner.VMID != vmid {
		return "", fmt.Errorf("%w: resource %s belongs to VM %d, not %d", ErrNameMismatch, m.opts.Resource, owner.VMID, vmid)
	}

	capacity, err := m.query.GetResourceCapacity(ctx, m.opts.Resource)
	if err != nil {
		return "", fmt.Errorf("failed to allocate volume: %w", err)
	}

	// Compared in KiB: sizeKB*KiB can overflow for huge requests
	if sizeKB > capacity/drbd.KiB {
		return "", fmt.Errorf("%w: requested %d KiB, resource %s has %d bytes",
			ErrCapacityExceeded, sizeKB, m.opts.Resource, capacity)
	}

	m.log.WithField("vmid", vmid).Debugf("Allocated volume %s (%d KiB requested)", m.opts.Resource, sizeKB)
	return m.opts.Resource, nil
}

// FreeVolume validates the volume name. The resource itself is never
// destroyed.
func (m *Manager) FreeVolume(ctx context.Context, volumeName string) error {
	if err := m.checkName(volumeName); err != nil {
		return err
	}
	m.log.Debugf("Free of %s requested; resource is left in place", volumeName)
	return nil
}

// Status reports capacity and activation of the storage. A resource the
// engine does not know about is reported inactive with zero sizes.
func (m *Manager) Status(ctx context.Context) (*StorageStatus, error) {
	st, err := m.query.GetResource(ctx, m.opts.Resource)
	if errors.Is(err, drbd.ErrResourceNotConfigured) {
		return &StorageStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage status: %w", err)
	}

	size, err := m.query.GetResourceCapacity(ctx, m.opts.Resource)
	if errors.Is(err, drbd.ErrResourceNotConfigured) {
		size = 0
	} else if err != nil {
		return nil, fmt.Errorf("failed to get storage status: %w", err)
	}

	return &StorageStatus{
		TotalBytes: size,
		UsedBytes:  size,
		FreeBytes:  0,
		Active:     st.IsUp(),
	}, nil
}

// ListVolumes returns the storage's volume when it belongs to vmid, or
// unconditionally when vmid is 0. Size and usage lookups that fail are
// reported together; the volume is still returned with what is known.
func (m *Manager) ListVolumes(ctx context.Context, vmid int) ([]VolumeInfo, error) {
	vn, err := naming.ParseVolumeName(m.opts.Resource)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}

	if vmid != 0 && vn.VMID != vmid {
		return []VolumeInfo{}, nil
	}

	vol := VolumeInfo{
		Name:   m.opts.Resource,
		VMID:   vn.VMID,
		Format: VolumeFormatRaw,
		Path:   m.DevicePath(),
	}

	var errs error
	size, err := m.query.GetResourceCapacity(ctx, m.opts.Resource)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("capacity: %w", err))
	}
	vol.SizeBytes = size

	if m.usage != nil {
		users, err := m.usage.VolumeUsers(ctx, vol.Path)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("usage: %w", err))
		}
		vol.UsedBy = users
	}

	return []VolumeInfo{vol}, errs
}

func (m *Manager) checkName(volumeName string) error {
	if volumeName != m.opts.Resource {
		return fmt.Errorf("%w: %q is not resource %q", ErrNameMismatch, volumeName, m.opts.Resource)
	}
	return nil
}
