package storage

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/naming"
)

// resourceQuerier reads live resource state and capacity.
//
// In production, this is satisfied by *registry.Registry.
type resourceQuerier interface {
	GetResource(ctx context.Context, name string) (drbd.ResourceStatus, error)
	GetResourceCapacity(ctx context.Context, name string) (uint64, error)
}

// lifecycleController moves the resource between roles.
//
// In production, this is satisfied by *lifecycle.Controller.
type lifecycleController interface {
	ActivateStorage(ctx context.Context, resource string) error
	DeactivateStorage(ctx context.Context, resource string) error
	ActivateVolume(ctx context.Context, resource string) error
	DeactivateVolume(ctx context.Context, resource string) error
}

// usageSource reports which VMs reference a device path.
//
// In production, this is satisfied by *vm.UsageScanner.
type usageSource interface {
	VolumeUsers(ctx context.Context, devicePath string) ([]string, error)
}

// Manager is the host-facing accessor for one replicated resource.
type Manager struct {
	opts  Options
	query resourceQuerier
	ctrl  lifecycleController
	usage usageSource
	log   logrus.FieldLogger
}

// NewManager creates a storage manager for the resource named in opts.
func NewManager(opts Options, query resourceQuerier, ctrl lifecycleController) *Manager {
	if opts.DeviceNamespace == "" {
		opts.DeviceNamespace = naming.DefaultDeviceNamespace
	}
	return &Manager{
		opts:  opts,
		query: query,
		ctrl:  ctrl,
		log:   logrus.WithField("resource", opts.Resource),
	}
}

// WithUsageSource attaches a source of VM usage for ListVolumes.
func (m *Manager) WithUsageSource(u usageSource) *Manager {
	m.usage = u
	return m
}

// Resource returns the configured resource name.
func (m *Manager) Resource() string {
	return m.opts.Resource
}

// DevicePath returns the device node path of the exposed sub-volume.
func (m *Manager) DevicePath() string {
	return naming.DevicePath(m.opts.DeviceNamespace, m.opts.Resource, m.opts.VolumeIndex)
}

// ActivateStorage brings the resource up.
func (m *Manager) ActivateStorage(ctx context.Context) error {
	return m.ctrl.ActivateStorage(ctx, m.opts.Resource)
}

// DeactivateStorage takes the resource down.
func (m *Manager) DeactivateStorage(ctx context.Context) error {
	return m.ctrl.DeactivateStorage(ctx, m.opts.Resource)
}

// ActivateVolume promotes the resource so a VM can use the volume.
func (m *Manager) ActivateVolume(ctx context.Context, volumeName string) error {
	if err := m.checkName(volumeName); err != nil {
		return err
	}
	return m.ctrl.ActivateVolume(ctx, m.opts.Resource)
}

// DeactivateVolume demotes the resource.
func (m *Manager) DeactivateVolume(ctx context.Context, volumeName string) error {
	if err := m.checkName(volumeName); err != nil {
		return err
	}
	return m.ctrl.DeactivateVolume(ctx, m.opts.Resource)
}
