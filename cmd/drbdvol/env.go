package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/jbweber/drbdvol/api/v1alpha1"
	"github.com/jbweber/drbdvol/internal/drbdadm"
	"github.com/jbweber/drbdvol/internal/libvirt"
	"github.com/jbweber/drbdvol/internal/lifecycle"
	"github.com/jbweber/drbdvol/internal/loader"
	"github.com/jbweber/drbdvol/internal/registry"
	"github.com/jbweber/drbdvol/internal/storage"
	"github.com/jbweber/drbdvol/internal/vm"
)

const libvirtTimeout = 5 * time.Second

// env is the wiring for one storage definition.
type env struct {
	def *v1alpha1.DRBDStorage
	reg *registry.Registry
	mgr *storage.Manager
}

// loadStorage reads the storage definition. --resource alone is enough to
// work without a config file.
func loadStorage() (*v1alpha1.DRBDStorage, error) {
	if resourceName != "" && !configFlagChanged() {
		s := v1alpha1.NewDRBDStorage(resourceName)
		s.Normalize()
		if err := loader.Validate(s); err != nil {
			return nil, fmt.Errorf("invalid --resource: %w", err)
		}
		return s, nil
	}

	s, err := loader.LoadFromFile(configPath)
	if err != nil {
		return nil, err
	}
	if resourceName != "" {
		s.Spec.Resource = strings.TrimSpace(resourceName)
		if err := loader.Validate(s); err != nil {
			return nil, fmt.Errorf("invalid --resource: %w", err)
		}
	}
	return s, nil
}

func configFlagChanged() bool {
	f := rootCmd.PersistentFlags().Lookup("config")
	return f != nil && f.Changed
}

// newEnv wires the registry, lifecycle controller and storage manager
// against the real drbd tools.
func newEnv() (*env, error) {
	def, err := loadStorage()
	if err != nil {
		return nil, err
	}

	opts := storage.Options{
		Resource:        def.Spec.Resource,
		DeviceNamespace: def.GetDeviceNamespace(),
		VolumeIndex:     def.Spec.VolumeIndex,
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage options: %w", err)
	}

	reg := registry.New(drbdadm.Lister{})
	ctrl := lifecycle.New(reg, drbdadm.Executor{}, logrus.StandardLogger())
	mgr := storage.NewManager(opts, reg, ctrl)

	return &env{def: def, reg: reg, mgr: mgr}, nil
}

// withLibvirt runs fn with a connected libvirt client. A failure to close
// the connection is reported together with fn's error.
func withLibvirt(ctx context.Context, socket string, fn func(*libvirt.Client) error) (err error) {
	client, err := libvirt.Connect(ctx, socket, libvirtTimeout)
	if err != nil {
		return fmt.Errorf("failed to connect to libvirt: %w", err)
	}
	defer func() {
		err = multierr.Append(err, client.Close())
	}()

	return fn(client)
}

// withUsage attaches libvirt usage lookup to the manager for the duration
// of fn.
func (e *env) withUsage(ctx context.Context, fn func() error) error {
	return withLibvirt(ctx, e.def.Spec.LibvirtSocket, func(c *libvirt.Client) error {
		e.mgr.WithUsageSource(vm.NewUsageScanner(c))
		return fn()
	})
}
