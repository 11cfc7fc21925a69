package vm

import (
	"context"

	"github.com/sirupsen/logrus"

	drbdlibvirt "github.com/jbweber/drbdvol/internal/libvirt"
)

// UsageScanner finds the domains that reference a block device.
type UsageScanner struct {
	lv  libvirtClient
	log logrus.FieldLogger
}

// NewUsageScanner creates a scanner over a connected libvirt client.
func NewUsageScanner(client *drbdlibvirt.Client) *UsageScanner {
	return newUsageScanner(client.Libvirt(), nil)
}

func newUsageScanner(lv libvirtClient, log logrus.FieldLogger) *UsageScanner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UsageScanner{lv: lv, log: log}
}

// VolumeUsers returns the names of the domains with a disk backed by
// devicePath. On partial failure the domains that could be inspected are
// still searched and the combined error is returned alongside them.
func (s *UsageScanner) VolumeUsers(ctx context.Context, devicePath string) ([]string, error) {
	vms, err := listWithDeps(ctx, s.lv, s.log)
	if vms == nil {
		return nil, err
	}

	users := []string{}
	for _, vm := range vms {
		if drbdlibvirt.UsesPath(vm.Disks, devicePath) {
			users = append(users, vm.Name)
		}
	}

	s.log.WithField("device", devicePath).Debugf("Found %d domain(s) using device", len(users))
	return users, err
}
