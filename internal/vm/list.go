package vm

import (
	"context"
	"fmt"

	"github.com/digitalocean/go-libvirt"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	drbdlibvirt "github.com/jbweber/drbdvol/internal/libvirt"
)

// VMInfo represents a defined domain and its disks.
type VMInfo struct {
	Name  string                   `json:"name" yaml:"name"`
	State string                   `json:"state" yaml:"state"`
	Disks []drbdlibvirt.DiskSource `json:"disks" yaml:"disks"`
}

// List lists all domains (running and stopped) with their disk sources.
func List(ctx context.Context, client *drbdlibvirt.Client) ([]VMInfo, error) {
	return listWithDeps(ctx, client.Libvirt(), logrus.StandardLogger())
}

// listWithDeps lists domains with injected dependencies.
// Domains that cannot be inspected are left out and their errors combined.
func listWithDeps(_ context.Context, lv libvirtClient, log logrus.FieldLogger) ([]VMInfo, error) {
	// NeedResults: 1 populates the slice; flags 0 means active and inactive
	domains, _, err := lv.ConnectListAllDomains(1, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list domains: %w", err)
	}

	vms := make([]VMInfo, 0, len(domains))
	var errs error
	for _, domain := range domains {
		info, err := getDomainInfo(lv, domain)
		if err != nil {
			log.WithField("domain", domain.Name).WithError(err).Warn("Skipping domain")
			errs = multierr.Append(errs, fmt.Errorf("domain %s: %w", domain.Name, err))
			continue
		}
		vms = append(vms, info)
	}

	return vms, errs
}

// getDomainInfo reads the state and disk sources of a single domain.
func getDomainInfo(lv libvirtClient, domain libvirt.Domain) (VMInfo, error) {
	state, _, err := lv.DomainGetState(domain, 0)
	if err != nil {
		return VMInfo{}, fmt.Errorf("failed to get domain state: %w", err)
	}

	xml, err := lv.DomainGetXMLDesc(domain, 0)
	if err != nil {
		return VMInfo{}, fmt.Errorf("failed to get domain XML: %w", err)
	}

	disks, err := drbdlibvirt.DomainDisks(xml)
	if err != nil {
		return VMInfo{}, err
	}

	return VMInfo{
		Name:  domain.Name,
		State: stateToString(state),
		Disks: disks,
	}, nil
}

// stateToString converts libvirt domain state to human-readable string.
func stateToString(state int32) string {
	switch state {
	case 0:
		return "no state"
	case 1:
		return "running"
	case 2:
		return "blocked"
	case 3:
		return "paused"
	case 4:
		return "shutdown"
	case 5:
		return "shutoff"
	case 6:
		return "crashed"
	case 7:
		return "pmsuspended"
	default:
		return fmt.Sprintf("unknown(%d)", state)
	}
}
