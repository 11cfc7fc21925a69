// Package naming provides the naming conventions shared by the storage
// layer: the volume-name pattern that ties a replicated resource to its
// owning VM, and the device-node path the replication engine exposes for a
// resource once it is up.
package naming

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDeviceNamespace is where the replication engine publishes
// by-resource device links.
const DefaultDeviceNamespace = "dev/drbd"

// ErrInvalidVolumeName is returned for names that do not follow the
// vm-<vmid>-disk-<suffix> pattern.
var ErrInvalidVolumeName = errors.New("invalid volume name")

var volumeNameRe = regexp.MustCompile(`^vm-(\d+)-disk-(\S+)$`)

// VolumeName is a parsed volume name.
type VolumeName struct {
	VMID   int
	Suffix string
}

// String returns the canonical form: vm-{vmid}-disk-{suffix}
func (v VolumeName) String() string {
	return fmt.Sprintf("vm-%d-disk-%s", v.VMID, v.Suffix)
}

// ParseVolumeName splits a volume name into its owning VMID and suffix.
//
// Example: "vm-101-disk-1" → VMID 101, suffix "1"
func ParseVolumeName(name string) (VolumeName, error) {
	m := volumeNameRe.FindStringSubmatch(name)
	if m == nil {
		return VolumeName{}, fmt.Errorf("%w: %q (expected vm-<vmid>-disk-<suffix>)", ErrInvalidVolumeName, name)
	}

	vmid, err := strconv.Atoi(m[1])
	if err != nil {
		return VolumeName{}, fmt.Errorf("%w: %q: %v", ErrInvalidVolumeName, name, err)
	}

	return VolumeName{VMID: vmid, Suffix: m[2]}, nil
}

// IsOwnedBy reports whether name carries the vm-{vmid}- prefix.
func IsOwnedBy(name string, vmid int) bool {
	return strings.HasPrefix(name, fmt.Sprintf("vm-%d-", vmid))
}

// DevicePath returns the device node path for a resource volume.
// No existence check is made; the node only appears once the resource is up.
//
// Example: ("dev/drbd", "vm-101-disk-1", 0) → /dev/drbd/by-res/vm-101-disk-1/0
func DevicePath(namespace, resource string, volume int) string {
	ns := strings.Trim(namespace, "/")
	if ns == "" {
		ns = DefaultDeviceNamespace
	}
	return path.Join("/", ns, "by-res", resource, strconv.Itoa(volume))
}
