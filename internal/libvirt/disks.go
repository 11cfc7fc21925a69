package libvirt

import (
	"fmt"
	"path/filepath"

	"libvirt.org/go/libvirtxml"
)

// DiskSource is a disk attached to a domain.
type DiskSource struct {
	Target string // Guest device name, e.g. vda
	Device string // disk, cdrom, ...
	Path   string // Host block device or file backing the disk
}

// DomainDisks extracts the host-side sources of every disk in a domain XML
// description. Disks without a block or file source (network disks, empty
// cdrom drives) are skipped.
func DomainDisks(domainXML string) ([]DiskSource, error) {
	var dom libvirtxml.Domain
	if err := dom.Unmarshal(domainXML); err != nil {
		return nil, fmt.Errorf("failed to parse domain XML: %w", err)
	}

	if dom.Devices == nil {
		return []DiskSource{}, nil
	}

	disks := make([]DiskSource, 0, len(dom.Devices.Disks))
	for _, d := range dom.Devices.Disks {
		p := diskPath(d.Source)
		if p == "" {
			continue
		}

		ds := DiskSource{Device: d.Device, Path: p}
		if d.Target != nil {
			ds.Target = d.Target.Dev
		}
		disks = append(disks, ds)
	}

	return disks, nil
}

// UsesPath reports whether any disk of the domain is backed by path.
func UsesPath(disks []DiskSource, path string) bool {
	want := filepath.Clean(path)
	for _, d := range disks {
		if filepath.Clean(d.Path) == want {
			return true
		}
	}
	return false
}

func diskPath(src *libvirtxml.DomainDiskSource) string {
	if src == nil {
		return ""
	}
	if src.Block != nil {
		return src.Block.Dev
	}
	if src.File != nil {
		return src.File.File
	}
	return ""
}
