// Package libvirt provides a client wrapper for the local libvirt daemon and
// helpers for reading domain disk configuration.
//
// This package wraps github.com/digitalocean/go-libvirt to provide:
//   - Connection management (connect, disconnect, ping, version)
//   - Disk source extraction from domain XML (via libvirtxml)
//
// Connection Management:
//
//	client, err := libvirt.Connect(ctx, "", 0)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
// Disk Sources:
//
//	xml, err := client.Libvirt().DomainGetXMLDesc(dom, 0)
//	if err != nil {
//	    return err
//	}
//	disks, err := libvirt.DomainDisks(xml)
//	if libvirt.UsesPath(disks, "/dev/drbd/by-res/vm-101-disk-1/0") {
//	    // the domain references the replicated volume
//	}
//
// Consumer-Side Interfaces:
//
// This package does not define interfaces. Consumers (internal/vm) define
// their own libvirtClient interface with only the operations they need. The
// *libvirt.Libvirt type satisfies it implicitly.
package libvirt
