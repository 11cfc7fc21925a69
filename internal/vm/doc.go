// Package vm inspects the virtual machines defined on the host.
//
// It lists libvirt domains together with the host paths of their disks, and
// answers which domains reference a given block device. The storage layer
// uses the latter to report which VMs use the replicated volume.
//
// Partial Failures:
//
// A domain whose state or XML cannot be read does not abort the listing.
// The remaining domains are returned, and every per-domain failure is
// combined into the returned error (go.uber.org/multierr). Callers decide
// whether a partial result is good enough.
package vm
