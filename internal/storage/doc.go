// Package storage exposes a replicated DRBD resource to the virtualization
// host as a single allocatable raw volume.
//
// Storage Model:
//
// The configured resource is the only volume of the storage. Its name is also
// the volume name and must follow vm-<vmid>-disk-<suffix> (see
// internal/naming), which ties the volume to its owning VM. Nothing is ever
// carved out or destroyed: allocation validates the request against the live
// capacity and hands back the resource name, and freeing is a no-op.
//
// Capacity:
//
// The capacity listing reports kibibytes. The registry converts to bytes
// once; everything in this package works in bytes except Allocate, whose
// size argument follows the host convention of kibibytes.
//
// Activation:
//
// Storage activation maps to bringing the resource up as Secondary, volume
// activation to promoting it to Primary. Both delegate to internal/lifecycle.
//
// Unsupported Operations:
//
// Snapshots, resize, base images and clones are not available on this
// storage. Their methods fail with ErrNotImplemented.
//
// Example usage:
//
//	reg := registry.New(drbdadm.Lister{})
//	ctrl := lifecycle.New(reg, drbdadm.Executor{}, nil)
//	mgr := storage.NewManager(storage.Options{Resource: "vm-101-disk-1"}, reg, ctrl)
//
//	if err := mgr.ActivateStorage(ctx); err != nil {
//	    return err
//	}
//	vol, err := mgr.ResolveVolume(ctx, "vm-101-disk-1")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(vol.Path) // /dev/drbd/by-res/vm-101-disk-1/0
package storage
