package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jbweber/drbdvol/internal/output"
	"github.com/jbweber/drbdvol/internal/storage"
)

var (
	allocName   string
	allocFormat string
	listVMID    int
	listUsage   bool
)

// Volume commands
var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage the storage volume",
	Long: `Manage the storage's single volume. The volume is named after the
resource and follows vm-<vmid>-disk-<suffix>.`,
}

func init() {
	volumeCmd.AddCommand(volumeActivateCmd)
	volumeCmd.AddCommand(volumeDeactivateCmd)
	volumeCmd.AddCommand(volumeResolveCmd)
	volumeCmd.AddCommand(volumeAllocCmd)
	volumeCmd.AddCommand(volumeFreeCmd)
	volumeCmd.AddCommand(volumeListCmd)

	volumeAllocCmd.Flags().StringVar(&allocName, "name", "", "requested volume name (must belong to the VM)")
	volumeAllocCmd.Flags().StringVar(&allocFormat, "format", string(storage.VolumeFormatRaw), "volume format")

	volumeListCmd.Flags().IntVar(&listVMID, "vmid", 0, "only list volumes owned by this VM")
	volumeListCmd.Flags().BoolVar(&listUsage, "usage", false, "look up VMs using the volume via libvirt")
}

var volumeActivateCmd = &cobra.Command{
	Use:   "activate <volume>",
	Short: "Promote the resource to Primary",
	Long: `Promote the resource so the volume can be used by a VM on this node.

Fails if the resource is not up or if the peer is already Primary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.mgr.ActivateVolume(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to activate volume: %w", err)
		}
		fmt.Printf("✓ Volume %s activated\n", args[0])
		return nil
	},
}

var volumeDeactivateCmd = &cobra.Command{
	Use:   "deactivate <volume>",
	Short: "Demote the resource to Secondary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.mgr.DeactivateVolume(context.Background(), args[0]); err != nil {
			return fmt.Errorf("failed to deactivate volume: %w", err)
		}
		fmt.Printf("✓ Volume %s deactivated\n", args[0])
		return nil
	},
}

var volumeResolveCmd = &cobra.Command{
	Use:   "resolve <volume>",
	Short: "Print the device path, owner and size of a volume",
	Long: `Print the device path, owning VMID and size of the volume.

The path is computed; the device node only exists once the resource is up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		vol, err := e.mgr.ResolveVolume(context.Background(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Path: %s\n", vol.Path)
		fmt.Printf("VMID: %d\n", vol.VMID)
		fmt.Printf("Size: %d bytes\n", vol.SizeBytes)
		return nil
	},
}

var volumeAllocCmd = &cobra.Command{
	Use:   "alloc <vmid> <size-kb>",
	Short: "Validate a volume request and print the volume name",
	Long: `Validate a volume allocation for a VM. Nothing is created: the resource is
the only volume, so the request must fit its live capacity.

Example:
  drbdvol volume alloc 101 4194304 --name vm-101-disk-1`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		vmid, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid vmid %q: %w", args[0], err)
		}
		sizeKB, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", args[1], err)
		}

		e, err := newEnv()
		if err != nil {
			return err
		}

		name, err := e.mgr.Allocate(context.Background(), storage.VolumeFormat(allocFormat), allocName, vmid, sizeKB)
		if err != nil {
			return err
		}

		fmt.Println(name)
		return nil
	},
}

var volumeFreeCmd = &cobra.Command{
	Use:   "free <volume>",
	Short: "Release a volume (the resource is kept)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.mgr.FreeVolume(context.Background(), args[0]); err != nil {
			return err
		}
		fmt.Printf("✓ Volume %s released\n", args[0])
		return nil
	},
}

var volumeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the storage volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ctx := context.Background()

		var vols []storage.VolumeInfo
		list := func() error {
			var listErr error
			vols, listErr = e.mgr.ListVolumes(ctx, listVMID)
			return listErr
		}

		if listUsage {
			err = e.withUsage(ctx, list)
		} else {
			err = list()
		}
		if err != nil && vols == nil {
			return err
		}

		formatter, ferr := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
		})
		if ferr != nil {
			return ferr
		}

		result, ferr := formatter.FormatVolumes(vols)
		if ferr != nil {
			return fmt.Errorf("failed to format output: %w", ferr)
		}
		fmt.Print(result)

		// Partial results are printed before the error is reported
		return err
	},
}
