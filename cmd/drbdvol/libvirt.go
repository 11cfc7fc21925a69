package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jbweber/drbdvol/internal/libvirt"
	"github.com/jbweber/drbdvol/internal/storage"
	"github.com/jbweber/drbdvol/internal/vm"
)

var featuresCmd = &cobra.Command{
	Use:   "features",
	Short: "List supported volume features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		features := storage.Features()

		names := make([]string, 0, len(features))
		for f := range features {
			names = append(names, string(f))
		}
		sort.Strings(names)

		for _, n := range names {
			sources := features[storage.Feature(n)]
			if len(sources) == 0 {
				fmt.Printf("%-10s unsupported\n", n)
				continue
			}
			s := make([]string, len(sources))
			for i, src := range sources {
				s[i] = string(src)
			}
			fmt.Printf("%-10s %s\n", n, strings.Join(s, ","))
		}
		return nil
	},
}

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "List VMs whose disks reference the volume",
	Long: `Scan the domains defined in libvirt and list those with a disk backed by
the storage's device path.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ctx := context.Background()
		path := e.mgr.DevicePath()

		return withLibvirt(ctx, e.def.Spec.LibvirtSocket, func(c *libvirt.Client) error {
			users, err := vm.NewUsageScanner(c).VolumeUsers(ctx, path)
			if len(users) == 0 {
				fmt.Printf("No VMs use %s\n", path)
			}
			for _, u := range users {
				fmt.Println(u)
			}
			return err
		})
	},
}

var testConnCmd = &cobra.Command{
	Use:   "test-conn",
	Short: "Test libvirt connection",
	Long:  `Test connectivity to the libvirt daemon and display version information.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		socket := libvirt.DefaultSocket
		if e, err := newEnv(); err == nil && e.def.Spec.LibvirtSocket != "" {
			socket = e.def.Spec.LibvirtSocket
		}

		fmt.Printf("Testing libvirt connection at %s...\n", socket)
		return withLibvirt(context.Background(), socket, func(c *libvirt.Client) error {
			fmt.Println("✓ Connected to libvirt daemon")

			if err := c.Ping(); err != nil {
				return fmt.Errorf("connection test failed: %w", err)
			}

			v, err := c.Version()
			if err != nil {
				return err
			}
			fmt.Printf("✓ Libvirt version: %s\n", v)

			hostname, err := c.Hostname()
			if err != nil {
				return err
			}
			fmt.Printf("✓ Hypervisor hostname: %s\n", hostname)

			vms, err := vm.List(context.Background(), c)
			if err != nil {
				fmt.Printf("! Some domains could not be inspected: %v\n", err)
			}
			fmt.Printf("✓ %d domain(s) defined\n", len(vms))

			fmt.Println("\nConnection test successful!")
			return nil
		})
	},
}
