package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/drbdvol/internal/drbd"
	"github.com/jbweber/drbdvol/internal/output"
	"github.com/jbweber/drbdvol/internal/status"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show storage capacity and activation",
	Long: `Show the total, used and free capacity of the storage and whether the
resource is up on this node.

The resource is the storage's only volume, so used always equals total.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}

		st, err := e.mgr.Status(context.Background())
		if err != nil {
			return err
		}

		active := "no"
		if st.Active {
			active = "yes"
		}
		fmt.Printf("Resource:  %s\n", e.mgr.Resource())
		fmt.Printf("Active:    %s\n", active)
		fmt.Printf("Total:     %d bytes\n", st.TotalBytes)
		fmt.Printf("Used:      %d bytes\n", st.UsedBytes)
		fmt.Printf("Free:      %d bytes\n", st.FreeBytes)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Get the storage definition with its live status",
	Long: `Get the DRBDStorage resource with status filled in from the replication
engine: phase, conditions, capacity and connection state.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   Full YAML resource definition
  -o json   Full JSON resource definition`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		ctx := context.Background()

		st, err := e.reg.GetResource(ctx, e.def.Spec.Resource)
		switch {
		case errors.Is(err, drbd.ErrResourceNotConfigured):
			status.MarkNotConfigured(e.def)
		case err != nil:
			return fmt.Errorf("failed to get resource: %w", err)
		default:
			size, err := e.mgr.Capacity(ctx)
			if err != nil && !errors.Is(err, drbd.ErrResourceNotConfigured) {
				return err
			}
			status.Apply(e.def, st, size)
		}

		formatter, err := output.NewFormatter(output.Options{
			Format:    output.Format(outputFormat),
			NoHeaders: noHeaders,
		})
		if err != nil {
			return err
		}

		result, err := formatter.FormatStorage(e.def)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}

		fmt.Print(result)
		return nil
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Bring the resource up as Secondary",
	Long: `Activate the storage on this node.

A StandAlone resource is adjusted to reconnect to its peer. An unconfigured
resource is brought up and set to Secondary. An already active resource is
left as is.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.mgr.ActivateStorage(context.Background()); err != nil {
			return fmt.Errorf("failed to activate storage: %w", err)
		}
		fmt.Printf("✓ Storage %s activated\n", e.mgr.Resource())
		return nil
	},
}

var deactivateCmd = &cobra.Command{
	Use:   "deactivate",
	Short: "Demote and take the resource down",
	Long: `Deactivate the storage on this node: demote to Secondary, then take the
resource down. Does nothing if the resource is not up.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv()
		if err != nil {
			return err
		}
		if err := e.mgr.DeactivateStorage(context.Background()); err != nil {
			return fmt.Errorf("failed to deactivate storage: %w", err)
		}
		fmt.Printf("✓ Storage %s deactivated\n", e.mgr.Resource())
		return nil
	},
}
