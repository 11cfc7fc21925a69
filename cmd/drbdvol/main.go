package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jbweber/drbdvol/internal/drbdadm"
	"github.com/jbweber/drbdvol/internal/output"
)

var (
	version = "dev"
	commit  = "unknown"
)

// Global flags
var (
	configPath   string
	resourceName string
	logLevel     string
	logFormat    string
	outputFormat string
	noHeaders    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drbdvol",
	Short: "drbdvol - DRBD replicated volume manager",
	Long: `drbdvol exposes a replicated DRBD resource to the virtualization host as
a single raw volume.

It brings the resource up and down, promotes and demotes it for VM use, and
reports its live capacity and connection state.`,
	Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := setupLogging(logLevel, logFormat); err != nil {
			return err
		}
		return output.ValidateFormat(outputFormat)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "/etc/drbdvol/storage.yaml", "DRBDStorage definition file")
	pf.StringVarP(&resourceName, "resource", "r", "", "resource name (overrides spec.resource from the config file)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	pf.StringVarP(&outputFormat, "output", "o", "table", "output format (table, yaml, json)")
	pf.BoolVar(&noHeaders, "no-headers", false, "omit table headers")
	pf.StringVar(&drbdadm.Command, "drbdadm", drbdadm.Command, "path to drbdadm")
	pf.StringVar(&drbdadm.OverviewCommand, "drbd-overview", drbdadm.OverviewCommand, "path to drbd-overview")
	pf.StringVar(&drbdadm.SetupCommand, "drbdsetup", drbdadm.SetupCommand, "path to drbdsetup")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(deactivateCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(featuresCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(testConnCmd)
}

// setupLogging configures the standard logrus logger.
func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(os.Stderr)

	switch format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s (valid formats: text, json)", format)
	}
	return nil
}
