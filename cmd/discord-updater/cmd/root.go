package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/discord-updater/internal/service/updater"
	"github.com/oshokin/discord-updater/internal/version"
)

var (
	// configPath to the optional configuration YAML file.
	configPath string

	// installPath overrides install location lookup when set.
	installPath string

	// terminate stops running Discord processes before installing.
	terminate bool

	// quiet disables progress rendering.
	quiet bool

	// rootCmd represents the base command for checking and applying updates.
	rootCmd = &cobra.Command{
		Use:   "discord-updater",
		Short: "Keep the Discord desktop app up to date in place",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &updater.Options{
				ConfigPath:  configPath,
				InstallPath: installPath,
				Terminate:   terminate,
				Quiet:       quiet,
			}

			return updater.Run(ctx, options)
		},
	}
)

// Execute runs the discord-updater CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (defaults apply when omitted)")
	rootCmd.Flags().StringVarP(&installPath, "install-path", "p", "", "install path override, skips shell lookup")
	rootCmd.Flags().BoolVarP(&terminate, "terminate", "t", false, "stop running Discord processes before installing")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "disable progress output")
}
