package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	apiBaseURL string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "parceltrack",
	Short: "parceltrack - AliExpress order and parcel tracker client",
	Long: `parceltrack is the client side of a personal package-order tracker.

It fetches your orders from the tracker service, filters and sorts them,
exports them as CSV and dispatches actions such as adding orders or
refreshing Cainiao and Doar Israel tracking.

Run "parceltrack serve" for the web view, or use the commands below
directly from a terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to parceltrack.yaml (default: search ./, ./deploy/, $HOME/.parceltrack/, /etc/parceltrack/)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "Tracker service base URL (overrides api.base_url)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug|info|warn|error)")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
