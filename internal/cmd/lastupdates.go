package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/types"
	"github.com/matthieukhl/parceltrack/internal/view"
)

var lastUpdatesCmd = &cobra.Command{
	Use:   "last-updates",
	Short: "Show when each carrier was last refreshed in bulk",
	RunE:  runLastUpdates,
}

func init() {
	rootCmd.AddCommand(lastUpdatesCmd)
}

func runLastUpdates(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	lu, err := a.dispatcher.LastUpdates(ctx)
	if err != nil {
		return userError(err, "Error loading last update times. Please try again.")
	}
	printLastUpdates(cmd.OutOrStdout(), lu)
	return nil
}

func printLastUpdates(w io.Writer, lu *types.LastUpdates) {
	fmt.Fprintf(w, "🕒 Cainiao last update: %s\n", orNA(lu.Cainiao))
	fmt.Fprintf(w, "🕒 Doar Israel last update: %s\n", orNA(lu.Doar))
}

func orNA(s string) string {
	if s == "" {
		return view.NotAvailable
	}
	return s
}
