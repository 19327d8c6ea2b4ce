package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/carrier"
)

var (
	refreshCarrier    string
	refreshAllCarrier string
)

var refreshCmd = &cobra.Command{
	Use:   "refresh <id>",
	Short: "Refresh tracking for one order",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefresh,
}

var refreshAllCmd = &cobra.Command{
	Use:   "refresh-all",
	Short: "Refresh tracking for every order",
	Long: `Ask the tracker service to refresh every order with a tracking number.
Delivered orders are skipped by the service. Use --carrier all to refresh
Cainiao and Doar Israel one after the other.`,
	RunE: runRefreshAll,
}

func init() {
	rootCmd.AddCommand(refreshCmd, refreshAllCmd)

	refreshCmd.Flags().StringVar(&refreshCarrier, "carrier", carrier.Cainiao, "Carrier to query (cainiao|doar)")
	refreshAllCmd.Flags().StringVar(&refreshAllCarrier, "carrier", carrier.Cainiao, "Carrier to query (cainiao|doar|"+actions.AllCarriers+")")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}

	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "⏳ Updating...")
	if _, err := a.dispatcher.RefreshTracking(ctx, refreshCarrier, id); err != nil {
		return userError(err, "Error refreshing tracking. Please try again.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Order %d refreshed\n", id)
	return nil
}

func runRefreshAll(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "⏳ Updating... Please wait...")
	res, err := a.dispatcher.RefreshAll(ctx, refreshAllCarrier)
	if res != nil && res.Status != nil {
		fmt.Fprintln(out, res.Status.Text)
	}
	if err != nil {
		if res != nil && res.Status != nil {
			return fmt.Errorf("refresh failed")
		}
		return userError(err, "Failed to update orders")
	}

	if lu := res.LastUpdates; lu != nil {
		printLastUpdates(out, lu)
	}
	return nil
}
