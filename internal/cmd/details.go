package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/carrier"
	"github.com/matthieukhl/parceltrack/internal/view"
)

var eventsCarrier string

var eventsCmd = &cobra.Command{
	Use:   "events <id>",
	Short: "Show the tracking timeline of an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runEvents,
}

var itemsCmd = &cobra.Command{
	Use:   "items <id>",
	Short: "Show the items of a multi-item order",
	Args:  cobra.ExactArgs(1),
	RunE:  runItems,
}

func init() {
	rootCmd.AddCommand(eventsCmd, itemsCmd)

	eventsCmd.Flags().StringVar(&eventsCarrier, "carrier", carrier.Cainiao, "Timeline to show (cainiao|doar)")
}

func runEvents(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}

	o, ok := a.store.Find(id)
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}

	var (
		ev    view.EventsView
		found bool
	)
	switch eventsCarrier {
	case carrier.Cainiao:
		ev, found = view.TrackingEvents(o)
	case carrier.Doar:
		ev, found = view.DoarEvents(o)
	default:
		return fmt.Errorf("unsupported carrier: %s", eventsCarrier)
	}

	out := cmd.OutOrStdout()
	if !found || ev.Total == 0 {
		fmt.Fprintln(out, "📭 No tracking events available for this order.")
		return nil
	}

	fmt.Fprintf(out, "📍 %s (%d events)\n", ev.TrackingNumber, ev.Total)
	if ev.DeliveryType != "" {
		fmt.Fprintf(out, "🚚 Delivery type: %s\n", ev.DeliveryType)
	}
	return writeEvents(out, ev)
}

func runItems(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	if err := a.load(ctx); err != nil {
		return err
	}

	o, ok := a.store.Find(id)
	if !ok {
		return fmt.Errorf("order %d not found", id)
	}

	out := cmd.OutOrStdout()
	v, ok := a.vm.Renderer().SubItems(o)
	if !ok {
		fmt.Fprintln(out, "📭 This order has no sub-items.")
		return nil
	}

	fmt.Fprintf(out, "🧾 Order %s | %s | %d items", v.OrderRef, v.OrderDate, v.TotalItems)
	if v.TotalPrice != "" {
		fmt.Fprintf(out, " | total %s", v.TotalPrice)
	}
	fmt.Fprintln(out)
	for _, item := range v.Items {
		fmt.Fprintf(out, "  • %s (%s)\n    %s\n", item.Title, item.Price, item.ProductURL)
	}
	return nil
}
