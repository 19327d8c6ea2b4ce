package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/actions"
)

var (
	addURL      string
	addTracking string

	editTitle    string
	editTracking string
	editImage    string

	deleteYes bool
)

var addCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Add an order from an AliExpress product URL",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit the title, tracking number or image of an order",
	Long: `Edit an order. Fields whose flag is not given keep their current value.
Pass an empty value (for example --tracking "") to clear a field.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an order",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(addCmd, editCmd, deleteCmd)

	addCmd.Flags().StringVar(&addURL, "url", "", "AliExpress product URL")
	addCmd.Flags().StringVar(&addTracking, "tracking", "", "Tracking number (optional)")

	editCmd.Flags().StringVar(&editTitle, "title", "", "Product title")
	editCmd.Flags().StringVar(&editTracking, "tracking", "", "Tracking number")
	editCmd.Flags().StringVar(&editImage, "image", "", "Product image URL")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func parseOrderID(s string) (int, error) {
	id, err := cast.ToIntE(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid order ID: %s", s)
	}
	return id, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	url := addURL
	if len(args) == 1 {
		url = args[0]
	}

	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "⏳ Adding order, please wait...")
	res, err := a.dispatcher.AddOrder(ctx, actions.AddOrderInput{URL: url, TrackingNumber: addTracking})
	if err != nil {
		return userError(err, "Error adding order. Please try again.")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✅ %s\n", res.Message)
	if res.Order != nil && res.Order.ProductTitle != "" {
		fmt.Fprintf(out, "📦 #%d %s\n", res.Order.ID, res.Order.ProductTitle)
	}
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	current, err := a.vm.BeginEdit(id)
	if err != nil {
		return userError(err, "Order not found")
	}

	title, tracking, image := current.ProductTitle, current.TrackingNumber, current.ProductImage
	if cmd.Flags().Changed("title") {
		title = editTitle
	}
	if cmd.Flags().Changed("tracking") {
		tracking = editTracking
	}
	if cmd.Flags().Changed("image") {
		image = editImage
	}

	res, err := a.vm.SaveEdit(ctx, a.dispatcher, title, tracking, image)
	if err != nil {
		return userError(err, "Error updating order. Please try again.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s\n", res.Message)
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseOrderID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete order %d? [y/N] ", id)
		answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	res, err := a.dispatcher.DeleteOrder(ctx, id)
	if err != nil {
		return userError(err, "Error deleting order. Please try again.")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "🗑️  %s\n", res.Message)
	return nil
}
