package cmd

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	listFilters filterFlags
	listJSON    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List orders",
	Long: `Fetch every order from the tracker service and print the filtered,
sorted table. Delivered orders are hidden unless --show-delivered is set.

Sort keys: added_date_desc (default), added_date_asc, order_date_desc,
order_date_asc, last_update_desc, last_update_asc, product_title_asc,
product_title_desc, tracking_number_asc, tracking_number_desc, price_asc,
price_desc, status_asc, doar_status_asc, doar_status_desc`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listFilters.register(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print rows as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	crit, err := listFilters.criteria()
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

	a.vm.SetCriteria(crit)
	page := a.vm.View()
	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(page)
	}

	if len(page.Rows) == 0 {
		fmt.Fprintf(out, "📭 %s\n", page.Empty)
		return nil
	}
	if err := writeTable(out, page); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	fmt.Fprintf(out, "\n📦 %s\n", page.Summary)
	return nil
}
