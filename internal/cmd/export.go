package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var (
	exportFilters filterFlags
	exportDir     string
	exportStdout  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export orders to CSV",
	Long: `Export the filtered and sorted orders to a CSV file named
<prefix>_YYYY-MM-DD.csv, using the same filter flags as "list".`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportFilters.register(exportCmd)
	exportCmd.Flags().StringVar(&exportDir, "dir", "", "Output directory (overrides export.dir)")
	exportCmd.Flags().BoolVar(&exportStdout, "stdout", false, "Write the CSV to stdout instead of a file")
}

func runExport(cmd *cobra.Command, args []string) error {
	crit, err := exportFilters.criteria()
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

	if exportStdout {
		return a.vm.Export(cmd.OutOrStdout())
	}

	dir := a.cfg.Export.Dir
	if exportDir != "" {
		dir = exportDir
	}
	path, err := a.vm.ExportFile(afero.NewOsFs(), dir)
	if err != nil {
		return fmt.Errorf("failed to export orders: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "💾 Exported %d orders to %s\n", len(a.vm.Orders()), path)
	return nil
}
