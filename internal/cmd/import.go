package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/actions"
	"github.com/matthieukhl/parceltrack/internal/view"
)

var (
	importCurl string
	importFile string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import orders from a copied AliExpress cURL command",
	Long: `Import orders from the AliExpress order list. Copy the order list request
from the browser developer tools as cURL and pass it with --curl, or save it
to a file and pass --file (use "-" for stdin).`,
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importCurl, "curl", "", "cURL command")
	importCmd.Flags().StringVar(&importFile, "file", "", "File containing the cURL command, or - for stdin")
}

func readCurl(cmd *cobra.Command, fs afero.Fs) (string, error) {
	switch importFile {
	case "":
		return importCurl, nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := afero.ReadFile(fs, importFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", importFile, err)
		}
		return string(data), nil
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	curl, err := readCurl(cmd, afero.NewOsFs())
	if err != nil {
		return err
	}

	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "⏳ Importing...")
	res, err := a.dispatcher.ImportOrders(ctx, actions.ImportInput{CurlCommand: curl})
	if err != nil {
		return userError(err, "Error importing orders. Please try again.")
	}

	if res.Info {
		fmt.Fprintf(out, "ℹ️  %s\n", res.Message)
		return nil
	}
	fmt.Fprintf(out, "✅ %s\n", res.Message)
	for _, p := range view.ImportPreviews(res.Imported) {
		fmt.Fprintf(out, "  📦 %s\n     Product ID: %s | Order Date: %s | Price: %s\n", p.Title, p.ProductID, p.OrderDate, p.Price)
	}
	return nil
}
