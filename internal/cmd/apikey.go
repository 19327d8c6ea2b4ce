package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matthieukhl/parceltrack/internal/actions"
)

var apiKeySet string

var apiKeyCmd = &cobra.Command{
	Use:   "api-key",
	Short: "Show or set the Doar Israel API key",
	Long: `Show whether the tracker service has a Doar Israel API key configured,
or store a new one with --set.`,
	RunE: runAPIKey,
}

func init() {
	rootCmd.AddCommand(apiKeyCmd)

	apiKeyCmd.Flags().StringVar(&apiKeySet, "set", "", "New API key to store")
}

func runAPIKey(cmd *cobra.Command, args []string) error {
	a, ctx, err := setup(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if cmd.Flags().Changed("set") {
		res, err := a.dispatcher.SaveDoarAPIKey(ctx, actions.APIKeyInput{APIKey: apiKeySet})
		if err != nil {
			return userError(err, "Error saving API key. Please try again.")
		}
		fmt.Fprintf(out, "🔑 %s\n", res.Message)
		return nil
	}

	st, err := a.dispatcher.DoarAPIKeyStatus(ctx)
	if err != nil {
		return userError(err, "Error loading API key status. Please try again.")
	}
	if !st.APIKeySet {
		fmt.Fprintln(out, "🔑 No Doar Israel API key configured")
		return nil
	}
	fmt.Fprintf(out, "🔑 Current key: %s\n", st.MaskedKey)
	return nil
}
