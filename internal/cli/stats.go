package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show skill counts and average progress",
	Args:  cobra.NoArgs,
	RunE:  showStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("json", false, "Print statistics as JSON")
}

func showStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		skills, err := a.manager.List(ctx)
		if err != nil {
			return err
		}
		st := a.manager.Stats(skills)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		renderStats(cmd.OutOrStdout(), st)
		return nil
	})
}
