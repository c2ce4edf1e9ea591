package cli

import (
	"encoding/json"
	"fmt"

	"github.com/andywolf/skilltrack/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print detailed version information including commit hash and build date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(version.Current())
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			fmt.Fprintln(cmd.OutOrStdout(), version.Full())
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), version.Info())
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolP("verbose", "v", false, "print verbose version information")
	versionCmd.Flags().Bool("json", false, "print version information as JSON")
	rootCmd.AddCommand(versionCmd)
}
