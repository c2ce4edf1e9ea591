package cli

import (
	"context"
	"fmt"

	"github.com/andywolf/skilltrack/internal/cli/wizard"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <skill-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a skill",
	Long: `Delete a skill and its milestones. Asks for confirmation unless --yes
is given.

Example:
  skilltrack delete 4 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: deleteSkill,
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolP("yes", "y", false, "Delete without asking")
}

func deleteSkill(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withApp(cmd, func(ctx context.Context, a *app) error {
		s, err := a.manager.Get(ctx, id)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed, err := wizard.ConfirmDelete(s.Name)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
		}

		if err := a.manager.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s (%s)\n", s.Name, s.ID)
		return nil
	})
}
