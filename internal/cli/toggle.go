package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle <skill-id> <milestone-id>",
	Short: "Mark a milestone done or not done",
	Long: `Flip a milestone between done and not done. The skill's status is
recomputed from its milestones.

Example:
  skilltrack toggle 1 1-4`,
	Args: cobra.ExactArgs(2),
	RunE: toggleMilestone,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func toggleMilestone(cmd *cobra.Command, args []string) error {
	skillID, milestoneID := args[0], args[1]
	return withApp(cmd, func(ctx context.Context, a *app) error {
		s, err := a.manager.ToggleMilestone(ctx, skillID, milestoneID)
		if err != nil {
			return err
		}

		state := "not done"
		for _, m := range s.Milestones {
			if m.ID == milestoneID && m.Completed {
				state = "done"
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Milestone %s marked %s; %s is %s %s\n",
			milestoneID, state, s.Name, statusText(s.Status), progressText(s))
		return nil
	})
}
