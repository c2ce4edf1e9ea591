package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <skill-id>",
	Short: "Show a skill and its milestones",
	Args:  cobra.ExactArgs(1),
	RunE:  showSkill,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func showSkill(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		s, err := a.manager.Get(ctx, args[0])
		if err != nil {
			return err
		}
		cats, err := a.manager.Categories(ctx)
		if err != nil {
			return err
		}
		renderSkillDetail(cmd.OutOrStdout(), s, cats)
		return nil
	})
}
