package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List skills",
	Long: `List skills, filtered and sorted.

Flags left unset fall back to the saved view; --save-view stores the
effective filters as the new saved view.

Example:
  skilltrack list --status in-progress --sort progress
  skilltrack list --search react --category "Frontend Development" --save-view`,
	Args: cobra.NoArgs,
	RunE: listSkills,
}

func init() {
	rootCmd.AddCommand(listCmd)

	addCriteriaFlags(listCmd)
	listCmd.Flags().Bool("save-view", false, "Save the effective filters as the default view")
	listCmd.Flags().Bool("json", false, "Print skills as JSON")
}

func addCriteriaFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Case-insensitive match on name or description")
	cmd.Flags().String("status", "", "Status filter (all, not-started, in-progress, completed)")
	cmd.Flags().String("category", "", "Category filter (all or a category name)")
	cmd.Flags().String("sort", "", "Sort key (name, progress, category, status, created, target)")
}

// criteriaFromFlags overlays explicitly set flags onto base.
func criteriaFromFlags(cmd *cobra.Command, base skill.Criteria) (skill.Criteria, error) {
	c := base
	if cmd.Flags().Changed("search") {
		c.Search, _ = cmd.Flags().GetString("search")
	}
	if cmd.Flags().Changed("status") {
		c.Status, _ = cmd.Flags().GetString("status")
	}
	if cmd.Flags().Changed("category") {
		c.Category, _ = cmd.Flags().GetString("category")
	}
	if cmd.Flags().Changed("sort") {
		raw, _ := cmd.Flags().GetString("sort")
		key, err := skill.ParseSortKey(raw)
		if err != nil {
			return skill.Criteria{}, err
		}
		c.Sort = key
	}
	if err := c.Validate(); err != nil {
		return skill.Criteria{}, err
	}
	return c, nil
}

func listSkills(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		saved, err := a.manager.ViewCriteria(ctx)
		if err != nil {
			return err
		}
		criteria, err := criteriaFromFlags(cmd, saved)
		if err != nil {
			return err
		}

		skills, err := a.manager.List(ctx)
		if err != nil {
			return err
		}
		view := a.manager.FilterAndSort(skills, criteria)

		saveView, _ := cmd.Flags().GetBool("save-view")
		if saveView {
			if err := a.manager.SaveViewCriteria(ctx, criteria); err != nil {
				return fmt.Errorf("failed to save view: %w", err)
			}
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(view)
		}

		cats, err := a.manager.Categories(ctx)
		if err != nil {
			return err
		}
		renderSkillTable(cmd.OutOrStdout(), view, cats)
		if len(view) != len(skills) {
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(fmt.Sprintf("%d of %d skills shown", len(view), len(skills))))
		}
		return nil
	})
}
