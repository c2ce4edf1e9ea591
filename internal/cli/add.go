package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/andywolf/skilltrack/internal/cli/wizard"
	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a skill",
	Long: `Add a skill with at least one milestone.

Example:
  skilltrack add --name "Go" --description "Learn Go" \
    --category "Backend Development" --milestone "Tour of Go" --milestone "Concurrency" \
    --target 2025-06-30
  skilltrack add -i`,
	Args: cobra.NoArgs,
	RunE: addSkill,
}

var editCmd = &cobra.Command{
	Use:   "edit <skill-id>",
	Short: "Edit a skill",
	Long: `Edit a skill. Flags that are not given keep their current value.

--milestone replaces the milestone list; milestones whose title is unchanged
keep their id and completion.

Example:
  skilltrack edit 3 --name "TypeScript"
  skilltrack edit 3 -i`,
	Args: cobra.ExactArgs(1),
	RunE: editSkill,
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)

	addDraftFlags(addCmd)
	addDraftFlags(editCmd)
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Skill name")
	cmd.Flags().String("description", "", "Skill description")
	cmd.Flags().String("category", "", "Category name")
	cmd.Flags().StringArray("milestone", nil, "Milestone title (repeatable)")
	cmd.Flags().String("target", "", "Target date YYYY-MM-DD (\"none\" clears it)")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the skill with an interactive form")
}

// applyDraftFlags overlays explicitly set flags onto d.
func applyDraftFlags(cmd *cobra.Command, d *skill.Draft) error {
	flags := cmd.Flags()
	if flags.Changed("name") {
		d.Name, _ = flags.GetString("name")
	}
	if flags.Changed("description") {
		d.Description, _ = flags.GetString("description")
	}
	if flags.Changed("category") {
		d.Category, _ = flags.GetString("category")
	}
	if flags.Changed("milestone") {
		titles, _ := flags.GetStringArray("milestone")
		d.Milestones = wizard.MergeMilestones(d.Milestones, titles)
	}
	if flags.Changed("target") {
		raw, _ := flags.GetString("target")
		td, err := wizard.ParseTargetDate(raw)
		if err != nil {
			return err
		}
		d.TargetDate = td
	}
	return nil
}

// validateDraft runs the field rules and prints every failure.
func validateDraft(w io.Writer, d skill.Draft) (skill.ValidatedDraft, error) {
	vd, res := skill.Validate(d)
	if !res.Valid {
		renderValidation(w, res)
		return skill.ValidatedDraft{}, res.Err()
	}
	return vd, nil
}

// warnUnknownCategory prints a warning when category is not in cats.
func warnUnknownCategory(w io.Writer, category string, cats []skill.Category) {
	for _, c := range cats {
		if c.Name == category {
			return
		}
	}
	renderWarning(w, "category %q is not in the category list (see 'skilltrack category list')", category)
}

// buildDraft fills d from flags and, with -i, the interactive form.
func buildDraft(ctx context.Context, cmd *cobra.Command, a *app, d *skill.Draft) ([]skill.Category, error) {
	if err := applyDraftFlags(cmd, d); err != nil {
		return nil, err
	}
	cats, err := a.manager.Categories(ctx)
	if err != nil {
		return nil, err
	}
	interactive, _ := cmd.Flags().GetBool("interactive")
	if interactive {
		if err := wizard.SkillForm(d, cats); err != nil {
			return nil, err
		}
	}
	return cats, nil
}

func addSkill(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		var d skill.Draft
		cats, err := buildDraft(ctx, cmd, a, &d)
		if err != nil {
			return err
		}

		vd, err := validateDraft(cmd.ErrOrStderr(), d)
		if err != nil {
			return err
		}
		warnUnknownCategory(cmd.ErrOrStderr(), vd.Draft().Category, cats)

		created, err := a.manager.Create(ctx, vd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s) with %d milestones\n", created.Name, created.ID, len(created.Milestones))
		return nil
	})
}

func editSkill(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withApp(cmd, func(ctx context.Context, a *app) error {
		current, err := a.manager.Get(ctx, id)
		if err != nil {
			return err
		}

		d := skill.DraftFromSkill(current)
		cats, err := buildDraft(ctx, cmd, a, &d)
		if err != nil {
			return err
		}

		vd, err := validateDraft(cmd.ErrOrStderr(), d)
		if err != nil {
			return err
		}
		if vd.Draft().Category != current.Category {
			warnUnknownCategory(cmd.ErrOrStderr(), vd.Draft().Category, cats)
		}

		updated, err := a.manager.Update(ctx, id, vd)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s): %s %s\n",
			updated.Name, updated.ID, statusText(updated.Status), progressText(updated))
		return nil
	})
}
