// Package wizard provides interactive prompts for CLI commands.
package wizard

import (
	"fmt"
	"strings"

	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/charmbracelet/huh"
)

// SkillForm prompts for every field of a skill, starting from the values
// already in d, and writes the answers back into d. Field rules are left to
// skill.Validate so the form and the flag path report the same messages.
func SkillForm(d *skill.Draft, categories []skill.Category) error {
	target := ""
	if d.TargetDate != nil {
		target = d.TargetDate.String()
	}
	milestones := FormatMilestones(d.Milestones)

	category := d.Category
	categoryField := categoryInput(&category, categories)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Skill Name").
				Value(&d.Name),

			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&d.Description),

			categoryField,

			huh.NewInput().
				Title("Target Date (YYYY-MM-DD, optional)").
				Value(&target).
				Validate(func(s string) error {
					_, err := ParseTargetDate(s)
					return err
				}),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Milestones (one per line)").
				Lines(6).
				Value(&milestones),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("prompt cancelled: %w", err)
	}

	d.Category = category
	td, err := ParseTargetDate(target)
	if err != nil {
		return err
	}
	d.TargetDate = td
	d.Milestones = MergeMilestones(d.Milestones, ParseLines(milestones))
	return nil
}

// categoryInput offers the known categories as a select, or a free-text
// input when there are none to choose from.
func categoryInput(value *string, categories []skill.Category) huh.Field {
	if len(categories) == 0 {
		return huh.NewInput().
			Title("Category").
			Value(value)
	}

	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		options = append(options, huh.NewOption(c.Name, c.Name))
	}
	if *value == "" {
		*value = categories[0].Name
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(options...).
		Value(value)
}

// ConfirmDelete asks before a skill is removed.
func ConfirmDelete(name string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", name)).
				Description("Its milestones are deleted with it.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&confirmed),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt cancelled: %w", err)
	}
	return confirmed, nil
}

// ParseTargetDate parses an optional YYYY-MM-DD date. Empty input and "none"
// mean no target date.
func ParseTargetDate(s string) (*skill.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return nil, nil
	}
	d, err := skill.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid target date %q (use YYYY-MM-DD)", s)
	}
	return &d, nil
}

// ParseLines splits multi-line input into trimmed, non-empty lines.
func ParseLines(input string) []string {
	var result []string
	for _, line := range strings.Split(input, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// FormatMilestones renders milestone titles one per line.
func FormatMilestones(milestones []skill.MilestoneDraft) string {
	titles := make([]string, len(milestones))
	for i, m := range milestones {
		titles[i] = m.Title
	}
	return strings.Join(titles, "\n")
}

// MergeMilestones builds a milestone list from titles. A title that matches
// an existing milestone keeps that milestone's id, description and
// completion; new titles become open milestones with no id.
func MergeMilestones(existing []skill.MilestoneDraft, titles []string) []skill.MilestoneDraft {
	byTitle := make(map[string][]skill.MilestoneDraft)
	for _, m := range existing {
		key := strings.TrimSpace(m.Title)
		byTitle[key] = append(byTitle[key], m)
	}

	out := make([]skill.MilestoneDraft, 0, len(titles))
	for _, title := range titles {
		if matches := byTitle[title]; len(matches) > 0 {
			out = append(out, matches[0])
			byTitle[title] = matches[1:]
			continue
		}
		out = append(out, skill.MilestoneDraft{Title: title})
	}
	return out
}
