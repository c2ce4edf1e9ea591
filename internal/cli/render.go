package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e4e4ec"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	statusStyles = map[skill.Status]lipgloss.Style{
		skill.NotStarted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		skill.InProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6")),
		skill.Completed:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	}
)

const progressBarWidth = 10

// categoryColors maps category names to their swatch colour.
func categoryColors(cats []skill.Category) map[string]string {
	out := make(map[string]string, len(cats))
	for _, c := range cats {
		out[c.Name] = c.Color
	}
	return out
}

func swatch(color string) string {
	if color == "" {
		color = "#6B7280"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
}

func statusText(s skill.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return s.Label()
	}
	return style.Render(s.Label())
}

// progressBar renders pct as a fixed-width bar, e.g. "███████░░░".
func progressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * progressBarWidth / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

// progressText formats milestone completion as "done/total (pct%)".
func progressText(s skill.Skill) string {
	return fmt.Sprintf("%d/%d (%d%%)", s.CompletedCount(), len(s.Milestones), skill.Progress(s))
}

func targetText(d *skill.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

// pad right-pads s to width display cells.
func pad(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// renderSkillTable writes one row per skill.
func renderSkillTable(w io.Writer, skills []skill.Skill, cats []skill.Category) {
	if len(skills) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No skills match."))
		return
	}

	colors := categoryColors(cats)
	headers := []string{"ID", "NAME", "CATEGORY", "STATUS", "PROGRESS", "TARGET"}
	rows := make([][]string, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, []string{
			s.ID,
			s.Name,
			swatch(colors[s.Category]) + " " + s.Category,
			statusText(s.Status),
			progressBar(skill.Progress(s)) + " " + progressText(s),
			targetText(s.TargetDate),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := lipgloss.Width(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = pad(headerStyle.Render(h), widths[i])
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	for _, row := range rows {
		for i, cell := range row {
			cells[i] = pad(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// renderSkillDetail writes a skill and its milestones.
func renderSkillDetail(w io.Writer, s skill.Skill, cats []skill.Category) {
	colors := categoryColors(cats)

	fmt.Fprintln(w, headerStyle.Render(s.Name))
	fmt.Fprintln(w, s.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "ID:        %s\n", s.ID)
	fmt.Fprintf(w, "Category:  %s %s\n", swatch(colors[s.Category]), s.Category)
	fmt.Fprintf(w, "Status:    %s\n", statusText(s.Status))
	fmt.Fprintf(w, "Progress:  %s %s\n", progressBar(skill.Progress(s)), progressText(s))
	fmt.Fprintf(w, "Target:    %s\n", targetText(s.TargetDate))
	fmt.Fprintf(w, "Created:   %s\n", s.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Updated:   %s\n", s.UpdatedAt.Format(time.RFC3339))
	fmt.Fprintln(w)
	fmt.Fprintln(w, headerStyle.Render("Milestones"))
	for _, m := range s.Milestones {
		box := "[ ]"
		if m.Completed {
			box = statusStyles[skill.Completed].Render("[x]")
		}
		line := fmt.Sprintf("  %s %s %s", box, m.Title, dimStyle.Render("("+m.ID+")"))
		if m.Completed && m.CompletedAt != nil {
			line += dimStyle.Render(" done " + m.CompletedAt.Format("2006-01-02"))
		}
		fmt.Fprintln(w, line)
		if m.Description != "" {
			fmt.Fprintln(w, "      "+dimStyle.Render(m.Description))
		}
	}
}

// renderStats writes the dashboard counters.
func renderStats(w io.Writer, st skill.Stats) {
	fmt.Fprintf(w, "%s %d\n", pad("Total skills:", 18), st.Total)
	fmt.Fprintf(w, "%s %s\n", pad("Completed:", 18), statusStyles[skill.Completed].Render(fmt.Sprint(st.Completed)))
	fmt.Fprintf(w, "%s %s\n", pad("In progress:", 18), statusStyles[skill.InProgress].Render(fmt.Sprint(st.InProgress)))
	fmt.Fprintf(w, "%s %s\n", pad("Not started:", 18), statusStyles[skill.NotStarted].Render(fmt.Sprint(st.NotStarted)))
	fmt.Fprintf(w, "%s %s %d%%\n", pad("Average progress:", 18), progressBar(st.AverageProgress), st.AverageProgress)
}

// renderCategories writes the category list.
func renderCategories(w io.Writer, cats []skill.Category) {
	for _, c := range cats {
		fmt.Fprintf(w, "%s %s %s\n", swatch(c.Color), pad(c.Name, 24), dimStyle.Render(c.Color))
	}
}

// renderValidation writes one line per failed field in field order.
func renderValidation(w io.Writer, res skill.ValidationResult) {
	for _, field := range []string{skill.FieldName, skill.FieldDescription, skill.FieldCategory, skill.FieldMilestones} {
		if msg, ok := res.Errors[field]; ok {
			fmt.Fprintf(w, "%s %s\n", errorStyle.Render(pad(field+":", 12)), msg)
		}
	}
}

func renderWarning(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, warnStyle.Render("Warning: "+fmt.Sprintf(format, args...)))
}
