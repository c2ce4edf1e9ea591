package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/andywolf/skilltrack/internal/skill"
)

func sampleSkill() skill.Skill {
	at := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	target := skill.NewDate(2025, time.March, 15)
	s := skill.Skill{
		ID:          "1",
		Name:        "React Development",
		Description: "Hooks and context",
		Category:    "Frontend Development",
		Milestones: []skill.Milestone{
			{ID: "1-1", Title: "Components", Completed: true, CompletedAt: &at},
			{ID: "1-2", Title: "Hooks", Completed: true, CompletedAt: &at},
			{ID: "1-3", Title: "Context API"},
		},
		TargetDate: &target,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	s.Status = skill.DeriveStatus(s.Milestones)
	return s
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{pct: 0, want: "░░░░░░░░░░"},
		{pct: 67, want: "██████░░░░"},
		{pct: 100, want: "██████████"},
		{pct: -5, want: "░░░░░░░░░░"},
		{pct: 150, want: "██████████"},
	}

	for _, tt := range tests {
		if got := progressBar(tt.pct); got != tt.want {
			t.Errorf("progressBar(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestProgressText(t *testing.T) {
	if got := progressText(sampleSkill()); got != "2/3 (67%)" {
		t.Errorf("progressText() = %q, want %q", got, "2/3 (67%)")
	}
	if got := progressText(skill.Skill{}); got != "0/0 (0%)" {
		t.Errorf("progressText(empty) = %q, want %q", got, "0/0 (0%)")
	}
}

func TestPad(t *testing.T) {
	if got := pad("ab", 4); got != "ab  " {
		t.Errorf("pad() = %q", got)
	}
	if got := pad("abcdef", 4); got != "abcdef" {
		t.Errorf("pad() should not truncate, got %q", got)
	}
}

func TestRenderSkillTable(t *testing.T) {
	var buf bytes.Buffer
	renderSkillTable(&buf, []skill.Skill{sampleSkill()}, skill.DefaultCategories())
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines: %q", len(lines), out)
	}
	for _, want := range []string{"ID", "NAME", "PROGRESS", "TARGET"} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("header missing %q: %q", want, lines[0])
		}
	}
	for _, want := range []string{"React Development", "Frontend Development", "In Progress", "2/3 (67%)", "2025-03-15"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row missing %q: %q", want, lines[1])
		}
	}
}

func TestRenderSkillTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	renderSkillTable(&buf, nil, nil)
	if !strings.Contains(buf.String(), "No skills match.") {
		t.Errorf("got %q", buf.String())
	}
}

func TestRenderSkillDetail(t *testing.T) {
	var buf bytes.Buffer
	renderSkillDetail(&buf, sampleSkill(), skill.DefaultCategories())
	out := buf.String()

	for _, want := range []string{"React Development", "Hooks and context", "[x] Components", "[ ] Context API", "(1-3)", "done 2025-01-10", "Target:    2025-03-15"} {
		if !strings.Contains(out, want) {
			t.Errorf("detail missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	renderStats(&buf, skill.Stats{Total: 6, Completed: 1, InProgress: 4, NotStarted: 1, AverageProgress: 44})
	out := buf.String()

	for _, want := range []string{"Total skills:", "6", "In progress:", "44%"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestRenderValidation(t *testing.T) {
	_, res := skill.Validate(skill.Draft{})
	var buf bytes.Buffer
	renderValidation(&buf, res)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "name:") || !strings.Contains(lines[0], "Skill name is required") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[3], "At least one milestone is required") {
		t.Errorf("last line = %q", lines[3])
	}
}
