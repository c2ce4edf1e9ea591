package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/andywolf/skilltrack/internal/skill"
	"github.com/spf13/cobra"
)

func newCriteriaCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "list"}
	addCriteriaFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	return cmd
}

func newDraftCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "add"}
	addDraftFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v) error: %v", args, err)
	}
	return cmd
}

func TestCriteriaFromFlags(t *testing.T) {
	saved := skill.Criteria{Search: "react", Status: "all", Category: "all", Sort: skill.SortProgress}

	tests := []struct {
		name    string
		args    []string
		want    skill.Criteria
		wantErr bool
	}{
		{
			name: "no flags keeps saved view",
			args: nil,
			want: saved,
		},
		{
			name: "flags override",
			args: []string{"--status", "completed", "--sort", "TARGET"},
			want: skill.Criteria{Search: "react", Status: "completed", Category: "all", Sort: skill.SortTarget},
		},
		{
			name: "empty search clears saved search",
			args: []string{"--search", ""},
			want: skill.Criteria{Status: "all", Category: "all", Sort: skill.SortProgress},
		},
		{
			name:    "unknown sort key",
			args:    []string{"--sort", "color"},
			wantErr: true,
		},
		{
			name:    "unknown status",
			args:    []string{"--status", "paused"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := criteriaFromFlags(newCriteriaCmd(t, tt.args...), saved)
			if tt.wantErr {
				if err == nil {
					t.Errorf("criteriaFromFlags() expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("criteriaFromFlags() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("criteriaFromFlags() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestApplyDraftFlags(t *testing.T) {
	base := skill.Draft{
		Name:        "Go",
		Description: "Learn Go",
		Category:    "Backend Development",
		Milestones: []skill.MilestoneDraft{
			{ID: "m1", Title: "Tour", Completed: true},
			{ID: "m2", Title: "Concurrency"},
		},
	}

	t.Run("unset flags keep values", func(t *testing.T) {
		d := base
		if err := applyDraftFlags(newDraftCmd(t, "--name", "Golang"), &d); err != nil {
			t.Fatalf("applyDraftFlags() error: %v", err)
		}
		if d.Name != "Golang" || d.Description != "Learn Go" || len(d.Milestones) != 2 {
			t.Errorf("draft = %+v", d)
		}
	})

	t.Run("milestones merge by title", func(t *testing.T) {
		d := base
		cmd := newDraftCmd(t, "--milestone", "Tour", "--milestone", "Generics")
		if err := applyDraftFlags(cmd, &d); err != nil {
			t.Fatalf("applyDraftFlags() error: %v", err)
		}
		if len(d.Milestones) != 2 {
			t.Fatalf("milestones = %+v", d.Milestones)
		}
		if d.Milestones[0].ID != "m1" || !d.Milestones[0].Completed {
			t.Errorf("kept milestone = %+v", d.Milestones[0])
		}
		if d.Milestones[1].ID != "" || d.Milestones[1].Title != "Generics" {
			t.Errorf("new milestone = %+v", d.Milestones[1])
		}
	})

	t.Run("target date set and cleared", func(t *testing.T) {
		d := base
		if err := applyDraftFlags(newDraftCmd(t, "--target", "2025-06-30"), &d); err != nil {
			t.Fatalf("applyDraftFlags() error: %v", err)
		}
		if d.TargetDate == nil || d.TargetDate.String() != "2025-06-30" {
			t.Errorf("TargetDate = %v", d.TargetDate)
		}
		if err := applyDraftFlags(newDraftCmd(t, "--target", "none"), &d); err != nil {
			t.Fatalf("applyDraftFlags() error: %v", err)
		}
		if d.TargetDate != nil {
			t.Errorf("TargetDate = %v, want nil", d.TargetDate)
		}
	})

	t.Run("bad target date", func(t *testing.T) {
		d := base
		if err := applyDraftFlags(newDraftCmd(t, "--target", "tomorrow"), &d); err == nil {
			t.Error("applyDraftFlags() expected error")
		}
	})
}

func TestValidateDraft(t *testing.T) {
	var buf bytes.Buffer
	_, err := validateDraft(&buf, skill.Draft{Name: "Go", Milestones: []skill.MilestoneDraft{{Title: " "}}})
	if !errors.Is(err, skill.ErrValidation) {
		t.Fatalf("validateDraft() error = %v, want ErrValidation", err)
	}
	out := buf.String()
	for _, want := range []string{"Description is required", "Category is required", "All milestones must have a title"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Skill name is required") {
		t.Errorf("output reports a valid field:\n%s", out)
	}
}

func TestWarnUnknownCategory(t *testing.T) {
	cats := skill.DefaultCategories()

	var buf bytes.Buffer
	warnUnknownCategory(&buf, "Database", cats)
	if buf.Len() != 0 {
		t.Errorf("known category warned: %q", buf.String())
	}

	warnUnknownCategory(&buf, "Cooking", cats)
	if !strings.Contains(buf.String(), `Warning: category "Cooking"`) {
		t.Errorf("got %q", buf.String())
	}
}
