package skill

import (
	"testing"
	"time"
)

func TestMigrateLegacy(t *testing.T) {
	updated := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	target := NewDate(2025, 3, 15)

	tests := []struct {
		name       string
		progress   int
		wantDone   int
		wantStatus Status
	}{
		{name: "zero", progress: 0, wantDone: 0, wantStatus: NotStarted},
		{name: "partial rounds down", progress: 75, wantDone: 7, wantStatus: InProgress},
		{name: "ninety nine is not complete", progress: 99, wantDone: 9, wantStatus: InProgress},
		{name: "full", progress: 100, wantDone: 10, wantStatus: Completed},
		{name: "out of range high", progress: 140, wantDone: 10, wantStatus: Completed},
		{name: "out of range low", progress: -5, wantDone: 0, wantStatus: NotStarted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			legacy := LegacySkill{
				ID:          "1",
				Name:        "React Development",
				Description: "Master React",
				Category:    "Frontend Development",
				Progress:    tt.progress,
				TargetDate:  &target,
				CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
				UpdatedAt:   updated,
				Status:      Completed, // ignored; re-derived
			}
			got := MigrateLegacy([]LegacySkill{legacy})
			if len(got) != 1 {
				t.Fatalf("expected 1 skill, got %d", len(got))
			}
			s := got[0]
			if len(s.Milestones) != LegacyCheckpoints {
				t.Fatalf("expected %d milestones, got %d", LegacyCheckpoints, len(s.Milestones))
			}
			if s.CompletedCount() != tt.wantDone {
				t.Errorf("completed = %d, want %d", s.CompletedCount(), tt.wantDone)
			}
			if s.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", s.Status, tt.wantStatus)
			}
			if s.ID != legacy.ID || s.Name != legacy.Name || s.Category != legacy.Category {
				t.Errorf("identity fields not preserved: %+v", s)
			}
			if !s.CreatedAt.Equal(legacy.CreatedAt) || !s.UpdatedAt.Equal(updated) {
				t.Errorf("timestamps not preserved: %v %v", s.CreatedAt, s.UpdatedAt)
			}
			if s.Milestones[0].Title != "Reach 10%" || s.Milestones[9].Title != "Reach 100%" {
				t.Errorf("unexpected checkpoint titles: %q .. %q", s.Milestones[0].Title, s.Milestones[9].Title)
			}
			for i, m := range s.Milestones {
				if m.Completed && (m.CompletedAt == nil || !m.CompletedAt.Equal(updated)) {
					t.Errorf("milestone %d completed without legacy timestamp", i)
				}
				if !m.Completed && m.CompletedAt != nil {
					t.Errorf("milestone %d incomplete but stamped", i)
				}
			}
		})
	}
}

func TestMigrateLegacy_Empty(t *testing.T) {
	got := MigrateLegacy(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("MigrateLegacy(nil) = %v, want empty non-nil slice", got)
	}
}
