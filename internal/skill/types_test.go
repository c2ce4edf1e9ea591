package skill

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		name       string
		milestones []Milestone
		want       Status
	}{
		{name: "nil milestones", milestones: nil, want: NotStarted},
		{name: "empty milestones", milestones: []Milestone{}, want: NotStarted},
		{
			name:       "all incomplete",
			milestones: []Milestone{{ID: "a"}, {ID: "b"}},
			want:       NotStarted,
		},
		{
			name:       "some complete",
			milestones: []Milestone{{ID: "a", Completed: true}, {ID: "b"}},
			want:       InProgress,
		},
		{
			name:       "all complete",
			milestones: []Milestone{{ID: "a", Completed: true}, {ID: "b", Completed: true}},
			want:       Completed,
		},
		{
			name:       "single complete",
			milestones: []Milestone{{ID: "a", Completed: true}},
			want:       Completed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.milestones); got != tt.want {
				t.Errorf("DeriveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{name: "no milestones", completed: 0, total: 0, want: 0},
		{name: "none done", completed: 0, total: 4, want: 0},
		{name: "one of three rounds down", completed: 1, total: 3, want: 33},
		{name: "two of three rounds up", completed: 2, total: 3, want: 67},
		{name: "half", completed: 1, total: 2, want: 50},
		{name: "one of eight rounds half up", completed: 1, total: 8, want: 13},
		{name: "all done", completed: 5, total: 5, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Skill{}
			for i := 0; i < tt.total; i++ {
				s.Milestones = append(s.Milestones, Milestone{Completed: i < tt.completed})
			}
			if got := Progress(s); got != tt.want {
				t.Errorf("Progress() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus(" In-Progress ")
	if err != nil {
		t.Fatalf("ParseStatus() unexpected error: %v", err)
	}
	if got != InProgress {
		t.Errorf("ParseStatus() = %q, want %q", got, InProgress)
	}

	if _, err := ParseStatus("done"); err == nil {
		t.Error("ParseStatus(\"done\") expected error, got nil")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2025-03-15", want: "2025-03-15"},
		{name: "rfc3339 truncated", input: "2025-03-15T18:30:00Z", want: "2025-03-15"},
		{name: "surrounding whitespace", input: " 2025-03-15 ", want: "2025-03-15"},
		{name: "garbage", input: "next week", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestSkill_JSONRoundTrip(t *testing.T) {
	completedAt := time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	target := NewDate(2025, time.March, 15)
	original := []Skill{
		{
			ID:          "skill-1",
			Name:        "Go",
			Description: "Learn Go",
			Category:    "Programming Languages",
			Milestones: []Milestone{
				{ID: "m1", Title: "Tour", Description: "Finish the tour", Completed: true, CompletedAt: &completedAt},
				{ID: "m2", Title: "Concurrency"},
			},
			TargetDate: &target,
			CreatedAt:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
			Status:     InProgress,
		},
		{
			ID:          "skill-2",
			Name:        "SQL",
			Description: "Learn SQL",
			Category:    "Database",
			Milestones:  []Milestone{{ID: "m1", Title: "Joins"}},
			CreatedAt:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			Status:      NotStarted,
		},
	}

	raw, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded []Skill
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(original, decoded) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", decoded, original)
	}
}

func TestSkill_JSONFieldNames(t *testing.T) {
	target := NewDate(2025, time.March, 15)
	raw, err := json.Marshal(Skill{ID: "1", TargetDate: &target, Status: Completed})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "name", "description", "category", "milestones", "targetDate", "createdAt", "updatedAt", "status"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing JSON field %q in %s", key, raw)
		}
	}
	if fields["targetDate"] != "2025-03-15" {
		t.Errorf("targetDate = %v, want 2025-03-15", fields["targetDate"])
	}
}

func TestSkill_Clone(t *testing.T) {
	at := time.Now()
	target := NewDate(2025, time.May, 1)
	s := Skill{
		ID:         "1",
		Milestones: []Milestone{{ID: "m1", Completed: true, CompletedAt: &at}},
		TargetDate: &target,
	}
	c := s.Clone()
	c.Milestones[0].Completed = false
	*c.Milestones[0].CompletedAt = at.Add(time.Hour)
	c.TargetDate.Time = c.TargetDate.AddDate(1, 0, 0)

	if !s.Milestones[0].Completed {
		t.Error("clone shares milestone slice with original")
	}
	if !s.Milestones[0].CompletedAt.Equal(at) {
		t.Error("clone shares CompletedAt pointer with original")
	}
	if s.TargetDate.String() != "2025-05-01" {
		t.Error("clone shares TargetDate pointer with original")
	}
}
