// Package skill defines the skill-tracking domain model along with the pure
// operations over it: status derivation, draft validation, filtering, sorting
// and dashboard statistics.
package skill

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of a skill, derived from its milestones.
type Status string

const (
	NotStarted Status = "not-started"
	InProgress Status = "in-progress"
	Completed  Status = "completed"
)

// Valid reports whether s is one of the known status labels.
func (s Status) Valid() bool {
	switch s {
	case NotStarted, InProgress, Completed:
		return true
	}
	return false
}

// Label returns a human-readable form of the status.
func (s Status) Label() string {
	switch s {
	case NotStarted:
		return "Not Started"
	case InProgress:
		return "In Progress"
	case Completed:
		return "Completed"
	}
	return string(s)
}

// ParseStatus parses a status label such as "in-progress".
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid status: %s (must be not-started, in-progress or completed)", s)
	}
	return st, nil
}

// Milestone is an atomic sub-goal owned by exactly one Skill.
type Milestone struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
}

// Skill is a trackable learning goal.
type Skill struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Category    string      `json:"category" yaml:"category"`
	Milestones  []Milestone `json:"milestones" yaml:"milestones"`
	TargetDate  *Date       `json:"targetDate,omitempty" yaml:"targetDate,omitempty"`
	CreatedAt   time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt" yaml:"updatedAt"`
	Status      Status      `json:"status" yaml:"status"`
}

// Category groups skills. Name is unique and is what Skill.Category refers to.
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Clone returns a deep copy of the skill so callers can modify it without
// touching the stored record.
func (s Skill) Clone() Skill {
	out := s
	if s.Milestones != nil {
		out.Milestones = make([]Milestone, len(s.Milestones))
		for i, m := range s.Milestones {
			if m.CompletedAt != nil {
				at := *m.CompletedAt
				m.CompletedAt = &at
			}
			out.Milestones[i] = m
		}
	}
	if s.TargetDate != nil {
		d := *s.TargetDate
		out.TargetDate = &d
	}
	return out
}

// CompletedCount returns how many milestones are complete.
func (s Skill) CompletedCount() int {
	n := 0
	for _, m := range s.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// DeriveStatus computes the status implied by a milestone list.
func DeriveStatus(milestones []Milestone) Status {
	done := 0
	for _, m := range milestones {
		if m.Completed {
			done++
		}
	}
	switch {
	case done == 0:
		return NotStarted
	case done == len(milestones):
		return Completed
	default:
		return InProgress
	}
}

// Progress returns the percentage (0-100) of completed milestones, rounded to
// the nearest integer. A skill without milestones has zero progress.
func Progress(s Skill) int {
	total := len(s.Milestones)
	if total == 0 {
		return 0
	}
	return roundDiv(s.CompletedCount()*100, total)
}

// roundDiv divides non-negative integers rounding half up.
func roundDiv(num, den int) int {
	return (2*num + den) / (2 * den)
}

// Date is a calendar date without a time component, encoded as "2006-01-02".
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate returns the date for the given year, month and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "2006-01-02". RFC 3339 timestamps are accepted and
// truncated to their date.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return Date{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// String returns the date as "2006-01-02".
func (d Date) String() string {
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML renders the date as a plain string.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}
