package skill

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrValidation is wrapped by every validation failure.
var ErrValidation = errors.New("validation failed")

// Field keys reported by Validate.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldMilestones  = "milestones"
)

// MilestoneDraft is user input for a single milestone. ID is empty for new
// milestones and is assigned when the draft is admitted.
type MilestoneDraft struct {
	ID          string
	Title       string
	Description string
	Completed   bool
}

// Draft is unvalidated user input for creating or updating a skill.
type Draft struct {
	Name        string
	Description string
	Category    string
	TargetDate  *Date
	Milestones  []MilestoneDraft
}

// ValidatedDraft is a Draft that passed Validate. It can only be produced by
// Validate; the zero value is rejected by the tracker.
type ValidatedDraft struct {
	draft Draft
	ok    bool
}

// Valid reports whether the draft came out of a successful Validate call.
func (v ValidatedDraft) Valid() bool {
	return v.ok
}

// Draft returns a copy of the validated input with surrounding whitespace
// trimmed from names and titles.
func (v ValidatedDraft) Draft() Draft {
	d := v.draft
	d.Milestones = append([]MilestoneDraft(nil), v.draft.Milestones...)
	return d
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ValidationResult is the outcome of validating a draft. Errors maps a field
// key to a user-facing message.
type ValidationResult struct {
	Valid  bool
	Errors map[string]string
}

// Err returns a *ValidationError when the result is invalid, nil otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Fields: r.Errors}
}

// Validate checks a draft's required fields. All violated rules are reported
// at once so every invalid field can be highlighted together.
func Validate(d Draft) (ValidatedDraft, ValidationResult) {
	errs := make(map[string]string)

	if strings.TrimSpace(d.Name) == "" {
		errs[FieldName] = "Skill name is required"
	}
	if strings.TrimSpace(d.Description) == "" {
		errs[FieldDescription] = "Description is required"
	}
	// Membership in the category list is not checked here.
	if strings.TrimSpace(d.Category) == "" {
		errs[FieldCategory] = "Category is required"
	}
	if len(d.Milestones) == 0 {
		errs[FieldMilestones] = "At least one milestone is required"
	} else {
		for _, m := range d.Milestones {
			if strings.TrimSpace(m.Title) == "" {
				errs[FieldMilestones] = "All milestones must have a title"
				break
			}
		}
	}

	if len(errs) > 0 {
		return ValidatedDraft{}, ValidationResult{Valid: false, Errors: errs}
	}

	clean := Draft{
		Name:        strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Category:    strings.TrimSpace(d.Category),
		TargetDate:  d.TargetDate,
		Milestones:  make([]MilestoneDraft, len(d.Milestones)),
	}
	for i, m := range d.Milestones {
		m.Title = strings.TrimSpace(m.Title)
		m.Description = strings.TrimSpace(m.Description)
		clean.Milestones[i] = m
	}
	return ValidatedDraft{draft: clean, ok: true}, ValidationResult{Valid: true, Errors: map[string]string{}}
}

// DraftFromSkill builds an editable draft from an existing skill.
func DraftFromSkill(s Skill) Draft {
	d := Draft{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Milestones:  make([]MilestoneDraft, len(s.Milestones)),
	}
	if s.TargetDate != nil {
		td := *s.TargetDate
		d.TargetDate = &td
	}
	for i, m := range s.Milestones {
		d.Milestones[i] = MilestoneDraft{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Completed:   m.Completed,
		}
	}
	return d
}
