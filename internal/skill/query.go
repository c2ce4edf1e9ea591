package skill

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FilterAll disables a status or category filter.
const FilterAll = "all"

// SortKey selects the ordering applied by FilterAndSort.
type SortKey string

const (
	SortNone     SortKey = ""
	SortName     SortKey = "name"
	SortProgress SortKey = "progress"
	SortCategory SortKey = "category"
	SortStatus   SortKey = "status"
	SortCreated  SortKey = "created"
	SortTarget   SortKey = "target"
)

// SortKeys lists every recognized sort key in display order.
var SortKeys = []SortKey{SortName, SortProgress, SortCategory, SortStatus, SortCreated, SortTarget}

// ParseSortKey parses a sort key name. An empty string keeps stored order.
func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	if key == SortNone {
		return SortNone, nil
	}
	for _, k := range SortKeys {
		if k == key {
			return k, nil
		}
	}
	return "", fmt.Errorf("invalid sort key: %s (must be one of name, progress, category, status, created, target)", s)
}

// Criteria selects and orders a view of the skill collection.
//
// Status and Category are either empty, FilterAll, or an exact value to match.
type Criteria struct {
	Search   string  `json:"search"`
	Status   string  `json:"status"`
	Category string  `json:"category"`
	Sort     SortKey `json:"sort"`
}

// DefaultCriteria matches every skill and sorts by name.
func DefaultCriteria() Criteria {
	return Criteria{Status: FilterAll, Category: FilterAll, Sort: SortName}
}

// Validate rejects unknown status filters and sort keys.
func (c Criteria) Validate() error {
	if c.Status != "" && c.Status != FilterAll {
		if _, err := ParseStatus(c.Status); err != nil {
			return err
		}
	}
	if _, err := ParseSortKey(string(c.Sort)); err != nil {
		return err
	}
	return nil
}

// Matches reports whether s passes the search, status and category filters.
func (c Criteria) Matches(s Skill) bool {
	if term := strings.ToLower(c.Search); term != "" {
		if !strings.Contains(strings.ToLower(s.Name), term) &&
			!strings.Contains(strings.ToLower(s.Description), term) {
			return false
		}
	}
	if c.Status != "" && c.Status != FilterAll && string(s.Status) != c.Status {
		return false
	}
	if c.Category != "" && c.Category != FilterAll && s.Category != c.Category {
		return false
	}
	return true
}

// FilterAndSort returns the skills matching c in the order c selects. The
// input slice is left untouched and equal keys keep their relative order.
func FilterAndSort(skills []Skill, c Criteria) []Skill {
	out := make([]Skill, 0, len(skills))
	for _, s := range skills {
		if c.Matches(s) {
			out = append(out, s)
		}
	}

	less := lessFunc(c.Sort)
	if less != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return less(out[i], out[j])
		})
	}
	return out
}

// lessFunc returns the ordering for key, or nil to keep stored order. Name and
// category compare with the root collation, so case does not split the order.
func lessFunc(key SortKey) func(a, b Skill) bool {
	switch key {
	case SortName:
		col := collate.New(language.Und)
		return func(a, b Skill) bool { return col.CompareString(a.Name, b.Name) < 0 }
	case SortProgress:
		return func(a, b Skill) bool { return Progress(a) > Progress(b) }
	case SortCategory:
		col := collate.New(language.Und)
		return func(a, b Skill) bool { return col.CompareString(a.Category, b.Category) < 0 }
	case SortStatus:
		return func(a, b Skill) bool { return a.Status < b.Status }
	case SortCreated:
		return func(a, b Skill) bool { return a.CreatedAt.After(b.CreatedAt) }
	case SortTarget:
		// Skills without a target date go last.
		return func(a, b Skill) bool {
			switch {
			case a.TargetDate == nil:
				return false
			case b.TargetDate == nil:
				return true
			default:
				return a.TargetDate.Before(b.TargetDate.Time)
			}
		}
	}
	return nil
}

// Stats summarizes a skill collection for the dashboard.
type Stats struct {
	Total           int `json:"total" yaml:"total"`
	Completed       int `json:"completed" yaml:"completed"`
	InProgress      int `json:"inProgress" yaml:"inProgress"`
	NotStarted      int `json:"notStarted" yaml:"notStarted"`
	AverageProgress int `json:"averageProgress" yaml:"averageProgress"`
}

// ComputeStats counts skills by status and averages their progress. The
// average is rounded to the nearest integer and is zero for no skills.
func ComputeStats(skills []Skill) Stats {
	st := Stats{Total: len(skills)}
	if len(skills) == 0 {
		return st
	}
	sum := 0
	for _, s := range skills {
		switch s.Status {
		case Completed:
			st.Completed++
		case InProgress:
			st.InProgress++
		default:
			st.NotStarted++
		}
		sum += Progress(s)
	}
	st.AverageProgress = int(math.Round(float64(sum) / float64(len(skills))))
	return st
}
