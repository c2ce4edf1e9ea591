package skill

import (
	"fmt"
	"time"
)

// LegacyCheckpoints is the number of milestones a flat-progress record is
// expanded into during migration.
const LegacyCheckpoints = 10

// LegacySkill is the first stored schema, which tracked progress as a single
// 0-100 integer instead of milestones.
type LegacySkill struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Progress    int       `json:"progress"`
	TargetDate  *Date     `json:"targetDate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Status      Status    `json:"status"`
}

// MigrateLegacy converts flat-progress records to the milestone schema. Each
// record gets LegacyCheckpoints milestones ("Reach 10%" .. "Reach 100%") of
// which floor(progress/10) are complete, so a record only becomes completed
// at 100. Status is re-derived rather than copied.
func MigrateLegacy(legacy []LegacySkill) []Skill {
	out := make([]Skill, 0, len(legacy))
	for _, l := range legacy {
		progress := l.Progress
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		done := progress * LegacyCheckpoints / 100

		milestones := make([]Milestone, LegacyCheckpoints)
		for i := range milestones {
			pct := (i + 1) * 100 / LegacyCheckpoints
			m := Milestone{
				ID:    fmt.Sprintf("checkpoint-%d", pct),
				Title: fmt.Sprintf("Reach %d%%", pct),
			}
			if i < done {
				at := l.UpdatedAt
				m.Completed = true
				m.CompletedAt = &at
			}
			milestones[i] = m
		}

		s := Skill{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Category:    l.Category,
			Milestones:  milestones,
			TargetDate:  l.TargetDate,
			CreatedAt:   l.CreatedAt,
			UpdatedAt:   l.UpdatedAt,
		}
		s.Status = DeriveStatus(s.Milestones)
		out = append(out, s)
	}
	return out
}
