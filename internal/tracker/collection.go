package tracker

import (
	"bytes"
	"encoding/json"

	"github.com/andywolf/skilltrack/internal/skill"
)

// SchemaVersion is the version written with every stored skill collection.
const SchemaVersion = 2

// collection is the stored form of the skill list.
//
// The current form is {"version":2,"skills":[...]}. A bare JSON array is the
// older form; each of its records is either a milestone-based skill or a
// flat-progress record, and the latter are migrated on decode.
type collection struct {
	Version int           `json:"version"`
	Skills  []skill.Skill `json:"skills"`

	migrated bool
}

func newCollection(skills []skill.Skill) collection {
	if skills == nil {
		skills = []skill.Skill{}
	}
	return collection{Version: SchemaVersion, Skills: skills}
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *collection) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return c.decodeArray(trimmed)
	}

	var envelope struct {
		Version int           `json:"version"`
		Skills  []skill.Skill `json:"skills"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}
	*c = newCollection(envelope.Skills)
	c.migrated = c.rederiveStatus()
	return nil
}

// rederiveStatus recomputes every status from its milestones and reports
// whether any stored status was stale.
func (c *collection) rederiveStatus() bool {
	changed := false
	for i := range c.Skills {
		status := skill.DeriveStatus(c.Skills[i].Milestones)
		if c.Skills[i].Status != status {
			c.Skills[i].Status = status
			changed = true
		}
	}
	return changed
}

func (c *collection) decodeArray(data []byte) error {
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	skills := make([]skill.Skill, 0, len(records))
	for _, raw := range records {
		var probe struct {
			Milestones json.RawMessage `json:"milestones"`
		}
		if err := json.Unmarshal(raw, &probe); err != nil {
			return err
		}

		if probe.Milestones != nil {
			var s skill.Skill
			if err := json.Unmarshal(raw, &s); err != nil {
				return err
			}
			skills = append(skills, s)
			continue
		}

		var legacy skill.LegacySkill
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return err
		}
		skills = append(skills, skill.MigrateLegacy([]skill.LegacySkill{legacy})...)
	}

	*c = newCollection(skills)
	c.rederiveStatus()
	c.migrated = true
	return nil
}
