// Package content loads the static configuration catalogs the simulation
// consumes as read-only data: resources, recipes, technologies, buildings,
// the skill tree, and the random-event table. Catalogs are JSON documents
// validated against a schema once at load time; nothing here mutates.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Category classifies a recipe and decides which scheduler slot pool
// and which skill modifiers apply to it.
type Category string

const (
	CategoryGathering   Category = "gathering"
	CategoryCrafting    Category = "crafting"
	CategoryResearch    Category = "research"
	CategoryExploration Category = "exploration"
)

// EnergyResource is the pseudo-resource key recipes use for player energy.
// It is charged against player vitals, not the resource ledger.
const EnergyResource = "energy"

// Output is a recipe output amount: either fixed (Min == Max) or a
// uniform integer range [Min, Max]. JSON accepts `7` or `[5, 15]`.
type Output struct {
	Min int
	Max int
}

// Fixed reports whether the output is a single fixed amount.
func (o Output) Fixed() bool { return o.Min == o.Max }

func (o *Output) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var pair [2]int
		if err := json.Unmarshal(b, &pair); err != nil {
			return fmt.Errorf("output range: %w", err)
		}
		if pair[1] < pair[0] {
			return fmt.Errorf("output range [%d, %d]: max below min", pair[0], pair[1])
		}
		o.Min, o.Max = pair[0], pair[1]
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("output amount: %w", err)
	}
	o.Min, o.Max = n, n
	return nil
}

func (o Output) MarshalJSON() ([]byte, error) {
	if o.Fixed() {
		return json.Marshal(o.Min)
	}
	return json.Marshal([2]int{o.Min, o.Max})
}

// EffectValue is either a numeric effect magnitude or an unlock flag.
// JSON accepts a number or a boolean.
type EffectValue struct {
	Number float64
	Flag   bool
	IsFlag bool
}

func (v *EffectValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("true")) || bytes.Equal(b, []byte("false")) {
		v.IsFlag = true
		v.Flag = bytes.Equal(b, []byte("true"))
		return nil
	}
	v.IsFlag = false
	return json.Unmarshal(b, &v.Number)
}

func (v EffectValue) MarshalJSON() ([]byte, error) {
	if v.IsFlag {
		return json.Marshal(v.Flag)
	}
	return json.Marshal(v.Number)
}

// ResourceDef declares a resource the ledger tracks, its starting
// quantity, and its base storage cap.
type ResourceDef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Initial int    `json:"initial"`
	Cap     int    `json:"cap"`
}

// Recipe is the static definition of an activity: what it costs, how
// long it takes, what it yields, and what gates it.
type Recipe struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Inputs        map[string]int    `json:"inputs"`
	Outputs       map[string]Output `json:"outputs"`
	DurationSec   int               `json:"duration_sec"`
	SkillRequired map[string]int    `json:"skill_required"`
	TechRequired  string            `json:"tech_required,omitempty"`
	Category      Category          `json:"category"`
}

// Technology is a node in the research tree.
type Technology struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Researched   bool           `json:"researched,omitempty"` // true = unlocked from the start
	Cost         map[string]int `json:"cost"`
	Unlocks      []string       `json:"unlocks,omitempty"`
	Requirements []string       `json:"requirements,omitempty"`
}

// BuildingLevel is one buildable tier of a building. Effects are frozen
// into the constructed building as a snapshot.
type BuildingLevel struct {
	Level        int                `json:"level"`
	Cost         map[string]int     `json:"cost"`
	Requirements map[string]int     `json:"requirements,omitempty"` // skill → level
	Effects      map[string]float64 `json:"effects"`
}

// BuildingDef is the catalog entry for a building and all its tiers.
type BuildingDef struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Levels []BuildingLevel `json:"levels"`
}

// LevelConfig returns the tier config for a level, if defined.
func (b BuildingDef) LevelConfig(level int) (BuildingLevel, bool) {
	for _, l := range b.Levels {
		if l.Level == level {
			return l, true
		}
	}
	return BuildingLevel{}, false
}

// SkillNode is one unlockable node in a skill branch. Effects scale
// per unlocked node level up to MaxLevel.
type SkillNode struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	MaxLevel int                    `json:"max_level"`
	Effects  map[string]EffectValue `json:"effects"`
	Cost     map[string]int         `json:"cost,omitempty"`
	Requires *NodeRequirement       `json:"requires,omitempty"`
}

// NodeRequirement gates a skill node behind a branch level and/or
// other nodes at minimum levels.
type NodeRequirement struct {
	SkillLevel int            `json:"skill_level,omitempty"`
	Nodes      map[string]int `json:"nodes,omitempty"`
}

// SkillBranch groups the nodes of one trainable skill.
type SkillBranch struct {
	Name   string      `json:"name"`
	Skills []SkillNode `json:"skills"`
}

// Outcome is the state delta an event (or event branch) applies.
type Outcome struct {
	Log      string         `json:"log,omitempty"`
	Grants   map[string]int `json:"grants,omitempty"`
	Costs    map[string]int `json:"costs,omitempty"`
	Health   int            `json:"health,omitempty"`
	Energy   int            `json:"energy,omitempty"`
	SkillExp map[string]int `json:"skill_exp,omitempty"`
}

// SkillCheck branches an event on a skill level threshold.
type SkillCheck struct {
	Skill   string  `json:"skill"`
	Level   int     `json:"level"`
	Success Outcome `json:"success"`
	Failure Outcome `json:"failure"`
}

// ItemCheck branches an event on resource availability, consuming the
// resource when present.
type ItemCheck struct {
	Resource string  `json:"resource"`
	Amount   int     `json:"amount"`
	Has      Outcome `json:"has"`
	Lacks    Outcome `json:"lacks"`
}

// ShelterCheck branches an event on whether a protective building stands.
type ShelterCheck struct {
	Building  string  `json:"building"`
	MinLevel  int     `json:"min_level"`
	Protected Outcome `json:"protected"`
	Exposed   Outcome `json:"exposed"`
}

// EventDef is a weighted random event. Exactly one of Outcome, Skill,
// Item, or Shelter carries its effect.
type EventDef struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Weight  float64       `json:"weight"`
	MinDay  int           `json:"min_day,omitempty"`
	Outcome *Outcome      `json:"outcome,omitempty"`
	Skill   *SkillCheck   `json:"skill_check,omitempty"`
	Item    *ItemCheck    `json:"item_check,omitempty"`
	Shelter *ShelterCheck `json:"shelter_check,omitempty"`
}
