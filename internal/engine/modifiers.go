package engine

import (
	"math"
	"sort"

	"github.com/jberndt/longwinter/internal/content"
)

// buildingModifierKeys are the building effect keys that feed the shared
// modifier pipeline. Everything else a building grants (per-day yields,
// hourly recovery, storage and vitals bonuses) is applied structurally by
// the clock and cap code, never through Modifier.
var buildingModifierKeys = map[string]bool{
	"gatheringEfficiency": true,
	"gatheringYield":      true,
	"craftingSpeed":       true,
	"craftingQuality":     true,
	"researchSpeed":       true,
	"weatherResistance":   true,
}

// Modifiers aggregates effect contributions from three sources: unlocked
// skill nodes (cumulative, tracked per node so re-application is
// idempotent), constructed buildings (rebuilt wholesale, last write wins
// per key) and the active weather (rebuilt wholesale each refresh).
type Modifiers struct {
	skill    map[string]float64
	flags    map[string]bool
	granted  map[string]int
	building map[string]float64
	weather  map[string]float64
}

// NewModifiers returns an empty ledger.
func NewModifiers() *Modifiers {
	return &Modifiers{
		skill:    make(map[string]float64),
		flags:    make(map[string]bool),
		granted:  make(map[string]int),
		building: make(map[string]float64),
		weather:  make(map[string]float64),
	}
}

// ApplySkillEffect records a skill node at the given level, adding only
// the delta above the highest level already granted. Calling it again
// with the same or a lower level is a no-op.
func (m *Modifiers) ApplySkillEffect(nodeID string, effects map[string]content.EffectValue, level int) {
	prev := m.granted[nodeID]
	if level <= prev {
		return
	}
	steps := level - prev
	for id, v := range effects {
		if v.IsFlag {
			if v.Flag {
				m.flags[id] = true
			}
			continue
		}
		m.skill[id] = round2(m.skill[id] + v.Number*float64(steps))
	}
	m.granted[nodeID] = level
}

// ResetSkillEffects clamps every accumulated skill value to the ceiling
// the catalog allows for that effect. It repairs saves written before a
// balance change or corrupted by double application.
func (m *Modifiers) ResetSkillEffects(cat *content.Catalogs) {
	for id, v := range m.skill {
		ceil, ok := cat.EffectCeiling(id)
		if !ok {
			delete(m.skill, id)
			continue
		}
		if ceil > 0 && v > ceil {
			m.skill[id] = ceil
		}
		if ceil < 0 && v < ceil {
			m.skill[id] = ceil
		}
	}
}

// RebuildBuildings recomputes the building contribution from scratch.
// Only keys in buildingModifierKeys participate; within the pass the
// last building writing a key wins.
func (m *Modifiers) RebuildBuildings(buildings []Building, cat *content.Catalogs) {
	m.building = make(map[string]float64)
	for _, b := range buildings {
		lvl, ok := cat.BuildingLevel(b.TypeID, b.Level)
		if !ok {
			continue
		}
		for id, v := range lvl.Effects {
			if buildingModifierKeys[id] {
				m.building[id] = v
			}
		}
	}
}

// SetWeather replaces the weather contribution wholesale.
func (m *Modifiers) SetWeather(effects map[string]float64) {
	m.weather = make(map[string]float64, len(effects))
	for id, v := range effects {
		m.weather[id] = v
	}
}

// Modifier returns the combined skill and building value for an effect
// key, zero when nothing contributes.
func (m *Modifiers) Modifier(id string) float64 {
	return round2(m.skill[id] + m.building[id])
}

// SkillModifier returns only the skill-node contribution.
func (m *Modifiers) SkillModifier(id string) float64 { return m.skill[id] }

// Flag reports whether any unlocked node set the boolean effect.
func (m *Modifiers) Flag(id string) bool { return m.flags[id] }

// WeatherMultiplier returns the current weather multiplier for a key,
// defaulting to the neutral 1.0.
func (m *Modifiers) WeatherMultiplier(id string) float64 {
	if v, ok := m.weather[id]; ok {
		return v
	}
	return 1.0
}

// GrantedLevels returns a copy of the per-node unlock record.
func (m *Modifiers) GrantedLevels() map[string]int {
	out := make(map[string]int, len(m.granted))
	for id, lvl := range m.granted {
		out[id] = lvl
	}
	return out
}

// NodeLevel returns the recorded level for a skill node.
func (m *Modifiers) NodeLevel(nodeID string) int { return m.granted[nodeID] }

// RestoreSkillEffects replays saved node levels against the catalog,
// rebuilding the skill contribution from scratch.
func (m *Modifiers) RestoreSkillEffects(granted map[string]int, cat *content.Catalogs) {
	m.skill = make(map[string]float64)
	m.flags = make(map[string]bool)
	m.granted = make(map[string]int)

	ids := make([]string, 0, len(granted))
	for id := range granted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		node, ok := cat.SkillNodeByID(id)
		if !ok {
			continue
		}
		lvl := granted[id]
		if lvl > node.MaxLevel {
			lvl = node.MaxLevel
		}
		m.ApplySkillEffect(id, node.Effects, lvl)
	}
}

// round2 keeps accumulated modifiers at two decimal places so repeated
// float addition cannot drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
