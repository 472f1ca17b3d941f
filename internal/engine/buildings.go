package engine

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jberndt/longwinter/internal/weather"
)

var (
	ErrUnknownBuilding = errors.New("unknown building")
	ErrMaxLevel        = errors.New("building already at max level")
)

// Building is a constructed structure. Effects are a frozen snapshot of
// the catalog level taken at construction time; a catalog change only
// reaches existing buildings through an explicit effect rebuild.
type Building struct {
	ID      string             `json:"id"`
	TypeID  string             `json:"type_id"`
	Name    string             `json:"name"`
	Level   int                `json:"level"`
	Effects map[string]float64 `json:"effects"`
	Day     int                `json:"built_on_day"`
}

// buildingLevelOf returns the constructed level of a building type, zero
// when none stands.
func (s *Simulation) buildingLevelOf(typeID string) int {
	for _, b := range s.Buildings {
		if b.TypeID == typeID {
			return b.Level
		}
	}
	return 0
}

// BuildNewBuilding constructs a building type, or upgrades it to the
// next tier if it already stands. Costs are charged transactionally and
// the modifier and cap pipelines are rebuilt from scratch afterwards.
func (s *Simulation) BuildNewBuilding(typeID string) (*Building, error) {
	if s.State != StatePlaying {
		return nil, ErrGameOver
	}
	def, ok := s.Content.BuildingByID(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBuilding, typeID)
	}
	nextLevel := s.buildingLevelOf(typeID) + 1
	lvl, ok := def.LevelConfig(nextLevel)
	if !ok {
		s.logf("%s cannot be improved further.", def.Name)
		return nil, fmt.Errorf("%w: %s level %d", ErrMaxLevel, typeID, nextLevel)
	}
	for skill, need := range lvl.Requirements {
		if s.Skills[skill] < need {
			s.logf("Your %s skill is too low to build %s.", skill, def.Name)
			return nil, fmt.Errorf("%w: %s needs %s %d", ErrSkillTooLow, typeID, skill, need)
		}
	}
	if !s.Resources.ConsumeAll(lvl.Cost) {
		s.logf("Not enough materials for %s.", def.Name)
		return nil, ErrMissingInputs
	}

	effects := make(map[string]float64, len(lvl.Effects))
	for k, v := range lvl.Effects {
		effects[k] = v
	}

	var built *Building
	if nextLevel > 1 {
		for i := range s.Buildings {
			if s.Buildings[i].TypeID == typeID {
				s.Buildings[i].Level = nextLevel
				s.Buildings[i].Effects = effects
				built = &s.Buildings[i]
				break
			}
		}
		s.logf("%s improved to level %d.", def.Name, nextLevel)
	} else {
		s.Buildings = append(s.Buildings, Building{
			ID:      uuid.NewString(),
			TypeID:  typeID,
			Name:    def.Name,
			Level:   1,
			Effects: effects,
			Day:     s.Clock.Day,
		})
		built = &s.Buildings[len(s.Buildings)-1]
		s.logf("%s built.", def.Name)
		s.Achievements.recordFirstBuilding(s)
	}

	s.RebuildBuildingEffects()
	return built, nil
}

// RebuildBuildingEffects recomputes everything buildings contribute:
// the modifier pipeline, vitals bonuses, and storage caps. It is a full
// recompute from the building list, safe to call any number of times.
func (s *Simulation) RebuildBuildingEffects() {
	s.Modifiers.RebuildBuildings(s.Buildings, s.Content)

	base := newPlayer()
	bonusHealth, bonusEnergy := 0.0, 0.0
	for _, b := range s.Buildings {
		bonusHealth += b.Effects["maxHealth"]
		bonusEnergy += b.Effects["maxEnergy"]
	}
	// Level and milestone bonuses stack on top of the catalog baseline.
	levelBonus := float64(s.Player.Level-1) * 5
	milestoneHealth := float64(s.Skills["combat"]/5) * 10
	milestoneEnergy := float64(s.Skills["gathering"]/5) * 5
	skillHealth, skillMental := s.skillVitalsBonus()

	s.Player.MaxHealth = base.MaxHealth + levelBonus + milestoneHealth + bonusHealth + skillHealth + s.Player.BonusMaxHealth
	s.Player.MaxEnergy = base.MaxEnergy + levelBonus + milestoneEnergy + bonusEnergy + s.Player.BonusMaxEnergy
	s.Player.MaxMental = base.MaxMental + skillMental
	s.Player.Health = math.Min(s.Player.Health, s.Player.MaxHealth)
	s.Player.Energy = math.Min(s.Player.Energy, s.Player.MaxEnergy)
	s.Player.Mental = math.Min(s.Player.Mental, s.Player.MaxMental)

	s.recomputeCaps()
}

// applyBuildingHourly grants the per-hour recovery buildings provide,
// scaled by the season.
func (s *Simulation) applyBuildingHourly() {
	season := weather.BuildingSeason(s.SeasonIndex)
	for _, b := range s.Buildings {
		if v := b.Effects["energyRecovery"]; v > 0 {
			s.Player.restoreEnergy(v * season.Energy)
		}
		if v := b.Effects["healthRecovery"]; v > 0 {
			s.Player.heal(v * season.Health)
		}
	}
}

// applyBuildingDaily grants the per-day resource yields, scaled by the
// season and the weather. Water collection follows its own weather
// curve: storms fill collectors that drought empties.
func (s *Simulation) applyBuildingDaily() {
	season := weather.BuildingSeason(s.SeasonIndex)
	wmult := weather.BuildingWeather(s.Weather.Current)

	for _, b := range s.Buildings {
		for _, key := range sortedEffectKeys(b.Effects) {
			res, ok := strings.CutSuffix(key, "PerDay")
			if !ok {
				continue
			}
			rate := b.Effects[key]
			if rate <= 0 {
				continue
			}
			switch res {
			case "water":
				rate *= wmult.WaterCollection
			case "food":
				rate *= s.SeasonEffects.FoodGrowthRate * season.Production * wmult.Production
			case "herb":
				rate *= s.SeasonEffects.HerbGrowthRate * season.Production * wmult.Production
			default:
				rate *= season.Production * wmult.Production
			}
			amount := int(math.Ceil(rate))
			if amount <= 0 {
				continue
			}
			if s.Resources.Add(res, amount) {
				s.logf("%s provided %d %s.", b.Name, amount, s.Content.ResourceName(res))
			}
		}
	}
}

func sortedEffectKeys(effects map[string]float64) []string {
	keys := make([]string, 0, len(effects))
	for k := range effects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
