package engine

import (
	"fmt"
	"math"

	"github.com/jberndt/longwinter/internal/weather"
)

// GameTime is the in-game calendar position. Days start at 1; hours and
// minutes are zero-based.
type GameTime struct {
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the event-log timestamp, e.g. "Day 3 06:05".
func (t GameTime) String() string {
	return fmt.Sprintf("Day %d %02d:%02d", t.Day, t.Hour, t.Minute)
}

// AbsMinute is the monotonic minute counter activities schedule against.
func (s *Simulation) AbsMinute() int64 { return s.absMinute }

// AdvanceTime moves the simulation forward one minute at a time so
// activity completions, hourly updates and daily updates interleave in
// strict chronological order. A finished run ignores the call.
func (s *Simulation) AdvanceTime(minutes int) {
	if s.State != StatePlaying {
		return
	}
	for i := 0; i < minutes; i++ {
		s.absMinute++
		s.Clock.Minute++
		s.completeDue()
		if s.Clock.Minute >= 60 {
			s.Clock.Minute -= 60
			s.Clock.Hour++
			if s.Clock.Hour >= 24 {
				s.Clock.Hour -= 24
				s.Clock.Day++
				s.Player.Days++
				s.hourlyUpdate()
				if s.State != StatePlaying {
					return
				}
				s.dailyUpdate()
			} else {
				s.hourlyUpdate()
			}
		}
		if s.State != StatePlaying {
			return
		}
	}
}

// hourlyUpdate applies the survival upkeep cycle: weather, consumption,
// building recovery, rest, skill recovery, starvation, and the terminal
// check, in that order.
func (s *Simulation) hourlyUpdate() {
	s.refreshWeatherEffects(true)
	s.consumeSupplies()
	s.applyBuildingHourly()
	s.applyRest()
	s.applySkillRecovery()
	s.applyStarvation()
	if s.Player.Health <= 0 {
		s.gameOver("Exhaustion and hunger won in the end.")
	}
}

// consumeSupplies drains the hourly water and food upkeep. Consumption
// scales with weather and season and shrinks with survival skills, but
// never drops below one of each.
func (s *Simulation) consumeSupplies() {
	waterRate := 1.0 * s.Modifiers.WeatherMultiplier(weather.EffWater) * s.SeasonEffects.WaterConsumption
	foodRate := 1.0 * s.Modifiers.WeatherMultiplier(weather.EffFood)
	if d := s.Modifiers.Modifier("waterConsumption"); d < 0 {
		waterRate *= 1 + d
	}
	if d := s.Modifiers.Modifier("foodConsumption"); d < 0 {
		foodRate *= 1 + d
	}
	water := int(math.Max(1, math.Ceil(waterRate)))
	food := int(math.Max(1, math.Ceil(foodRate)))

	s.Resources.Drain("water", water)
	s.Resources.Drain("food", food)
}

// applyRest restores baseline energy: a full night's rate between 22:00
// and 06:00, a trickle during the day, reduced under extreme heat or cold.
func (s *Simulation) applyRest() {
	recovery := 1.0
	if s.Clock.Hour >= 22 || s.Clock.Hour <= 6 {
		recovery = 5.0
	}
	if s.Weather.Current == weather.KindHot || s.Weather.Current == weather.KindCold {
		recovery *= 0.8
	}
	if s.SeasonEffects.EnergyConsumption > 0 {
		recovery /= s.SeasonEffects.EnergyConsumption
	}
	s.Player.restoreEnergy(recovery)
}

// applySkillRecovery converts recovery modifiers from the skill tree into
// fractional health and mental regeneration.
func (s *Simulation) applySkillRecovery() {
	if r := s.Modifiers.SkillModifier("healthRecovery"); r > 0 {
		s.Player.heal(math.Floor(s.Player.MaxHealth * 0.01 * r))
	}
	if r := s.Modifiers.SkillModifier("mentalRecovery"); r > 0 {
		s.Player.restoreMental(math.Floor(s.Player.MaxMental * 0.01 * r))
	}
}

// applyStarvation damages the player while food or water sits at zero.
// Extreme weather makes exposure worse.
func (s *Simulation) applyStarvation() {
	if s.Resources.Amount("food") > 0 && s.Resources.Amount("water") > 0 {
		return
	}
	penalty := 5.0
	if s.Weather.Current.Extreme() {
		penalty = 8.0
	}
	s.Player.damage(penalty)
	s.logf("Hunger and thirst gnaw at you.")
}

// dailyUpdate runs at each midnight rollover: random events, seasonal
// drift, building yields, the weather schedule, and streak bookkeeping.
func (s *Simulation) dailyUpdate() {
	s.logf("Day %d begins.", s.Clock.Day)

	if s.rng.Chance(s.Tuning.DailyEventChance) {
		s.triggerRandomEvent()
		if s.State != StatePlaying {
			return
		}
	}
	s.applySeasonalEffects()
	s.applyBuildingDaily()

	if s.Weather.Due(s.Clock.Day, s.Clock.Hour) {
		s.Weather = s.gen.Generate(s.Clock.Day, s.Clock.Hour, s.rng)
		s.refreshWeatherEffects(false)
		s.logf("The weather shifts. %s", weather.Describe(s.Weather.Current))
	}

	if s.Player.Health >= s.Player.MaxHealth*0.9 {
		s.Achievements.recordHealthyDay(s)
	} else {
		s.Achievements.HealthyDays = 0
	}
	s.Achievements.recordDay(s)
	if s.Player.Health <= 0 {
		s.gameOver("The night took its toll.")
		return
	}

	s.log.Info("day complete",
		"day", s.Clock.Day,
		"season", weather.SeasonName(s.SeasonIndex),
		"weather", s.Weather.Current,
		"health", math.Round(s.Player.Health),
		"energy", math.Round(s.Player.Energy))

	if s.OnAutosave != nil {
		s.OnAutosave()
	}
}
