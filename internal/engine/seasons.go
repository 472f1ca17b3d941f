package engine

import "github.com/jberndt/longwinter/internal/weather"

// applySeasonalEffects resolves the calendar's season for the current
// day, refreshes the cached multipliers, rolls the season's daily
// swings, and announces transitions. A season change has a chance of a
// small windfall fitting the new season.
func (s *Simulation) applySeasonalEffects() {
	idx := s.gen.SeasonIndex(s.Clock.Day)
	s.SeasonEffects = weather.EffectsForSeason(idx)
	s.applySeasonDaily(idx)
	if idx == s.SeasonIndex {
		return
	}
	prev := s.SeasonIndex
	s.SeasonIndex = idx
	s.logf("%s gives way to %s.", weather.SeasonName(prev), weather.SeasonName(idx))
	s.log.Info("season change", "from", weather.SeasonName(prev), "to", weather.SeasonName(idx), "day", s.Clock.Day)

	if idx == 0 {
		// Back to spring means a full year survived.
		s.Achievements.recordYearSurvived(s)
	}
	if !s.rng.Chance(0.4) {
		return
	}
	switch idx {
	case 0:
		s.grantOutput("herb", s.rng.Between(3, 7))
		s.logf("Fresh growth everywhere. You pick what you can.")
	case 1:
		s.grantOutput("water", s.rng.Between(3, 7))
		s.logf("Summer springs run clear and full.")
	case 2:
		s.grantOutput("food", s.rng.Between(5, 12))
		s.logf("The autumn woods are heavy with forage.")
	case 3:
		s.grantOutput("fuel", s.rng.Between(2, 4))
		s.logf("You scavenge deadfall before the snow buries it.")
	}
}

// applySeasonDaily rolls the season's day-to-day swings: growth
// windfalls in the warm seasons, extra consumption and attrition in
// the harsh ones. Chances scale with the season's effect multipliers.
func (s *Simulation) applySeasonDaily(idx int) {
	eff := s.SeasonEffects
	switch idx {
	case weather.SeasonSpring:
		if s.rng.Chance(0.3 * eff.FoodGrowthRate) {
			s.logf("Spring growth leaves food ripe for the taking.")
			s.grantOutput("food", s.rng.Between(1, 3))
		}
		if s.rng.Chance(0.4 * eff.HerbGrowthRate) {
			s.logf("Herbs sprout along every path.")
			s.grantOutput("herb", s.rng.Between(1, 2))
		}
	case weather.SeasonSummer:
		if s.rng.Chance(0.3 * eff.WaterConsumption) {
			s.Resources.Drain("water", 1)
			s.logf("The summer heat costs you extra water.")
		}
		if s.rng.Chance(0.15) {
			finds := []string{"fuel", "metal", "stone"}
			s.logf("The heat bakes something loose from the hillside.")
			s.grantOutput(finds[s.rng.Pick(len(finds))], s.rng.Between(1, 2))
		}
	case weather.SeasonAutumn:
		if s.rng.Chance(0.3 * eff.FoodGrowthRate) {
			s.logf("Harvest season fills your stores.")
			s.grantOutput("food", s.rng.Between(2, 5))
		}
		if s.rng.Chance(0.2) {
			s.logf("Fallen branches litter the ground.")
			s.grantOutput("wood", s.rng.Between(2, 4))
		}
	case weather.SeasonWinter:
		if s.rng.Chance(0.3 * eff.EnergyConsumption) {
			s.Resources.Drain("food", 1)
			s.logf("The cold demands extra food.")
		}
		if s.rng.Chance(0.2) && s.Player.Health > 10 {
			s.Player.damage(2)
			s.logf("The long winter weighs on you.")
		}
	}
}
