package engine

import "github.com/jberndt/longwinter/internal/weather"

// refreshWeatherEffects rebuilds the weather contribution of the
// modifier pipeline from the current condition. Storm penalties are
// softened toward neutral by the weatherResistance modifier. When
// sideEffects is set the hourly stochastic weather consequences roll too.
func (s *Simulation) refreshWeatherEffects(sideEffects bool) {
	eff := weather.BaseEffects(s.Weather.Current)
	if s.Weather.Current == weather.KindStorm {
		if res := s.Modifiers.Modifier("weatherResistance"); res > 0 {
			weather.Dampen(eff, res)
		}
	}
	s.Modifiers.SetWeather(eff)

	if sideEffects {
		s.weatherSideEffects()
	}
	if s.Weather.Current.Extreme() {
		s.Achievements.recordExtremeWeather(s)
	}
}

// weatherSideEffects applies the per-hour chance consequences of the
// active condition: rain fills containers, storms wreck exposed camps,
// heat and cold punish missing supplies.
func (s *Simulation) weatherSideEffects() {
	switch s.Weather.Current {
	case weather.KindRainy:
		if s.rng.Chance(0.3) && s.Resources.Add("water", 1) {
			s.logf("Rain fills your containers.")
		}
	case weather.KindHeavyRain:
		if s.Resources.Add("water", 2) {
			s.logf("The downpour tops up your water stores.")
		}
		if s.rng.Chance(0.05) && s.Resources.Drain("food", 2) > 0 {
			s.logf("Floodwater spoils some of your food.")
		}
	case weather.KindStorm:
		if s.rng.Chance(0.2) {
			if s.buildingLevelOf("shelter") >= 2 {
				s.logf("The storm howls outside, but your shelter holds.")
			} else {
				s.Player.damage(10)
				s.logf("The storm batters your exposed camp.")
			}
		}
	case weather.KindHot:
		if s.Resources.Amount("water") < 2 && s.rng.Chance(0.1) {
			s.Player.damage(3)
			s.logf("The heat is unbearable without water.")
		}
	case weather.KindCold:
		if s.Resources.Amount("fuel") == 0 && s.rng.Chance(0.1) {
			s.Player.damage(3)
			s.logf("The cold seeps in with nothing to burn.")
		}
	case weather.KindWindy:
		if s.rng.Chance(0.1) && s.Resources.Add("wood", 1) {
			s.logf("The wind knocks loose branches within reach.")
		}
	}
}
