package weather

// Multiplier keys shared with the engine's modifier ledger. Weather
// multipliers are neutral at 1.0 and replaced wholesale on each change.
const (
	EffGathering   = "gatheringEfficiency"
	EffEnergy      = "energyConsumption"
	EffWater       = "waterConsumption"
	EffFood        = "foodConsumption"
	EffExploration = "explorationEfficiency"
)

// NeutralEffects returns the all-1.0 multiplier map a change starts from.
func NeutralEffects() map[string]float64 {
	return map[string]float64{
		EffGathering:   1.0,
		EffEnergy:      1.0,
		EffWater:       1.0,
		EffFood:        1.0,
		EffExploration: 1.0,
	}
}

// BaseEffects returns the multiplier map a condition imposes.
func BaseEffects(k Kind) map[string]float64 {
	eff := NeutralEffects()
	switch k {
	case KindClear:
		eff[EffGathering] = 1.1
	case KindCloudy:
		eff[EffEnergy] = 0.95
	case KindHeavyRain:
		eff[EffGathering] = 0.7
	case KindFoggy:
		eff[EffExploration] = 0.8
	case KindWindy:
		eff[EffEnergy] = 1.1
	case KindHot:
		eff[EffWater] = 1.3
	case KindCold:
		eff[EffFood] = 1.3
	case KindSnow:
		eff[EffGathering] = 0.8
		eff[EffFood] = 1.2
	case KindStorm:
		eff[EffGathering] = 0.7
		eff[EffEnergy] = 1.2
		eff[EffWater] = 1.1
		eff[EffFood] = 1.1
		eff[EffExploration] = 0.5
	}
	return eff
}

// Dampen moves every non-neutral multiplier proportionally toward 1.0
// by the resistance fraction, without overshooting. With resistance 0.5
// a 0.7 multiplier becomes 0.85 and a 1.3 becomes 1.15.
func Dampen(effects map[string]float64, resistance float64) {
	if resistance <= 0 {
		return
	}
	if resistance > 1 {
		resistance = 1
	}
	for key, v := range effects {
		if v < 1.0 {
			effects[key] = v + (1.0-v)*resistance
		} else if v > 1.0 {
			effects[key] = v - (v-1.0)*resistance
		}
	}
}

// BuildingMultipliers scales building output by weather.
type BuildingMultipliers struct {
	Production      float64
	WaterCollection float64
	Protection      float64
}

// BuildingWeather returns the building-output multipliers for a condition.
func BuildingWeather(k Kind) BuildingMultipliers {
	switch k {
	case KindClear:
		return BuildingMultipliers{1.2, 0.8, 1.0}
	case KindCloudy:
		return BuildingMultipliers{1.0, 1.0, 1.0}
	case KindRainy:
		return BuildingMultipliers{0.9, 1.5, 0.9}
	case KindFoggy:
		return BuildingMultipliers{0.8, 1.0, 0.8}
	case KindWindy:
		return BuildingMultipliers{0.9, 1.2, 0.7}
	case KindHot:
		return BuildingMultipliers{0.8, 0.5, 0.8}
	case KindCold:
		return BuildingMultipliers{0.7, 0.7, 0.7}
	case KindSnow:
		return BuildingMultipliers{0.6, 0.6, 0.6}
	case KindStorm:
		return BuildingMultipliers{0.5, 1.8, 0.5}
	case KindHeavyRain:
		return BuildingMultipliers{0.7, 2.0, 0.7}
	}
	return BuildingMultipliers{1.0, 1.0, 1.0}
}
