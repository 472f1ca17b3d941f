package weather

// Season indices.
const (
	SeasonSpring = 0
	SeasonSummer = 1
	SeasonAutumn = 2
	SeasonWinter = 3
)

// SeasonName returns a human-readable season name.
func SeasonName(index int) string {
	switch index {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonAutumn:
		return "Autumn"
	case SeasonWinter:
		return "Winter"
	}
	return "Unknown"
}

// SeasonEffects are the season's growth and consumption multipliers.
type SeasonEffects struct {
	FoodGrowthRate    float64 `json:"food_growth_rate"`
	HerbGrowthRate    float64 `json:"herb_growth_rate"`
	EnergyConsumption float64 `json:"energy_consumption"`
	WaterConsumption  float64 `json:"water_consumption"`
}

var seasonEffects = [4]SeasonEffects{
	{FoodGrowthRate: 1.2, HerbGrowthRate: 1.3, EnergyConsumption: 0.9, WaterConsumption: 1.0},  // spring
	{FoodGrowthRate: 1.0, HerbGrowthRate: 0.8, EnergyConsumption: 1.2, WaterConsumption: 1.3},  // summer
	{FoodGrowthRate: 1.4, HerbGrowthRate: 0.7, EnergyConsumption: 1.0, WaterConsumption: 0.9},  // autumn
	{FoodGrowthRate: 0.6, HerbGrowthRate: 0.4, EnergyConsumption: 1.3, WaterConsumption: 0.8},  // winter
}

// EffectsForSeason returns the rotating effect table entry for a season.
func EffectsForSeason(index int) SeasonEffects {
	if index < 0 || index > 3 {
		return SeasonEffects{1, 1, 1, 1}
	}
	return seasonEffects[index]
}

// SeasonBuilding scales building recovery and production by season.
type SeasonBuilding struct {
	Energy     float64
	Health     float64
	Production float64
}

var seasonBuilding = [4]SeasonBuilding{
	{Energy: 1.1, Health: 1.1, Production: 1.2}, // spring: temperate
	{Energy: 0.9, Health: 1.0, Production: 1.3}, // summer: draining but productive
	{Energy: 1.0, Health: 1.0, Production: 1.4}, // autumn: peak production
	{Energy: 0.8, Health: 0.9, Production: 0.7}, // winter: everything slows
}

// BuildingSeason returns the building multipliers for a season.
func BuildingSeason(index int) SeasonBuilding {
	if index < 0 || index > 3 {
		return SeasonBuilding{1, 1, 1}
	}
	return seasonBuilding[index]
}
