// Package weather provides the stochastic weather and season machinery:
// per-season weather probability tables blended with a smooth simplex
// temperature front, plus the environmental multiplier tables the engine
// folds into its modifier ledger.
package weather

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/jberndt/longwinter/internal/entropy"
)

// Kind identifies a weather condition.
type Kind string

const (
	KindClear     Kind = "clear"
	KindCloudy    Kind = "cloudy"
	KindRainy     Kind = "rainy"
	KindHeavyRain Kind = "heavy_rain"
	KindFoggy     Kind = "foggy"
	KindWindy     Kind = "windy"
	KindHot       Kind = "hot"
	KindCold      Kind = "cold"
	KindSnow      Kind = "snow"
	KindStorm     Kind = "storm"
)

// Extreme reports whether a condition counts as extreme exposure:
// these worsen starvation penalties and reduce energy recovery.
func (k Kind) Extreme() bool {
	return k == KindHot || k == KindCold || k == KindStorm
}

// State is the current weather condition and its change schedule.
type State struct {
	Current        Kind `json:"current"`
	DurationHours  int  `json:"duration_hours"`
	NextChangeDay  int  `json:"next_change_day"`
	NextChangeHour int  `json:"next_change_hour"`
}

// Due reports whether the scheduled change time has been reached.
func (s State) Due(day, hour int) bool {
	if day > s.NextChangeDay {
		return true
	}
	return day == s.NextChangeDay && hour >= s.NextChangeHour
}

// probability tables per season; weights sum to 1 per row.
var seasonWeather = [4][]weightedKind{
	{ // spring
		{KindClear, 0.3}, {KindCloudy, 0.3}, {KindRainy, 0.25}, {KindFoggy, 0.1}, {KindWindy, 0.05},
	},
	{ // summer
		{KindClear, 0.4}, {KindCloudy, 0.2}, {KindRainy, 0.15}, {KindHot, 0.15}, {KindStorm, 0.1},
	},
	{ // autumn
		{KindClear, 0.25}, {KindCloudy, 0.3}, {KindRainy, 0.2}, {KindFoggy, 0.15}, {KindWindy, 0.1},
	},
	{ // winter
		{KindClear, 0.2}, {KindCloudy, 0.2}, {KindCold, 0.3}, {KindSnow, 0.2}, {KindWindy, 0.1},
	},
}

type weightedKind struct {
	kind   Kind
	weight float64
}

// warmth biases a condition's weight toward warm (+) or cold (-)
// phases of the temperature front.
var warmth = map[Kind]float64{
	KindClear:     0.4,
	KindCloudy:    0,
	KindRainy:     -0.2,
	KindHeavyRain: -0.2,
	KindFoggy:     0,
	KindWindy:     0,
	KindHot:       1,
	KindCold:      -1,
	KindSnow:      -0.8,
	KindStorm:     -0.4,
}

// Generator produces weather states. The simplex noise layer makes
// consecutive changes front-like instead of independent coin flips.
type Generator struct {
	noise        opensimplex.Noise
	seasonLength int
}

// NewGenerator creates a Generator. seasonLengthDays gates the season
// index derived from the day counter.
func NewGenerator(seed int64, seasonLengthDays int) *Generator {
	if seasonLengthDays < 1 {
		seasonLengthDays = 1
	}
	return &Generator{
		noise:        opensimplex.NewNormalized(seed),
		seasonLength: seasonLengthDays,
	}
}

// SeasonLength returns the configured days per season.
func (g *Generator) SeasonLength() int { return g.seasonLength }

// SeasonIndex derives the season (0=spring .. 3=winter) from a day count.
func (g *Generator) SeasonIndex(day int) int {
	if day < 1 {
		day = 1
	}
	return ((day - 1) % (g.seasonLength * 4)) / g.seasonLength
}

// front samples the smooth temperature front in [0,1] for a game hour.
// Period is roughly four days so fronts linger across several changes.
func (g *Generator) front(day, hour int) float64 {
	t := float64((day-1)*24+hour) / 96.0
	return g.noise.Eval2(t, 0.5)
}

// Generate picks the next weather condition for the given moment and
// schedules its change window (4-8 hours out).
func (g *Generator) Generate(day, hour int, rng *entropy.Source) State {
	season := g.SeasonIndex(day)
	table := seasonWeather[season]
	front := g.front(day, hour)

	// Blend table weights with the temperature front.
	weights := make([]float64, len(table))
	total := 0.0
	for i, wk := range table {
		w := wk.weight * (1 + warmth[wk.kind]*(front-0.5))
		if w < wk.weight*0.05 {
			w = wk.weight * 0.05
		}
		weights[i] = w
		total += w
	}

	selected := table[0].kind
	roll := rng.Float() * total
	for i, wk := range table {
		roll -= weights[i]
		if roll <= 0 {
			selected = wk.kind
			break
		}
	}

	duration := 4 + rng.IntN(5)
	nextHour := hour + duration
	nextDay := day
	for nextHour >= 24 {
		nextHour -= 24
		nextDay++
	}

	return State{
		Current:        selected,
		DurationHours:  duration,
		NextChangeDay:  nextDay,
		NextChangeHour: nextHour,
	}
}

// Name returns a display name for a condition.
func Name(k Kind) string {
	switch k {
	case KindClear:
		return "clear skies"
	case KindCloudy:
		return "overcast"
	case KindRainy:
		return "light rain"
	case KindHeavyRain:
		return "heavy rain"
	case KindFoggy:
		return "fog"
	case KindWindy:
		return "high winds"
	case KindHot:
		return "scorching heat"
	case KindCold:
		return "bitter cold"
	case KindSnow:
		return "snowfall"
	case KindStorm:
		return "a storm"
	}
	return string(k)
}

// Describe returns the player-facing effect summary for a condition.
func Describe(k Kind) string {
	switch k {
	case KindClear:
		return "good visibility, gathering +10%"
	case KindCloudy:
		return "mild temperatures, energy use -5%"
	case KindRainy:
		return "water collection up, ground slick"
	case KindHeavyRain:
		return "water everywhere, gathering -30%, flood risk"
	case KindFoggy:
		return "poor visibility, exploration -20%"
	case KindWindy:
		return "energy use +10%, odd things blow in"
	case KindHot:
		return "water use +30%, recovery -20%"
	case KindCold:
		return "food use +30%, recovery -20%"
	case KindSnow:
		return "gathering -20%, food use +20%"
	case KindStorm:
		return "dangerous to be outside"
	}
	return ""
}
