package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the engine's tunable parameters, loaded from tuning.yaml.
type Tuning struct {
	Seed int64 `yaml:"seed"` // 0 = derive from wall clock at startup

	// Real seconds to game minutes conversion for the live loop.
	MinutesPerSecond int `yaml:"minutes_per_second"`

	SeasonLengthDays int `yaml:"season_length_days"`

	EventLogCap      int     `yaml:"event_log_cap"`
	DailyEventChance float64 `yaml:"daily_event_chance"`

	// Storage cap policy: multiplicative scaling, absolute per-resource ceiling.
	CapCeiling            int     `yaml:"cap_ceiling"`
	SurvivalCapMultiplier float64 `yaml:"survival_cap_multiplier"`

	Autosave bool   `yaml:"autosave"`
	SaveID   string `yaml:"save_id"`

	APIPort int `yaml:"api_port"`
}

// DefaultTuning returns the parameters the game ships with.
func DefaultTuning() Tuning {
	return Tuning{
		MinutesPerSecond:      1,
		SeasonLengthDays:      30,
		EventLogCap:           100,
		DailyEventChance:      0.25,
		CapCeiling:            200,
		SurvivalCapMultiplier: 1.1,
		Autosave:              true,
		SaveID:                "default",
		APIPort:               8080,
	}
}

// LoadTuning reads tuning.yaml, applying defaults for anything unset.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	if t.MinutesPerSecond < 1 {
		t.MinutesPerSecond = 1
	}
	if t.SeasonLengthDays < 1 {
		t.SeasonLengthDays = 1
	}
	if t.EventLogCap < 1 {
		t.EventLogCap = 100
	}
	return t, nil
}
