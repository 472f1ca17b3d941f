// Package engine implements the survival simulation core: the discrete
// game clock, the activity scheduler, the resource and modifier ledgers,
// weather and season application, and the random event system. The
// Simulation owns all mutable game state; callers hold exactly one and
// serialize access to it.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/jberndt/longwinter/internal/content"
	"github.com/jberndt/longwinter/internal/entropy"
	"github.com/jberndt/longwinter/internal/weather"
)

// GameState is the top-level lifecycle of a run.
type GameState string

const (
	StatePlaying  GameState = "playing"
	StateGameOver GameState = "gameover"
)

// Config wires a Simulation's collaborators. Content and Tuning are
// required; Log defaults to slog.Default.
type Config struct {
	Content *content.Catalogs
	Tuning  content.Tuning
	Seed    int64
	Log     *slog.Logger
}

// Simulation is the whole game state plus the machinery that advances it.
// It is not safe for concurrent use; the API layer guards it with a mutex.
type Simulation struct {
	Content *content.Catalogs
	Tuning  content.Tuning

	Player     Player
	Resources  *Resources
	Skills     map[string]int
	Modifiers  *Modifiers
	Buildings  []Building
	Researched []string
	Quests     []Quest

	Clock         GameTime
	Weather       weather.State
	SeasonIndex   int
	SeasonEffects weather.SeasonEffects

	State        GameState
	Achievements Achievements
	Log          *EventLog

	// OnAutosave, when set, is invoked at each day boundary after the
	// daily update so the host can persist a snapshot.
	OnAutosave func()

	current []*Activity
	pending []*Activity
	due     dueHeap

	rng       *entropy.Source
	gen       *weather.Generator
	log       *slog.Logger
	absMinute int64
}

// skillIDs is the fixed set of trainable skills a survivor starts with.
var skillIDs = []string{"gathering", "crafting", "combat", "survival", "research"}

// New builds a fresh run at day 1, 06:00, with catalog-defined starting
// resources and an initial weather roll.
func New(cfg Config) *Simulation {
	logger := cfg.Log
	if logger == nil {
		logger = slog.Default()
	}
	s := &Simulation{
		Content:       cfg.Content,
		Tuning:        cfg.Tuning,
		Player:        newPlayer(),
		Resources:     NewResources(cfg.Content.Resources),
		Skills:        make(map[string]int, len(skillIDs)),
		Modifiers:     NewModifiers(),
		Clock:         GameTime{Day: 1, Hour: 6},
		State:         StatePlaying,
		Achievements:  newAchievements(),
		Log:           NewEventLog(cfg.Tuning.EventLogCap),
		rng:           entropy.New(cfg.Seed),
		gen:           weather.NewGenerator(cfg.Seed+1, cfg.Tuning.SeasonLengthDays),
		log:           logger,
		SeasonIndex:   0,
		SeasonEffects: weather.EffectsForSeason(0),
	}
	for _, id := range skillIDs {
		s.Skills[id] = 1
	}
	for _, t := range cfg.Content.Technologies {
		if t.Researched {
			s.Researched = append(s.Researched, t.ID)
		}
	}

	s.Weather = s.gen.Generate(s.Clock.Day, s.Clock.Hour, s.rng)
	s.refreshWeatherEffects(false)
	s.logf("You wake at dawn with a handful of supplies. Winter will come.")
	s.log.Info("simulation started",
		"seed", cfg.Seed,
		"weather", s.Weather.Current,
		"season", weather.SeasonName(s.SeasonIndex))
	return s
}

// Rand exposes the simulation's seeded random source.
func (s *Simulation) Rand() *entropy.Source { return s.rng }

// GameOver reports whether the run has ended.
func (s *Simulation) GameOver() bool { return s.State == StateGameOver }

// HasResearched reports whether a technology has been unlocked.
func (s *Simulation) HasResearched(techID string) bool {
	for _, id := range s.Researched {
		if id == techID {
			return true
		}
	}
	return false
}

// SkillLevel returns the current level of a trainable skill.
func (s *Simulation) SkillLevel(id string) int { return s.Skills[id] }

// logf records a formatted line in the player-facing event log, stamped
// with the current game time, and mirrors it to the structured log.
func (s *Simulation) logf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.Log.Push(s.Clock.String(), msg)
	s.log.Debug("event", "day", s.Clock.Day, "hour", s.Clock.Hour, "msg", msg)
}

// gameOver freezes the run. Every mutating entry point checks State
// first, so after this nothing advances.
func (s *Simulation) gameOver(cause string) {
	if s.State == StateGameOver {
		return
	}
	s.State = StateGameOver
	s.logf("You did not survive. %s", cause)
	s.log.Info("game over",
		"cause", cause,
		"day", s.Clock.Day,
		"days_survived", s.Player.Days,
		"level", s.Player.Level)
}

// recomputeCaps rebuilds every resource cap from catalog base values,
// survival milestones and constructed storage buildings.
func (s *Simulation) recomputeCaps() {
	milestones := s.Skills["survival"] / 5
	var storage []float64
	for _, b := range s.Buildings {
		lvl, ok := s.Content.BuildingLevel(b.TypeID, b.Level)
		if !ok {
			continue
		}
		if m, ok := lvl.Effects["storageMultiplier"]; ok && m > 0 {
			storage = append(storage, m)
		}
	}
	s.Resources.RecomputeCaps(milestones, s.Tuning.SurvivalCapMultiplier, storage, s.Tuning.CapCeiling)
}
