package engine

import (
	"container/heap"
	"fmt"
	"log/slog"

	"github.com/jberndt/longwinter/internal/entropy"
	"github.com/jberndt/longwinter/internal/weather"
)

// Snapshot is the complete serializable game state. Everything derived
// (modifier totals, resource caps, vitals maxima) is recomputed on
// restore, so a snapshot only carries primary state.
type Snapshot struct {
	Seed       int64          `json:"seed"`
	Player     Player         `json:"player"`
	Resources  map[string]int `json:"resources"`
	Skills     map[string]int `json:"skills"`
	SkillNodes map[string]int `json:"skill_nodes"`
	Buildings  []Building     `json:"buildings"`
	Researched []string       `json:"researched"`
	Quests     []Quest        `json:"quests"`

	Achievements Achievements  `json:"achievements"`
	Clock        GameTime      `json:"clock"`
	AbsMinute    int64         `json:"abs_minute"`
	Weather      weather.State `json:"weather"`
	SeasonIndex  int           `json:"season_index"`
	State        GameState     `json:"state"`
	Log          []LogEntry    `json:"log"`

	Current []Activity `json:"current_activities"`
	Pending []Activity `json:"pending_activities"`
}

// Snapshot captures the current run.
func (s *Simulation) Snapshot(seed int64) *Snapshot {
	amounts, _ := s.Resources.Snapshot()
	skills := make(map[string]int, len(s.Skills))
	for k, v := range s.Skills {
		skills[k] = v
	}
	snap := &Snapshot{
		Seed:         seed,
		Player:       s.Player,
		Resources:    amounts,
		Skills:       skills,
		SkillNodes:   s.Modifiers.GrantedLevels(),
		Buildings:    append([]Building(nil), s.Buildings...),
		Researched:   append([]string(nil), s.Researched...),
		Quests:       append([]Quest(nil), s.Quests...),
		Achievements: s.Achievements,
		Clock:        s.Clock,
		AbsMinute:    s.absMinute,
		Weather:      s.Weather,
		SeasonIndex:  s.SeasonIndex,
		State:        s.State,
		Log:          s.Log.Entries(),
		Current:      s.CurrentActivities(),
		Pending:      s.PendingActivities(),
	}
	snap.Achievements.ResourcesCollected = make(map[string]int, len(s.Achievements.ResourcesCollected))
	for k, v := range s.Achievements.ResourcesCollected {
		snap.Achievements.ResourcesCollected[k] = v
	}
	return snap
}

// Restore rebuilds a Simulation from a snapshot. Primary state is taken
// as saved, clamped against the current catalogs; every derived value is
// recomputed, which also repairs saves written by older balance data.
// The random stream is reseeded from the save's seed and clock position.
func Restore(snap *Snapshot, cfg Config) (*Simulation, error) {
	if snap == nil {
		return nil, fmt.Errorf("restore: nil snapshot")
	}
	logger := cfg.Log
	if logger == nil {
		logger = slog.Default()
	}
	s := &Simulation{
		Content:      cfg.Content,
		Tuning:       cfg.Tuning,
		Player:       snap.Player,
		Resources:    NewResources(cfg.Content.Resources),
		Skills:       make(map[string]int, len(skillIDs)),
		Modifiers:    NewModifiers(),
		Clock:        snap.Clock,
		Weather:      snap.Weather,
		SeasonIndex:  snap.SeasonIndex,
		State:        snap.State,
		Achievements: snap.Achievements,
		Log:          NewEventLog(cfg.Tuning.EventLogCap),
		rng:          entropy.New(snap.Seed + snap.AbsMinute),
		gen:          weather.NewGenerator(snap.Seed+1, cfg.Tuning.SeasonLengthDays),
		log:          logger,
		absMinute:    snap.AbsMinute,
	}
	if s.State != StatePlaying && s.State != StateGameOver {
		s.State = StatePlaying
	}
	if s.Achievements.ResourcesCollected == nil {
		s.Achievements.ResourcesCollected = make(map[string]int)
	}
	for _, id := range skillIDs {
		s.Skills[id] = 1
		if lvl, ok := snap.Skills[id]; ok && lvl > 0 {
			s.Skills[id] = lvl
		}
	}
	for _, techID := range snap.Researched {
		if _, ok := cfg.Content.TechnologyByID(techID); ok {
			s.Researched = append(s.Researched, techID)
		}
	}
	for _, b := range snap.Buildings {
		if _, ok := cfg.Content.BuildingByID(b.TypeID); ok {
			s.Buildings = append(s.Buildings, b)
		}
	}
	s.Quests = append(s.Quests, snap.Quests...)

	// Replay the log oldest-first so Push keeps newest-first order.
	for i := len(snap.Log) - 1; i >= 0; i-- {
		s.Log.Push(snap.Log[i].Timestamp, snap.Log[i].Message)
	}

	s.Modifiers.RestoreSkillEffects(snap.SkillNodes, cfg.Content)
	s.Modifiers.ResetSkillEffects(cfg.Content)
	s.RebuildBuildingEffects()
	s.Resources.Restore(snap.Resources)
	s.SeasonEffects = weather.EffectsForSeason(s.SeasonIndex)
	s.refreshWeatherEffects(false)

	s.restoreActivities(snap)

	s.log.Info("simulation restored",
		"day", s.Clock.Day,
		"state", s.State,
		"activities", len(s.current),
		"queued", len(s.pending))
	return s, nil
}

// restoreActivities reloads the scheduler. Activities whose recipe no
// longer exists refund their costs instead of silently vanishing.
func (s *Simulation) restoreActivities(snap *Snapshot) {
	for _, saved := range snap.Current {
		a := saved
		if _, ok := s.Content.RecipeByID(a.RecipeID); !ok {
			s.refundActivity(&a)
			continue
		}
		if a.DueAt <= s.absMinute {
			a.DueAt = s.absMinute + 1
		}
		cur := a
		s.current = append(s.current, &cur)
		heap.Push(&s.due, &cur)
	}
	for _, saved := range snap.Pending {
		a := saved
		if _, ok := s.Content.RecipeByID(a.RecipeID); !ok {
			s.refundActivity(&a)
			continue
		}
		q := a
		q.Queued = true
		s.pending = append(s.pending, &q)
	}
}
