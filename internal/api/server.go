// Package api serves the running game over HTTP. GET endpoints are
// read-only views of the state; POST endpoints issue player commands.
// Every handler takes the simulation lock, so the engine loop and the
// API never interleave mid-update.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sort"
	"sync"

	"github.com/jberndt/longwinter/internal/engine"
	"github.com/jberndt/longwinter/internal/persistence"
	"github.com/jberndt/longwinter/internal/weather"
)

// Server serves game state and commands over HTTP.
type Server struct {
	Port  int
	Store *persistence.Store
	Seed  int64
	Slot  string

	mu  sync.Mutex
	sim *engine.Simulation

	// restore swaps in a simulation rebuilt from a snapshot. Wired by
	// main so the server never needs the content/tuning plumbing.
	restore func(*engine.Snapshot) (*engine.Simulation, error)
}

// NewServer wires a server around a simulation. restore rebuilds a
// simulation from a loaded snapshot when the load endpoint is hit.
func NewServer(port int, sim *engine.Simulation, store *persistence.Store, seed int64, slot string,
	restore func(*engine.Snapshot) (*engine.Simulation, error)) *Server {
	return &Server{
		Port:    port,
		Store:   store,
		Seed:    seed,
		Slot:    slot,
		sim:     sim,
		restore: restore,
	}
}

// WithSim runs fn while holding the simulation lock. The engine loop
// uses this to advance time without racing the handlers.
func (s *Server) WithSim(fn func(*engine.Simulation)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.sim)
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/player", s.handlePlayer)
	mux.HandleFunc("/api/v1/resources", s.handleResources)
	mux.HandleFunc("/api/v1/skills", s.handleSkills)
	mux.HandleFunc("/api/v1/buildings", s.handleBuildings)
	mux.HandleFunc("/api/v1/activities", s.handleActivities)
	mux.HandleFunc("/api/v1/quests", s.handleQuests)
	mux.HandleFunc("/api/v1/achievements", s.handleAchievements)
	mux.HandleFunc("/api/v1/log", s.handleLog)
	mux.HandleFunc("/api/v1/saves", s.handleSaves)

	mux.HandleFunc("/api/v1/activity/start", s.postOnly(s.handleActivityStart))
	mux.HandleFunc("/api/v1/activity/cancel", s.postOnly(s.handleActivityCancel))
	mux.HandleFunc("/api/v1/build", s.postOnly(s.handleBuild))
	mux.HandleFunc("/api/v1/research", s.postOnly(s.handleResearch))
	mux.HandleFunc("/api/v1/skill/unlock", s.postOnly(s.handleSkillUnlock))
	mux.HandleFunc("/api/v1/quest/accept", s.postOnly(s.handleQuestAccept))
	mux.HandleFunc("/api/v1/quest/complete", s.postOnly(s.handleQuestComplete))
	mux.HandleFunc("/api/v1/quest/abandon", s.postOnly(s.handleQuestAbandon))
	mux.HandleFunc("/api/v1/save", s.postOnly(s.handleSave))
	mux.HandleFunc("/api/v1/load", s.postOnly(s.handleLoad))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr)

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

func (s *Server) postOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sim := s.sim
	writeJSON(w, map[string]any{
		"name":    "Longwinter",
		"state":   sim.State,
		"day":     sim.Clock.Day,
		"hour":    sim.Clock.Hour,
		"minute":  sim.Clock.Minute,
		"season":  weather.SeasonName(sim.SeasonIndex),
		"weather": map[string]any{
			"current":     sim.Weather.Current,
			"description": weather.Describe(sim.Weather.Current),
			"extreme":     sim.Weather.Current.Extreme(),
		},
		"activities": len(sim.CurrentActivities()),
		"queued":     len(sim.PendingActivities()),
	})
}

func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.sim.Player
	writeJSON(w, map[string]any{
		"level":       p.Level,
		"exp":         p.Exp,
		"exp_to_next": p.ExpToNext,
		"health":      math.Round(p.Health),
		"max_health":  math.Round(p.MaxHealth),
		"energy":      math.Round(p.Energy),
		"max_energy":  math.Round(p.MaxEnergy),
		"mental":      math.Round(p.Mental),
		"max_mental":  math.Round(p.MaxMental),
		"days":        p.Days,
	})
}

func (s *Server) handleResources(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount int    `json:"amount"`
		Cap    int    `json:"cap"`
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sim := s.sim
	var out []entry
	for _, id := range sim.Resources.IDs() {
		out = append(out, entry{
			ID:     id,
			Name:   sim.Content.ResourceName(id),
			Amount: sim.Resources.Amount(id),
			Cap:    sim.Resources.Cap(id),
		})
	}
	writeJSON(w, out)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sim := s.sim
	skills := make(map[string]int, len(sim.Skills))
	for id, lvl := range sim.Skills {
		skills[id] = lvl
	}
	writeJSON(w, map[string]any{
		"skills":     skills,
		"nodes":      sim.Modifiers.GrantedLevels(),
		"researched": sim.Researched,
	})
}

func (s *Server) handleBuildings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buildings := append([]engine.Building(nil), s.sim.Buildings...)
	sort.Slice(buildings, func(i, j int) bool { return buildings[i].Day < buildings[j].Day })
	writeJSON(w, buildings)
}

func (s *Server) handleActivities(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{
		"current": s.sim.CurrentActivities(),
		"pending": s.sim.PendingActivities(),
		"minute":  s.sim.AbsMinute(),
	})
}

func (s *Server) handleQuests(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, map[string]any{
		"active":    s.sim.Quests,
		"completed": s.sim.Achievements.CompletedQuests,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.sim.Achievements)
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, s.sim.Log.Entries())
}

func (s *Server) handleSaves(w http.ResponseWriter, r *http.Request) {
	saves, err := s.Store.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, saves)
}

type idRequest struct {
	ID string `json:"id"`
}

func decodeID(r *http.Request) (string, error) {
	var req idRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("bad request body: %w", err)
	}
	if req.ID == "" {
		return "", errors.New("missing id")
	}
	return req.ID, nil
}

// commandStatus maps scheduler gate failures onto HTTP codes: unknown
// ids are 404, everything the player simply cannot afford or reach yet
// is 409.
func commandStatus(err error) int {
	switch {
	case errors.Is(err, engine.ErrUnknownRecipe),
		errors.Is(err, engine.ErrUnknownActivity),
		errors.Is(err, engine.ErrUnknownBuilding),
		errors.Is(err, engine.ErrUnknownTech),
		errors.Is(err, engine.ErrUnknownNode),
		errors.Is(err, engine.ErrUnknownQuest):
		return http.StatusNotFound
	default:
		return http.StatusConflict
	}
}

func (s *Server) handleActivityStart(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, err := s.sim.StartActivity(id)
	if err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, a)
}

func (s *Server) handleActivityCancel(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.CancelActivity(id); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, map[string]any{"cancelled": id})
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := s.sim.BuildNewBuilding(id)
	if err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, b)
}

func (s *Server) handleResearch(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.ResearchTechnology(id); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, map[string]any{"researched": s.sim.Researched})
}

func (s *Server) handleSkillUnlock(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.UnlockSkillNode(id); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, map[string]any{
		"node":  id,
		"level": s.sim.Modifiers.NodeLevel(id),
	})
}

func (s *Server) handleQuestAccept(w http.ResponseWriter, r *http.Request) {
	var q engine.Quest
	if err := json.NewDecoder(r.Body).Decode(&q); err != nil || q.ID == "" {
		http.Error(w, "bad quest payload", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.AcceptQuest(q); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, q)
}

func (s *Server) handleQuestComplete(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.CompleteQuest(id); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, map[string]any{"completed": id})
}

func (s *Server) handleQuestAbandon(w http.ResponseWriter, r *http.Request) {
	id, err := decodeID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.sim.AbandonQuest(id); err != nil {
		http.Error(w, err.Error(), commandStatus(err))
		return
	}
	writeJSON(w, map[string]any{"abandoned": id})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snap := s.sim.Snapshot(s.Seed)
	s.mu.Unlock()

	if err := s.Store.Save(s.Slot, snap); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]any{"saved": s.Slot, "day": snap.Clock.Day})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Store.Load(s.Slot)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, persistence.ErrNoSave) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	sim, err := s.restore(snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.mu.Lock()
	s.sim = sim
	// Later saves must stamp the loaded run's seed, not the seed this
	// process happened to boot with.
	s.Seed = snap.Seed
	s.mu.Unlock()
	writeJSON(w, map[string]any{"loaded": s.Slot, "day": snap.Clock.Day})
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(data)
}
