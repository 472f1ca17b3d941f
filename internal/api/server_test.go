package api

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jberndt/longwinter/internal/content"
	"github.com/jberndt/longwinter/internal/engine"
	"github.com/jberndt/longwinter/internal/persistence"
)

func TestLoadAdoptsTheSavedRunsSeed(t *testing.T) {
	catalogs, err := content.Load("../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	cfg := engine.Config{
		Content: catalogs,
		Tuning:  content.DefaultTuning(),
		Seed:    41,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	store, err := persistence.Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()

	// An older run saved under seed 41.
	saved := engine.New(cfg)
	saved.AdvanceTime(60)
	if err := store.Save("slot", saved.Snapshot(41)); err != nil {
		t.Fatalf("seed save: %v", err)
	}

	// The process rebooted fresh with a different seed.
	freshCfg := cfg
	freshCfg.Seed = 7
	srv := NewServer(0, engine.New(freshCfg), store, 7, "slot",
		func(snap *engine.Snapshot) (*engine.Simulation, error) {
			return engine.Restore(snap, cfg)
		})

	w := httptest.NewRecorder()
	srv.handleLoad(w, httptest.NewRequest("POST", "/api/v1/load", nil))
	if w.Code != 200 {
		t.Fatalf("load status = %d: %s", w.Code, w.Body.String())
	}
	if srv.Seed != 41 {
		t.Fatalf("server seed = %d after load, want the saved run's 41", srv.Seed)
	}

	// A save after the load must stamp the adopted seed.
	w = httptest.NewRecorder()
	srv.handleSave(w, httptest.NewRequest("POST", "/api/v1/save", nil))
	if w.Code != 200 {
		t.Fatalf("save status = %d: %s", w.Code, w.Body.String())
	}
	snap, err := store.Load("slot")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if snap.Seed != 41 {
		t.Fatalf("resaved seed = %d, want 41", snap.Seed)
	}
}
