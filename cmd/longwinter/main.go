// Command longwinter runs the survival simulation service.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jberndt/longwinter/internal/api"
	"github.com/jberndt/longwinter/internal/content"
	"github.com/jberndt/longwinter/internal/engine"
	"github.com/jberndt/longwinter/internal/persistence"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding the content catalogs")
	dbPath := flag.String("db", "data/longwinter.db", "path to the save database")
	fresh := flag.Bool("fresh", false, "ignore any existing save and start a new run")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	slog.Info("Longwinter survival simulation")

	// ── Configuration ─────────────────────────────────────────────────
	tun, err := content.LoadTuning(filepath.Join(*configDir, "tuning.yaml"))
	if err != nil {
		slog.Warn("tuning not loaded, using defaults", "error", err)
	}
	catalogs, err := content.Load(*configDir)
	if err != nil {
		slog.Error("failed to load content catalogs", "error", err)
		os.Exit(1)
	}
	slog.Info("content loaded",
		"resources", len(catalogs.Resources),
		"recipes", len(catalogs.Recipes),
		"technologies", len(catalogs.Technologies),
		"buildings", len(catalogs.Buildings),
		"events", len(catalogs.Events),
	)

	seed := tun.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// ── Database ──────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(*dbPath), 0755)
	store, err := persistence.Open(*dbPath)
	if err != nil {
		slog.Error("failed to open save database", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("save database opened", "path", *dbPath)

	// ── Load or Start a Run ───────────────────────────────────────────
	cfg := engine.Config{Content: catalogs, Tuning: tun, Seed: seed, Log: logger}

	var sim *engine.Simulation
	if !*fresh {
		snap, loadErr := store.Load(tun.SaveID)
		switch {
		case loadErr == nil:
			sim, err = engine.Restore(snap, cfg)
			if err != nil {
				slog.Error("failed to restore save", "error", err)
				os.Exit(1)
			}
			seed = snap.Seed
		case errors.Is(loadErr, persistence.ErrNoSave):
			slog.Info("no saved run found, starting fresh")
		default:
			slog.Error("failed to read save", "error", loadErr)
			os.Exit(1)
		}
	}
	if sim == nil {
		sim = engine.New(cfg)
	}

	// ── HTTP API ──────────────────────────────────────────────────────
	restore := func(snap *engine.Snapshot) (*engine.Simulation, error) {
		restored, err := engine.Restore(snap, cfg)
		if err != nil {
			return nil, err
		}
		wireAutosave(restored, store, tun, snap.Seed)
		return restored, nil
	}
	srv := api.NewServer(tun.APIPort, sim, store, seed, tun.SaveID, restore)
	wireAutosave(sim, store, tun, seed)
	srv.Start()

	// ── Engine Loop ───────────────────────────────────────────────────
	stop := make(chan struct{})
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		close(stop)
	}()

	fmt.Printf("\nDay %d, %02d:%02d. The long winter is waiting.\n",
		sim.Clock.Day, sim.Clock.Hour, sim.Clock.Minute)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", tun.APIPort)
	fmt.Println("Running... (Ctrl+C to stop)")

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-ticker.C:
			srv.WithSim(func(sim *engine.Simulation) {
				sim.AdvanceTime(tun.MinutesPerSecond)
			})
		case <-stop:
			break loop
		}
	}

	// Final save on shutdown.
	slog.Info("final save...")
	srv.WithSim(func(sim *engine.Simulation) {
		if err := store.Save(tun.SaveID, sim.Snapshot(seed)); err != nil {
			slog.Error("final save failed", "error", err)
		}
	})

	fmt.Println("Simulation stopped. Run saved.")
}

// wireAutosave makes the daily rollover persist a snapshot when tuning
// enables it. The callback runs with the simulation lock already held.
func wireAutosave(sim *engine.Simulation, store *persistence.Store, tun content.Tuning, seed int64) {
	if !tun.Autosave {
		return
	}
	sim.OnAutosave = func() {
		if err := store.Save(tun.SaveID, sim.Snapshot(seed)); err != nil {
			slog.Error("autosave failed", "error", err)
		}
	}
}
