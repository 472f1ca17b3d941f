package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/jberndt/longwinter/internal/content"
	"github.com/jberndt/longwinter/internal/weather"
)

var testCatalogs *content.Catalogs

func loadTestCatalogs(t *testing.T) *content.Catalogs {
	t.Helper()
	if testCatalogs == nil {
		c, err := content.Load("../../configs")
		if err != nil {
			t.Fatalf("load catalogs: %v", err)
		}
		testCatalogs = c
	}
	return testCatalogs
}

// newTestSim builds a simulation with a fixed seed and calm fog pinned
// far into the future, so weather neither shifts multipliers nor rolls
// side effects during a test.
func newTestSim(t *testing.T, seed int64) *Simulation {
	t.Helper()
	cat := loadTestCatalogs(t)
	tun := content.DefaultTuning()
	s := New(Config{
		Content: cat,
		Tuning:  tun,
		Seed:    seed,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	calmWeather(s)
	return s
}

func calmWeather(s *Simulation) {
	s.Weather = weather.State{
		Current:        weather.KindFoggy,
		DurationHours:  8,
		NextChangeDay:  1 << 20,
		NextChangeHour: 0,
	}
	s.refreshWeatherEffects(false)
}
