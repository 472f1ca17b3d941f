package engine

import (
	"strings"
	"testing"
)

func TestHourlyUpkeepDrainsSupplies(t *testing.T) {
	s := newTestSim(t, 11)
	s.AdvanceTime(60)
	if got := s.Resources.Amount("water"); got != 9 {
		t.Fatalf("water = %d after one hour, want 9", got)
	}
	if got := s.Resources.Amount("food"); got != 9 {
		t.Fatalf("food = %d after one hour, want 9", got)
	}
	if s.Clock.Hour != 7 || s.Clock.Minute != 0 {
		t.Fatalf("clock = %+v, want 07:00", s.Clock)
	}
}

func TestMinutesCascadeIntoDays(t *testing.T) {
	s := newTestSim(t, 11)
	s.AdvanceTime(1440)
	if s.GameOver() {
		t.Fatalf("run ended during a routine day: %v", s.Log.Entries())
	}
	if s.Clock.Day != 2 || s.Clock.Hour != 6 || s.Clock.Minute != 0 {
		t.Fatalf("clock = %+v, want day 2 06:00", s.Clock)
	}
	if s.Player.Days != 1 {
		t.Fatalf("days survived = %d, want 1", s.Player.Days)
	}

	found := false
	for _, e := range s.Log.Entries() {
		if strings.Contains(e.Message, "Day 2 begins") {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("daily update never announced day 2")
	}
}

func TestStarvationKillsAndFreezesTheRun(t *testing.T) {
	s := newTestSim(t, 11)
	s.Resources.Drain("food", 1000)
	s.Resources.Drain("water", 1000)
	s.Player.Health = 12

	// 5 damage per starving hour: dead within three hours.
	s.AdvanceTime(180)
	if !s.GameOver() {
		t.Fatalf("survivor outlived starvation: health %v", s.Player.Health)
	}

	frozen := s.Clock
	s.AdvanceTime(600)
	if s.Clock != frozen {
		t.Fatalf("clock advanced after game over: %+v -> %+v", frozen, s.Clock)
	}
	if _, err := s.StartActivity("gather_food"); err != ErrGameOver {
		t.Fatalf("start after game over err = %v, want ErrGameOver", err)
	}
}

func TestNightRestOutpacesDayRest(t *testing.T) {
	s := newTestSim(t, 11)
	s.Player.Energy = 10

	s.Clock = GameTime{Day: 1, Hour: 23, Minute: 0}
	s.applyRest()
	night := s.Player.Energy

	s.Player.Energy = 10
	s.Clock = GameTime{Day: 1, Hour: 12, Minute: 0}
	s.applyRest()
	day := s.Player.Energy

	if night <= day {
		t.Fatalf("night rest %v not above day rest %v", night, day)
	}
}

func TestDeterministicRunsMatch(t *testing.T) {
	a := newTestSim(t, 99)
	b := newTestSim(t, 99)
	for _, s := range []*Simulation{a, b} {
		s.StartActivity("gather_food")
		s.AdvanceTime(3 * 1440)
	}
	if a.Resources.Amount("food") != b.Resources.Amount("food") {
		t.Fatalf("same seed diverged: food %d vs %d",
			a.Resources.Amount("food"), b.Resources.Amount("food"))
	}
	if a.Player.Health != b.Player.Health || a.Player.Energy != b.Player.Energy {
		t.Fatalf("same seed diverged on vitals")
	}
	if a.Weather.Current != b.Weather.Current {
		t.Fatalf("same seed diverged on weather")
	}
}
