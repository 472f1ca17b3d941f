package engine

import (
	"testing"

	"github.com/jberndt/longwinter/internal/weather"
)

func TestMidSeasonDailyRollsGrantSpringGrowth(t *testing.T) {
	s := newTestSim(t, 17)
	s.Clock.Day = 5 // mid-spring, no transition in sight

	foodStart := s.Resources.Amount("food")
	herbStart := s.Resources.Amount("herb")
	for i := 0; i < 500; i++ {
		s.applySeasonalEffects()
	}
	if s.SeasonIndex != weather.SeasonSpring {
		t.Fatalf("season index = %d, want spring", s.SeasonIndex)
	}
	if s.Resources.Amount("food") <= foodStart && s.Resources.Amount("herb") <= herbStart {
		t.Fatalf("500 mid-season daily rolls produced no spring growth (food=%d herb=%d)",
			s.Resources.Amount("food"), s.Resources.Amount("herb"))
	}
}

func TestWinterDailyRollsDrainFoodAndHealth(t *testing.T) {
	s := newTestSim(t, 17)
	s.Clock.Day = 95 // mid-winter at the default 30-day seasons
	s.SeasonIndex = weather.SeasonWinter

	foodStart := s.Resources.Amount("food")
	healthStart := s.Player.Health
	for i := 0; i < 500; i++ {
		s.applySeasonalEffects()
	}
	if s.SeasonEffects != weather.EffectsForSeason(weather.SeasonWinter) {
		t.Fatalf("season effects not refreshed for winter: %+v", s.SeasonEffects)
	}
	if got := s.Resources.Amount("food"); got >= foodStart {
		t.Fatalf("food = %d after a winter of daily rolls, want below %d", got, foodStart)
	}
	if s.Player.Health >= healthStart {
		t.Fatalf("health = %v after a winter of daily rolls, want below %v", s.Player.Health, healthStart)
	}
	if s.Player.Health <= 8 {
		t.Fatalf("winter attrition drove health to %v, want it floored above 8", s.Player.Health)
	}
}
