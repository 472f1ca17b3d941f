package weather

import (
	"testing"

	"github.com/jberndt/longwinter/internal/entropy"
)

func TestSeasonIndexCycles(t *testing.T) {
	g := NewGenerator(1, 30)
	cases := []struct {
		day  int
		want int
	}{
		{1, 0}, {30, 0}, {31, 1}, {60, 1}, {61, 2}, {91, 3}, {120, 3}, {121, 0}, {241, 0},
	}
	for _, c := range cases {
		if got := g.SeasonIndex(c.day); got != c.want {
			t.Fatalf("SeasonIndex(%d) = %d, want %d", c.day, got, c.want)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	g1 := NewGenerator(99, 30)
	g2 := NewGenerator(99, 30)
	r1 := entropy.New(5)
	r2 := entropy.New(5)
	for day := 1; day <= 60; day++ {
		a := g1.Generate(day, 0, r1)
		b := g2.Generate(day, 0, r2)
		if a != b {
			t.Fatalf("day %d: %+v vs %+v", day, a, b)
		}
	}
}

func TestGenerateMatchesSeasonTable(t *testing.T) {
	g := NewGenerator(3, 30)
	rng := entropy.New(3)
	// Winter never rolls summer-only conditions and vice versa.
	for hour := 0; hour < 24; hour++ {
		st := g.Generate(95, hour, rng) // day 95 is winter
		if st.Current == KindHot || st.Current == KindStorm {
			t.Fatalf("winter rolled %s", st.Current)
		}
		st = g.Generate(35, hour, rng) // day 35 is summer
		if st.Current == KindCold || st.Current == KindSnow {
			t.Fatalf("summer rolled %s", st.Current)
		}
	}
}

func TestGenerateSchedulesNextChange(t *testing.T) {
	g := NewGenerator(7, 30)
	rng := entropy.New(7)
	st := g.Generate(10, 20, rng)
	if st.DurationHours < 4 || st.DurationHours > 8 {
		t.Fatalf("duration = %d, want 4..8", st.DurationHours)
	}
	if !st.Due(st.NextChangeDay, st.NextChangeHour) {
		t.Fatalf("state not due at its own change time")
	}
	if st.Due(10, 20) {
		t.Fatalf("state due immediately after generation")
	}
}

func TestDampenHalvesTheGap(t *testing.T) {
	eff := map[string]float64{"a": 0.7, "b": 1.3, "c": 1.0}
	Dampen(eff, 0.5)
	if eff["a"] != 0.85 {
		t.Fatalf("0.7 dampened to %v, want 0.85", eff["a"])
	}
	if eff["b"] != 1.15 {
		t.Fatalf("1.3 dampened to %v, want 1.15", eff["b"])
	}
	if eff["c"] != 1.0 {
		t.Fatalf("neutral value moved to %v", eff["c"])
	}

	full := map[string]float64{"a": 0.5}
	Dampen(full, 2.0) // clamped to 1: fully neutralized, never overshoots
	if full["a"] != 1.0 {
		t.Fatalf("over-resistance produced %v, want 1.0", full["a"])
	}
}

func TestExtremeKinds(t *testing.T) {
	for _, k := range []Kind{KindHot, KindCold, KindStorm} {
		if !k.Extreme() {
			t.Fatalf("%s not extreme", k)
		}
	}
	for _, k := range []Kind{KindClear, KindRainy, KindSnow, KindFoggy} {
		if k.Extreme() {
			t.Fatalf("%s wrongly extreme", k)
		}
	}
}
