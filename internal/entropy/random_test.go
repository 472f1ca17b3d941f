package entropy

import "testing"

func TestEqualSeedsMatch(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if a.Float() != b.Float() {
			t.Fatalf("streams diverged at draw %d", i)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.IntN(1000) == b.IntN(1000) {
			same++
		}
	}
	if same > 10 {
		t.Fatalf("streams suspiciously similar: %d/100 equal draws", same)
	}
}

func TestBetweenIsInclusive(t *testing.T) {
	s := New(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := s.Between(3, 5)
		if v < 3 || v > 5 {
			t.Fatalf("Between(3, 5) = %d", v)
		}
		seen[v] = true
	}
	if !seen[3] || !seen[5] {
		t.Fatalf("bounds never drawn: %v", seen)
	}
	if got := s.Between(5, 5); got != 5 {
		t.Fatalf("degenerate range = %d, want 5", got)
	}
}

func TestChanceExtremes(t *testing.T) {
	s := New(7)
	if s.Chance(0) {
		t.Fatalf("Chance(0) fired")
	}
	if !s.Chance(1) {
		t.Fatalf("Chance(1) missed")
	}
	if s.Chance(-0.5) {
		t.Fatalf("negative probability fired")
	}
}
