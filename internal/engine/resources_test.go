package engine

import (
	"testing"

	"github.com/jberndt/longwinter/internal/content"
)

func testDefs() []content.ResourceDef {
	return []content.ResourceDef{
		{ID: "food", Name: "food", Initial: 10, Cap: 50},
		{ID: "wood", Name: "wood", Initial: 0, Cap: 50},
		{ID: "relic", Name: "relic", Initial: 0, Cap: 5},
	}
}

func TestAddClampsAtCap(t *testing.T) {
	r := NewResources(testDefs())
	if !r.Add("food", 100) {
		t.Fatalf("Add failed")
	}
	if got := r.Amount("food"); got != 50 {
		t.Fatalf("food = %d, want cap 50", got)
	}
	if r.Add("unknown", 1) {
		t.Fatalf("Add accepted an unknown resource")
	}
}

func TestConsumeIsAllOrNothing(t *testing.T) {
	r := NewResources(testDefs())
	if r.Consume("food", 11) {
		t.Fatalf("Consume succeeded beyond balance")
	}
	if got := r.Amount("food"); got != 10 {
		t.Fatalf("failed Consume mutated balance: %d", got)
	}
	if !r.Consume("food", 10) {
		t.Fatalf("Consume of exact balance failed")
	}
	if got := r.Amount("food"); got != 0 {
		t.Fatalf("food = %d after consuming all", got)
	}
}

func TestConsumeAllIsTransactional(t *testing.T) {
	r := NewResources(testDefs())
	r.Add("wood", 5)
	// wood is sufficient, food is not: nothing may change.
	if r.ConsumeAll(map[string]int{"wood": 3, "food": 99}) {
		t.Fatalf("ConsumeAll succeeded with an unaffordable cost")
	}
	if r.Amount("wood") != 5 || r.Amount("food") != 10 {
		t.Fatalf("partial debit: wood=%d food=%d", r.Amount("wood"), r.Amount("food"))
	}
	if !r.ConsumeAll(map[string]int{"wood": 3, "food": 10}) {
		t.Fatalf("affordable ConsumeAll failed")
	}
	if r.Amount("wood") != 2 || r.Amount("food") != 0 {
		t.Fatalf("after debit: wood=%d food=%d", r.Amount("wood"), r.Amount("food"))
	}
}

func TestDrainStopsAtZero(t *testing.T) {
	r := NewResources(testDefs())
	if taken := r.Drain("food", 7); taken != 7 {
		t.Fatalf("Drain took %d, want 7", taken)
	}
	if taken := r.Drain("food", 7); taken != 3 {
		t.Fatalf("Drain took %d, want remaining 3", taken)
	}
	if got := r.Amount("food"); got != 0 {
		t.Fatalf("food = %d, want 0", got)
	}
}

func TestRecomputeCapsIsIdempotent(t *testing.T) {
	r := NewResources(testDefs())
	for i := 0; i < 5; i++ {
		r.RecomputeCaps(1, 1.1, []float64{1.2}, 200)
	}
	// 50 * 1.1 * 1.2 = 66 regardless of how often it runs.
	if got := r.Cap("food"); got != 66 {
		t.Fatalf("food cap = %d, want 66", got)
	}
}

func TestRecomputeCapsCeiling(t *testing.T) {
	r := NewResources(testDefs())
	r.RecomputeCaps(20, 1.1, nil, 200)
	if got := r.Cap("food"); got != 200 {
		t.Fatalf("food cap = %d, want ceiling 200", got)
	}
	// Balances above a shrunken cap are left alone.
	r.Add("food", 200)
	r.RecomputeCaps(0, 1.1, nil, 200)
	if got := r.Amount("food"); got != 200 {
		t.Fatalf("cap recompute reduced a balance to %d", got)
	}
}

func TestRestoreDropsUnknownAndClamps(t *testing.T) {
	r := NewResources(testDefs())
	r.Restore(map[string]int{"food": 9999, "wood": 3, "ghost": 12})
	if got := r.Amount("food"); got != 50 {
		t.Fatalf("restored food = %d, want clamped 50", got)
	}
	if got := r.Amount("wood"); got != 3 {
		t.Fatalf("restored wood = %d", got)
	}
	if r.Known("ghost") {
		t.Fatalf("restore introduced an unknown resource")
	}
}
