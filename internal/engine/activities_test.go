package engine

import (
	"errors"
	"testing"
)

func TestStartActivityChargesEnergy(t *testing.T) {
	s := newTestSim(t, 7)
	a, err := s.StartActivity("gather_food")
	if err != nil {
		t.Fatalf("StartActivity: %v", err)
	}
	if a.EnergyCost != 10 {
		t.Fatalf("energy cost = %d, want 10", a.EnergyCost)
	}
	if got := s.Player.Energy; got != 90 {
		t.Fatalf("player energy = %v, want 90", got)
	}
	if a.Duration != 60 {
		t.Fatalf("duration = %d, want unmodified 60", a.Duration)
	}
	if a.Queued {
		t.Fatalf("first gathering activity should run immediately")
	}
}

func TestStartActivityGates(t *testing.T) {
	s := newTestSim(t, 7)

	if _, err := s.StartActivity("no_such_recipe"); !errors.Is(err, ErrUnknownRecipe) {
		t.Fatalf("err = %v, want ErrUnknownRecipe", err)
	}
	// craft_simple_tool is gated behind basic_crafting research.
	if _, err := s.StartActivity("craft_simple_tool"); !errors.Is(err, ErrTechLocked) {
		t.Fatalf("err = %v, want ErrTechLocked", err)
	}
	// gather_herb needs gathering 2, a fresh survivor has 1.
	if _, err := s.StartActivity("gather_herb"); !errors.Is(err, ErrSkillTooLow) {
		t.Fatalf("err = %v, want ErrSkillTooLow", err)
	}
	// explore_ruins costs a tool nobody has yet.
	s.Skills["survival"] = 3
	s.Skills["combat"] = 2
	if _, err := s.StartActivity("explore_ruins"); !errors.Is(err, ErrMissingInputs) {
		t.Fatalf("err = %v, want ErrMissingInputs", err)
	}

	s.Player.Energy = 5
	if _, err := s.StartActivity("gather_food"); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("err = %v, want ErrNotEnoughEnergy", err)
	}
	// Gate failures must not have touched anything.
	if got := s.Player.Energy; got != 5 {
		t.Fatalf("failed starts changed energy: %v", got)
	}
	if len(s.CurrentActivities()) != 0 || len(s.PendingActivities()) != 0 {
		t.Fatalf("failed starts scheduled work")
	}
}

func TestCraftingConsumesInputsTransactionally(t *testing.T) {
	s := newTestSim(t, 7)
	s.Researched = append(s.Researched, "basic_crafting")
	s.Resources.Add("wood", 5)
	s.Resources.Add("stone", 3)

	if _, err := s.StartActivity("craft_simple_tool"); err != nil {
		t.Fatalf("StartActivity: %v", err)
	}
	if s.Resources.Amount("wood") != 0 || s.Resources.Amount("stone") != 0 {
		t.Fatalf("inputs not consumed: wood=%d stone=%d",
			s.Resources.Amount("wood"), s.Resources.Amount("stone"))
	}
	if got := s.Player.Energy; got != 85 {
		t.Fatalf("energy = %v, want 85", got)
	}
}

func TestSecondGatheringQueuesAtLevelOne(t *testing.T) {
	s := newTestSim(t, 7)
	if _, err := s.StartActivity("gather_food"); err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := s.StartActivity("gather_water")
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if !second.Queued {
		t.Fatalf("second gathering activity should queue at player level 1")
	}
	// Queued work has already paid.
	if got := s.Player.Energy; got != 80 {
		t.Fatalf("energy = %v, want 80", got)
	}
}

func TestCompletionGrantsOutputsAndPromotesQueue(t *testing.T) {
	s := newTestSim(t, 7)
	s.StartActivity("gather_food")
	s.StartActivity("gather_water")

	s.AdvanceTime(60)
	calmWeather(s)
	if got := len(s.CurrentActivities()); got != 1 {
		t.Fatalf("after first completion, %d running, want promoted 1", got)
	}
	// 10 starting food, +5..15 gathered, -1 hourly upkeep.
	if got := s.Resources.Amount("food"); got < 14 || got > 24 {
		t.Fatalf("food = %d, want between 14 and 24", got)
	}

	s.AdvanceTime(60)
	if got := len(s.CurrentActivities()); got != 0 {
		t.Fatalf("%d activities still running", got)
	}
	// 10 starting water, +5..15 gathered, -2 hourly upkeep.
	if got := s.Resources.Amount("water"); got < 13 || got > 23 {
		t.Fatalf("water = %d, want between 13 and 23", got)
	}
}

func TestCancelRefundsInFull(t *testing.T) {
	s := newTestSim(t, 7)
	a, err := s.StartActivity("gather_wood")
	if err != nil {
		t.Fatalf("StartActivity: %v", err)
	}
	if err := s.CancelActivity(a.ID); err != nil {
		t.Fatalf("CancelActivity: %v", err)
	}
	if got := s.Player.Energy; got != 100 {
		t.Fatalf("energy = %v after refund, want 100", got)
	}
	if len(s.CurrentActivities()) != 0 {
		t.Fatalf("cancelled activity still running")
	}
	if err := s.CancelActivity(a.ID); !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("double cancel err = %v, want ErrUnknownActivity", err)
	}
}

func TestEnergyCostDiscountsFloorAtOne(t *testing.T) {
	s := newTestSim(t, 7)
	node, _ := s.Content.SkillNodeByID("conservation")
	s.Modifiers.ApplySkillEffect("conservation", node.Effects, 2)

	r, _ := s.Content.RecipeByID("gather_food")
	// 10 * (1 - 0.2) = 8.
	if got := s.adjustedEnergyCost(r); got != 8 {
		t.Fatalf("discounted cost = %d, want 8", got)
	}

	s.Modifiers.skill["gatheringEnergyCost"] = -0.99
	if got := s.adjustedEnergyCost(r); got < 1 {
		t.Fatalf("cost fell below 1: %d", got)
	}
}

func TestDurationSpeedupFloorsAtOneSecond(t *testing.T) {
	s := newTestSim(t, 7)
	r, _ := s.Content.RecipeByID("gather_food")

	s.Modifiers.skill["gatheringEfficiency"] = 0.45
	// floor(60 / 1.45) = 41.
	if got := s.adjustedDuration(r); got != 41 {
		t.Fatalf("adjusted duration = %d, want 41", got)
	}

	s.Modifiers.skill["gatheringEfficiency"] = 1000
	if got := s.adjustedDuration(r); got != 1 {
		t.Fatalf("duration floor = %d, want 1", got)
	}
}
