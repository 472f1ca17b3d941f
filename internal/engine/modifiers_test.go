package engine

import (
	"testing"

	"github.com/jberndt/longwinter/internal/content"
)

func numEffect(id string, v float64) map[string]content.EffectValue {
	return map[string]content.EffectValue{id: {Number: v}}
}

func TestApplySkillEffectIsIdempotentPerLevel(t *testing.T) {
	m := NewModifiers()
	eff := numEffect("gatheringEfficiency", 0.15)

	m.ApplySkillEffect("efficient_gathering", eff, 1)
	m.ApplySkillEffect("efficient_gathering", eff, 1)
	if got := m.Modifier("gatheringEfficiency"); got != 0.15 {
		t.Fatalf("re-applying level 1 changed value: %v", got)
	}

	m.ApplySkillEffect("efficient_gathering", eff, 3)
	if got := m.Modifier("gatheringEfficiency"); got != 0.45 {
		t.Fatalf("level 3 value = %v, want 0.45", got)
	}
	m.ApplySkillEffect("efficient_gathering", eff, 2)
	if got := m.Modifier("gatheringEfficiency"); got != 0.45 {
		t.Fatalf("lower level re-application changed value: %v", got)
	}
}

func TestFlagsUnlockOnce(t *testing.T) {
	m := NewModifiers()
	m.ApplySkillEffect("advanced_theory", map[string]content.EffectValue{
		"unlockAdvancedTech": {Flag: true, IsFlag: true},
	}, 1)
	if !m.Flag("unlockAdvancedTech") {
		t.Fatalf("flag not set")
	}
	if m.Flag("neverGranted") {
		t.Fatalf("unset flag reported true")
	}
}

func TestResetSkillEffectsClampsToCatalogCeiling(t *testing.T) {
	cat, err := content.Load("../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	m := NewModifiers()
	// Simulate a corrupted save that over-accumulated.
	m.skill["gatheringEfficiency"] = 0.9
	m.skill["gatheringEnergyCost"] = -0.8
	m.skill["bogusEffect"] = 2.0

	m.ResetSkillEffects(cat)

	// efficient_gathering: 0.15 per level, max level 3.
	if got := m.SkillModifier("gatheringEfficiency"); got != 0.45 {
		t.Fatalf("gatheringEfficiency = %v, want 0.45", got)
	}
	// conservation: -0.1 per level, max level 2.
	if got := m.SkillModifier("gatheringEnergyCost"); got != -0.2 {
		t.Fatalf("gatheringEnergyCost = %v, want -0.2", got)
	}
	if got := m.SkillModifier("bogusEffect"); got != 0 {
		t.Fatalf("unknown effect survived reset: %v", got)
	}
}

func TestWeatherMultiplierDefaultsToNeutral(t *testing.T) {
	m := NewModifiers()
	if got := m.WeatherMultiplier("gatheringEfficiency"); got != 1.0 {
		t.Fatalf("empty weather multiplier = %v, want 1.0", got)
	}
	m.SetWeather(map[string]float64{"gatheringEfficiency": 0.7})
	if got := m.WeatherMultiplier("gatheringEfficiency"); got != 0.7 {
		t.Fatalf("weather multiplier = %v, want 0.7", got)
	}
}

func TestRestoreSkillEffectsRebuildsFromNodeLevels(t *testing.T) {
	cat, err := content.Load("../../configs")
	if err != nil {
		t.Fatalf("load catalogs: %v", err)
	}
	m := NewModifiers()
	m.RestoreSkillEffects(map[string]int{
		"efficient_gathering": 2,
		"conservation":        1,
		"removed_node":        3,
	}, cat)

	if got := m.SkillModifier("gatheringEfficiency"); got != 0.3 {
		t.Fatalf("gatheringEfficiency = %v, want 0.3", got)
	}
	if got := m.SkillModifier("gatheringEnergyCost"); got != -0.1 {
		t.Fatalf("gatheringEnergyCost = %v, want -0.1", got)
	}
	if got := m.NodeLevel("removed_node"); got != 0 {
		t.Fatalf("dropped node kept level %d", got)
	}
}
