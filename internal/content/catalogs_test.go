package content

import (
	"encoding/json"
	"testing"
)

func load(t *testing.T) *Catalogs {
	t.Helper()
	c, err := Load("../../configs")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return c
}

func TestLoadValidatesAndIndexes(t *testing.T) {
	c := load(t)

	if len(c.Resources) == 0 || len(c.Recipes) == 0 || len(c.Events) == 0 {
		t.Fatalf("catalogs incomplete: %d resources, %d recipes, %d events",
			len(c.Resources), len(c.Recipes), len(c.Events))
	}

	r, ok := c.RecipeByID("gather_food")
	if !ok {
		t.Fatalf("gather_food missing")
	}
	if r.Category != CategoryGathering {
		t.Fatalf("category = %q", r.Category)
	}
	if r.Inputs[EnergyResource] != 10 {
		t.Fatalf("energy input = %d, want 10", r.Inputs[EnergyResource])
	}

	if _, ok := c.RecipeByID("nonexistent"); ok {
		t.Fatalf("lookup invented a recipe")
	}
	if !c.KnownResource("tech_fragment") {
		t.Fatalf("tech_fragment unknown")
	}
	if got := c.ResourceName("rare_herb"); got != "rare herb" {
		t.Fatalf("ResourceName = %q", got)
	}
	if got := c.ResourceName("mystery"); got != "mystery" {
		t.Fatalf("unknown id fallback = %q", got)
	}
}

func TestSkillNodeLookups(t *testing.T) {
	c := load(t)
	node, ok := c.SkillNodeByID("efficient_gathering")
	if !ok {
		t.Fatalf("efficient_gathering missing")
	}
	if node.MaxLevel != 3 {
		t.Fatalf("max level = %d, want 3", node.MaxLevel)
	}
	branch, ok := c.SkillNodeBranch("efficient_gathering")
	if !ok || branch != "gathering" {
		t.Fatalf("branch = %q, %v", branch, ok)
	}
}

func TestEffectCeilingSumsAcrossNodes(t *testing.T) {
	c := load(t)
	// efficient_gathering: 0.15 x 3 levels, no other node grants it.
	ceil, ok := c.EffectCeiling("gatheringEfficiency")
	if !ok || ceil != 0.45 {
		t.Fatalf("ceiling = %v, %v, want 0.45", ceil, ok)
	}
	// conservation: -0.1 x 2 levels.
	ceil, ok = c.EffectCeiling("gatheringEnergyCost")
	if !ok || ceil != -0.2 {
		t.Fatalf("ceiling = %v, %v, want -0.2", ceil, ok)
	}
	if _, ok := c.EffectCeiling("noSuchEffect"); ok {
		t.Fatalf("ceiling found for unknown effect")
	}
}

func TestBuildingLevelLookup(t *testing.T) {
	c := load(t)
	lvl, ok := c.BuildingLevel("shelter", 2)
	if !ok {
		t.Fatalf("shelter level 2 missing")
	}
	if lvl.Effects["maxEnergy"] != 20 {
		t.Fatalf("maxEnergy = %v, want 20", lvl.Effects["maxEnergy"])
	}
	if _, ok := c.BuildingLevel("shelter", 9); ok {
		t.Fatalf("found a level that does not exist")
	}
}

func TestOutputAcceptsBothForms(t *testing.T) {
	var fixed Output
	if err := json.Unmarshal([]byte(`7`), &fixed); err != nil {
		t.Fatalf("fixed form: %v", err)
	}
	if !fixed.Fixed() || fixed.Min != 7 {
		t.Fatalf("fixed = %+v", fixed)
	}

	var ranged Output
	if err := json.Unmarshal([]byte(`[5, 15]`), &ranged); err != nil {
		t.Fatalf("range form: %v", err)
	}
	if ranged.Min != 5 || ranged.Max != 15 {
		t.Fatalf("range = %+v", ranged)
	}

	var bad Output
	if err := json.Unmarshal([]byte(`[15, 5]`), &bad); err == nil {
		t.Fatalf("inverted range accepted")
	}
}

func TestEffectValueAcceptsNumbersAndFlags(t *testing.T) {
	var num EffectValue
	if err := json.Unmarshal([]byte(`0.15`), &num); err != nil {
		t.Fatalf("number form: %v", err)
	}
	if num.IsFlag || num.Number != 0.15 {
		t.Fatalf("number = %+v", num)
	}

	var flag EffectValue
	if err := json.Unmarshal([]byte(`true`), &flag); err != nil {
		t.Fatalf("flag form: %v", err)
	}
	if !flag.IsFlag || !flag.Flag {
		t.Fatalf("flag = %+v", flag)
	}
}

func TestTuningDefaultsSurviveMissingFile(t *testing.T) {
	tun, err := LoadTuning("no/such/tuning.yaml")
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	// Even on error the caller gets usable defaults.
	if tun.MinutesPerSecond != 1 || tun.CapCeiling != 200 {
		t.Fatalf("defaults not returned: %+v", tun)
	}
}
