package content

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Catalogs holds every loaded configuration table with id indexes.
type Catalogs struct {
	Resources    []ResourceDef
	Recipes      []Recipe
	Technologies []Technology
	Buildings    []BuildingDef
	SkillTree    map[string]SkillBranch
	Events       []EventDef

	resourceByID map[string]ResourceDef
	recipeByID   map[string]Recipe
	techByID     map[string]Technology
	buildingByID map[string]BuildingDef
	nodeByID     map[string]SkillNode
	nodeBranch   map[string]string
}

// Load reads and validates every catalog file under configDir.
// Any schema violation or dangling reference fails the whole load.
func Load(configDir string) (*Catalogs, error) {
	var c Catalogs

	if err := loadCatalog(filepath.Join(configDir, "resources.json"), resourcesSchema, &c.Resources); err != nil {
		return nil, err
	}
	if err := loadCatalog(filepath.Join(configDir, "recipes.json"), recipesSchema, &c.Recipes); err != nil {
		return nil, err
	}
	if err := loadCatalog(filepath.Join(configDir, "technologies.json"), technologiesSchema, &c.Technologies); err != nil {
		return nil, err
	}
	if err := loadCatalog(filepath.Join(configDir, "buildings.json"), buildingsSchema, &c.Buildings); err != nil {
		return nil, err
	}
	if err := loadCatalog(filepath.Join(configDir, "skilltree.json"), skillTreeSchema, &c.SkillTree); err != nil {
		return nil, err
	}
	if err := loadCatalog(filepath.Join(configDir, "events.json"), eventsSchema, &c.Events); err != nil {
		return nil, err
	}

	c.buildIndexes()
	if err := c.checkReferences(); err != nil {
		return nil, err
	}
	return &c, nil
}

// loadCatalog reads one JSON file, validates it against its schema,
// then unmarshals into out.
func loadCatalog(path, schema string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	sch, err := jsonschema.CompileString(filepath.Base(path), schema)
	if err != nil {
		return fmt.Errorf("compile schema for %s: %w", filepath.Base(path), err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("validate %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (c *Catalogs) buildIndexes() {
	c.resourceByID = make(map[string]ResourceDef, len(c.Resources))
	for _, r := range c.Resources {
		c.resourceByID[r.ID] = r
	}
	c.recipeByID = make(map[string]Recipe, len(c.Recipes))
	for _, r := range c.Recipes {
		c.recipeByID[r.ID] = r
	}
	c.techByID = make(map[string]Technology, len(c.Technologies))
	for _, t := range c.Technologies {
		c.techByID[t.ID] = t
	}
	c.buildingByID = make(map[string]BuildingDef, len(c.Buildings))
	for _, b := range c.Buildings {
		c.buildingByID[b.ID] = b
	}
	c.nodeByID = make(map[string]SkillNode)
	c.nodeBranch = make(map[string]string)
	for branchID, branch := range c.SkillTree {
		for _, node := range branch.Skills {
			c.nodeByID[node.ID] = node
			c.nodeBranch[node.ID] = branchID
		}
	}
}

// checkReferences verifies cross-catalog ids so the engine never has to
// re-check them at use sites.
func (c *Catalogs) checkReferences() error {
	for _, r := range c.Recipes {
		for res := range r.Inputs {
			if res != EnergyResource && !c.KnownResource(res) {
				return fmt.Errorf("recipe %s: unknown input resource %q", r.ID, res)
			}
		}
		for res := range r.Outputs {
			// "research" is the research system's pseudo-output.
			if res != "research" && !c.KnownResource(res) {
				return fmt.Errorf("recipe %s: unknown output resource %q", r.ID, res)
			}
		}
		if r.TechRequired != "" {
			if _, ok := c.techByID[r.TechRequired]; !ok {
				return fmt.Errorf("recipe %s: unknown technology %q", r.ID, r.TechRequired)
			}
		}
	}
	for _, b := range c.Buildings {
		for _, l := range b.Levels {
			for res := range l.Cost {
				if !c.KnownResource(res) {
					return fmt.Errorf("building %s level %d: unknown cost resource %q", b.ID, l.Level, res)
				}
			}
		}
	}
	return nil
}

// RecipeByID looks up a recipe.
func (c *Catalogs) RecipeByID(id string) (Recipe, bool) {
	r, ok := c.recipeByID[id]
	return r, ok
}

// ResourceByID looks up a resource definition.
func (c *Catalogs) ResourceByID(id string) (ResourceDef, bool) {
	r, ok := c.resourceByID[id]
	return r, ok
}

// KnownResource reports whether the ledger tracks this resource id.
func (c *Catalogs) KnownResource(id string) bool {
	_, ok := c.resourceByID[id]
	return ok
}

// TechnologyByID looks up a technology.
func (c *Catalogs) TechnologyByID(id string) (Technology, bool) {
	t, ok := c.techByID[id]
	return t, ok
}

// BuildingByID looks up a building definition.
func (c *Catalogs) BuildingByID(id string) (BuildingDef, bool) {
	b, ok := c.buildingByID[id]
	return b, ok
}

// SkillNodeByID looks up a skill tree node across all branches.
func (c *Catalogs) SkillNodeByID(id string) (SkillNode, bool) {
	n, ok := c.nodeByID[id]
	return n, ok
}

// SkillNodeBranch returns the branch id owning the given node.
func (c *Catalogs) SkillNodeBranch(id string) (string, bool) {
	b, ok := c.nodeBranch[id]
	return b, ok
}

// BuildingLevel resolves one level record of a building definition.
func (c *Catalogs) BuildingLevel(buildingID string, level int) (BuildingLevel, bool) {
	b, ok := c.buildingByID[buildingID]
	if !ok {
		return BuildingLevel{}, false
	}
	return b.LevelConfig(level)
}

// ResourceName returns the display name for a resource id, falling back
// to the id itself.
func (c *Catalogs) ResourceName(id string) string {
	if r, ok := c.resourceByID[id]; ok {
		return r.Name
	}
	return id
}

// EffectCeiling scans the skill tree for a numeric effect id and returns
// the theoretical maximum it can legitimately reach: the per-level value
// times the owning node's max level, summed across every node granting it.
func (c *Catalogs) EffectCeiling(effectID string) (float64, bool) {
	var ceiling float64
	found := false
	for _, branch := range c.SkillTree {
		for _, node := range branch.Skills {
			v, ok := node.Effects[effectID]
			if !ok || v.IsFlag {
				continue
			}
			ceiling += v.Number * float64(node.MaxLevel)
			found = true
		}
	}
	// Tuning values are two-decimal numbers; keep the sum on that grid
	// so clamping never shaves an epsilon off a legitimate total.
	return math.Round(ceiling*100) / 100, found
}
