package engine

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/jberndt/longwinter/internal/content"
	"github.com/jberndt/longwinter/internal/weather"
)

// Scheduler gate failures. Each also leaves a line in the event log so
// the player sees why nothing happened.
var (
	ErrGameOver        = errors.New("the run has ended")
	ErrUnknownRecipe   = errors.New("unknown recipe")
	ErrTechLocked      = errors.New("technology not researched")
	ErrSkillTooLow     = errors.New("skill level too low")
	ErrNotEnoughEnergy = errors.New("not enough energy")
	ErrMissingInputs   = errors.New("missing input resources")
	ErrUnknownActivity = errors.New("unknown activity")
)

// Activity is one scheduled unit of work. Costs are charged when the
// activity is accepted; a queued activity has already paid and waits for
// a slot. One activity second equals one game minute.
type Activity struct {
	ID         string           `json:"id"`
	RecipeID   string           `json:"recipe_id"`
	Name       string           `json:"name"`
	Category   content.Category `json:"category"`
	EnergyCost int              `json:"energy_cost"`
	Inputs     map[string]int   `json:"inputs,omitempty"`
	Duration   int              `json:"duration_sec"`
	StartedAt  int64            `json:"started_at"`
	DueAt      int64            `json:"due_at"`
	Queued     bool             `json:"queued"`

	heapIndex int
}

// dueHeap orders running activities by completion time.
type dueHeap []*Activity

func (h dueHeap) Len() int           { return len(h) }
func (h dueHeap) Less(i, j int) bool { return h[i].DueAt < h[j].DueAt }
func (h dueHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].heapIndex = i; h[j].heapIndex = j }
func (h *dueHeap) Push(x any)        { a := x.(*Activity); a.heapIndex = len(*h); *h = append(*h, a) }
func (h *dueHeap) Pop() any {
	old := *h
	n := len(old)
	a := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return a
}

// slotLimit is how many activities of a category may run at once.
// Gathering and crafting scale with player level; research and
// exploration are exclusive.
func (s *Simulation) slotLimit(cat content.Category) int {
	switch cat {
	case content.CategoryResearch, content.CategoryExploration:
		return 1
	default:
		return s.Player.Level
	}
}

func (s *Simulation) runningInCategory(cat content.Category) int {
	n := 0
	for _, a := range s.current {
		if a.Category == cat {
			n++
		}
	}
	return n
}

// adjustedEnergyCost applies the energy discount modifiers to a recipe's
// base energy cost. The result never drops below 1.
func (s *Simulation) adjustedEnergyCost(r content.Recipe) int {
	base := r.Inputs[content.EnergyResource]
	if base <= 0 {
		return 0
	}
	cost := float64(base)
	if r.Category == content.CategoryGathering {
		if g := s.Modifiers.Modifier("gatheringEnergyCost"); g < 0 {
			cost = math.Floor(cost * (1 + g))
		}
	}
	if e := s.Modifiers.Modifier("energyConsumption"); e < 0 {
		cost = math.Floor(cost * (1 + e))
	}
	cost = math.Floor(cost * s.Modifiers.WeatherMultiplier(weather.EffEnergy))
	if cost < 1 {
		cost = 1
	}
	return int(cost)
}

// adjustedDuration divides the base duration by the category's speed
// modifier, never below one second.
func (s *Simulation) adjustedDuration(r content.Recipe) int {
	speed := 0.0
	switch r.Category {
	case content.CategoryGathering:
		speed = s.Modifiers.Modifier("gatheringEfficiency")
	case content.CategoryCrafting:
		speed = s.Modifiers.Modifier("craftingSpeed")
	case content.CategoryResearch:
		speed = s.Modifiers.Modifier("researchSpeed")
	}
	if speed <= -1 {
		speed = 0
	}
	d := int(math.Floor(float64(r.DurationSec) / (1 + speed)))
	if d < 1 {
		d = 1
	}
	return d
}

// StartActivity validates every gate for a recipe, charges its costs
// transactionally, and either begins it or queues it behind a full slot
// pool. The returned activity is the live scheduler record.
func (s *Simulation) StartActivity(recipeID string) (*Activity, error) {
	if s.State != StatePlaying {
		return nil, ErrGameOver
	}
	r, ok := s.Content.RecipeByID(recipeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRecipe, recipeID)
	}
	if r.TechRequired != "" && !s.HasResearched(r.TechRequired) {
		s.logf("You lack the knowledge for %s.", r.Name)
		return nil, fmt.Errorf("%w: %s needs %s", ErrTechLocked, recipeID, r.TechRequired)
	}
	for skill, lvl := range r.SkillRequired {
		if s.Skills[skill] < lvl {
			s.logf("Your %s skill is too low for %s.", skill, r.Name)
			return nil, fmt.Errorf("%w: %s needs %s %d", ErrSkillTooLow, recipeID, skill, lvl)
		}
	}

	energyCost := s.adjustedEnergyCost(r)
	inputs := make(map[string]int)
	for id, n := range r.Inputs {
		if id != content.EnergyResource && n > 0 {
			inputs[id] = n
		}
	}

	// Check everything before committing anything.
	if float64(energyCost) > s.Player.Energy {
		s.logf("Too exhausted to start %s.", r.Name)
		return nil, ErrNotEnoughEnergy
	}
	if !s.Resources.CanAfford(inputs) {
		s.logf("Not enough materials for %s.", r.Name)
		return nil, ErrMissingInputs
	}
	s.Player.spendEnergy(float64(energyCost))
	s.Resources.ConsumeAll(inputs)

	a := &Activity{
		ID:         uuid.NewString(),
		RecipeID:   r.ID,
		Name:       r.Name,
		Category:   r.Category,
		EnergyCost: energyCost,
		Inputs:     inputs,
	}
	if s.runningInCategory(r.Category) >= s.slotLimit(r.Category) {
		a.Queued = true
		s.pending = append(s.pending, a)
		s.logf("%s queued.", r.Name)
		return a, nil
	}
	s.beginActivity(a, r)
	return a, nil
}

// beginActivity moves a paid activity into the running set and schedules
// its completion on the due heap.
func (s *Simulation) beginActivity(a *Activity, r content.Recipe) {
	a.Queued = false
	a.Duration = s.adjustedDuration(r)
	a.StartedAt = s.absMinute
	a.DueAt = s.absMinute + int64(a.Duration)
	s.current = append(s.current, a)
	heap.Push(&s.due, a)
	s.logf("Started %s.", a.Name)
}

// CancelActivity aborts a running or queued activity and refunds its
// energy and material costs in full.
func (s *Simulation) CancelActivity(id string) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	for i, a := range s.pending {
		if a.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.refundActivity(a)
			s.logf("Cancelled %s.", a.Name)
			return nil
		}
	}
	for i, a := range s.current {
		if a.ID == id {
			s.current = append(s.current[:i], s.current[i+1:]...)
			heap.Remove(&s.due, a.heapIndex)
			s.refundActivity(a)
			s.logf("Cancelled %s.", a.Name)
			s.promotePending()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownActivity, id)
}

func (s *Simulation) refundActivity(a *Activity) {
	s.Player.restoreEnergy(float64(a.EnergyCost))
	for id, n := range a.Inputs {
		s.Resources.Add(id, n)
	}
}

// completeDue pops and resolves every activity whose completion time has
// been reached. Called once per simulated minute.
func (s *Simulation) completeDue() {
	for len(s.due) > 0 && s.due[0].DueAt <= s.absMinute {
		a := heap.Pop(&s.due).(*Activity)
		for i, cur := range s.current {
			if cur.ID == a.ID {
				s.current = append(s.current[:i], s.current[i+1:]...)
				break
			}
		}
		s.completeActivity(a)
		s.promotePending()
	}
}

// promotePending starts queued activities in FIFO order while their
// category has a free slot.
func (s *Simulation) promotePending() {
	for i := 0; i < len(s.pending); {
		a := s.pending[i]
		r, ok := s.Content.RecipeByID(a.RecipeID)
		if !ok {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			s.refundActivity(a)
			continue
		}
		if s.runningInCategory(a.Category) >= s.slotLimit(a.Category) {
			i++
			continue
		}
		s.pending = append(s.pending[:i], s.pending[i+1:]...)
		s.beginActivity(a, r)
	}
}

// completeActivity resolves outputs with the category's yield pipeline
// and grants skill experience.
func (s *Simulation) completeActivity(a *Activity) {
	r, ok := s.Content.RecipeByID(a.RecipeID)
	if !ok {
		return
	}
	s.logf("Finished %s.", a.Name)

	switch r.Category {
	case content.CategoryGathering:
		s.resolveGathering(r)
	case content.CategoryCrafting:
		s.resolveCrafting(r)
	case content.CategoryResearch:
		s.resolveResearch(r)
	case content.CategoryExploration:
		s.resolveExploration(r)
	}

	for skill := range r.SkillRequired {
		s.AddSkillExp(skill, 1)
	}
}

func (s *Simulation) rollOutput(o content.Output) int {
	if o.Fixed() {
		return o.Min
	}
	return s.rng.Between(o.Min, o.Max)
}

func (s *Simulation) resolveGathering(r content.Recipe) {
	eff := s.Modifiers.Modifier("gatheringEfficiency")
	yield := s.Modifiers.Modifier("gatheringYield")
	wmult := s.Modifiers.WeatherMultiplier(weather.EffGathering)
	for _, res := range sortedOutputKeys(r.Outputs) {
		amount := float64(s.rollOutput(r.Outputs[res]))
		if eff > 0 {
			amount *= 1 + eff
		}
		if yield > 0 {
			amount *= 1 + yield
		}
		amount = math.Floor(amount * wmult)
		s.grantOutput(res, int(amount))
		if res == "herb" {
			if c := s.Modifiers.Modifier("rareHerbChance"); c > 0 && s.rng.Chance(c) {
				s.grantOutput("rare_herb", 1)
				s.logf("Among the herbs you spot something rare.")
			}
		}
	}
}

func (s *Simulation) resolveCrafting(r content.Recipe) {
	quality := s.Modifiers.Modifier("craftingQuality")
	outputs := make(map[string]int, len(r.Outputs))
	for _, res := range sortedOutputKeys(r.Outputs) {
		amount := float64(s.rollOutput(r.Outputs[res]))
		if quality > 0 {
			amount = math.Floor(amount * (1 + quality))
		}
		outputs[res] = int(amount)
	}
	if c := s.Modifiers.Modifier("extraCraftingOutput"); c > 0 && s.rng.Chance(c) {
		keys := sortedOutputKeys(r.Outputs)
		bonus := keys[s.rng.Pick(len(keys))]
		outputs[bonus]++
		s.logf("The work turned out better than expected.")
	}
	for _, res := range sortedOutputKeys(r.Outputs) {
		s.grantOutput(res, outputs[res])
	}
}

func (s *Simulation) resolveResearch(r content.Recipe) {
	for _, res := range sortedOutputKeys(r.Outputs) {
		if res == "research" {
			// Research points feed the technology tree, not the ledger.
			continue
		}
		amount := float64(s.rollOutput(r.Outputs[res]))
		if res == "tech_fragment" {
			if y := s.Modifiers.Modifier("techFragmentYield"); y > 0 {
				amount = math.Floor(amount * (1 + y))
			}
			if c := s.Modifiers.Modifier("breakthroughChance"); c > 0 && s.rng.Chance(c) {
				amount++
				s.logf("A sudden insight! Extra fragments recovered.")
			}
		}
		s.grantOutput(res, int(amount))
	}
}

func (s *Simulation) resolveExploration(r content.Recipe) {
	wmult := s.Modifiers.WeatherMultiplier(weather.EffExploration)
	for _, res := range sortedOutputKeys(r.Outputs) {
		amount := math.Floor(float64(s.rollOutput(r.Outputs[res])) * wmult)
		s.grantOutput(res, int(amount))
	}
	s.Player.ExplorationCount++
	s.Achievements.recordExploration(s)
}

// grantOutput credits a yield and keeps the lifetime collection counters.
func (s *Simulation) grantOutput(res string, amount int) {
	if amount <= 0 {
		return
	}
	if !s.Resources.Add(res, amount) {
		return
	}
	s.Achievements.recordCollected(s, res, amount)
	s.logf("Gained %d %s.", amount, s.Content.ResourceName(res))
}

// CurrentActivities returns copies of the running set in due order.
func (s *Simulation) CurrentActivities() []Activity {
	out := make([]Activity, 0, len(s.current))
	for _, a := range s.current {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueAt < out[j].DueAt })
	return out
}

// PendingActivities returns copies of the queue in FIFO order.
func (s *Simulation) PendingActivities() []Activity {
	out := make([]Activity, 0, len(s.pending))
	for _, a := range s.pending {
		out = append(out, *a)
	}
	return out
}

func sortedOutputKeys(outputs map[string]content.Output) []string {
	keys := make([]string, 0, len(outputs))
	for k := range outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
