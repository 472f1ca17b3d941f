package engine

// Achievements tracks run milestones and the counters that feed them.
type Achievements struct {
	Unlocked           []string       `json:"unlocked"`
	HealthyDays        int            `json:"healthy_days"`
	ExplorationCount   int            `json:"exploration_count"`
	ResourcesCollected map[string]int `json:"resources_collected"`
	CompletedQuests    []string       `json:"completed_quests,omitempty"`
	TechsResearched    int            `json:"techs_researched"`
}

// trackedResources are the staples whose lifetime totals count toward
// the hoarder milestones.
var trackedResources = map[string]bool{
	"food":  true,
	"water": true,
	"wood":  true,
	"stone": true,
	"herb":  true,
	"metal": true,
}

func newAchievements() Achievements {
	return Achievements{
		ResourcesCollected: make(map[string]int),
	}
}

func (a *Achievements) has(id string) bool {
	for _, u := range a.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}

func (a *Achievements) unlock(s *Simulation, id, msg string) {
	if a.has(id) {
		return
	}
	a.Unlocked = append(a.Unlocked, id)
	s.logf("Milestone: %s", msg)
	s.log.Info("achievement unlocked", "id", id, "day", s.Clock.Day)
}

func (a *Achievements) recordFirstBuilding(s *Simulation) {
	a.unlock(s, "first_building", "You have raised your first structure.")
}

func (a *Achievements) recordExploration(s *Simulation) {
	a.ExplorationCount++
	if a.ExplorationCount >= 10 {
		a.unlock(s, "pathfinder", "Ten expeditions into the unknown.")
	}
}

func (a *Achievements) recordCollected(s *Simulation, res string, amount int) {
	if !trackedResources[res] {
		return
	}
	a.ResourcesCollected[res] += amount
	if a.ResourcesCollected[res] >= 100 {
		a.unlock(s, "hoarder_"+res, "A hundred "+s.Content.ResourceName(res)+" gathered over your stay.")
	}
}

func (a *Achievements) recordHealthyDay(s *Simulation) {
	a.HealthyDays++
	if a.HealthyDays >= 7 {
		a.unlock(s, "picture_of_health", "A full week in good health.")
	}
}

func (a *Achievements) recordExtremeWeather(s *Simulation) {
	a.unlock(s, "storm_hardened", "You have weathered the worst the sky can do.")
}

func (a *Achievements) recordYearSurvived(s *Simulation) {
	a.unlock(s, "full_circle", "The seasons have come all the way around.")
}

func (a *Achievements) recordResearch(s *Simulation) {
	a.TechsResearched++
	if a.TechsResearched >= 5 {
		a.unlock(s, "scholar", "Five fields of study mastered.")
	}
}

func (a *Achievements) recordDay(s *Simulation) {
	switch s.Player.Days {
	case 7:
		a.unlock(s, "first_week", "Seven days survived.")
	case 30:
		a.unlock(s, "settled_in", "A full month in the wilds.")
	case 100:
		a.unlock(s, "old_hand", "One hundred days and still standing.")
	}
}
