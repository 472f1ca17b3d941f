package engine

import (
	"sort"

	"github.com/jberndt/longwinter/internal/content"
)

// triggerRandomEvent picks one weighted event from the catalog entries
// the current day has unlocked and applies its effect branch.
func (s *Simulation) triggerRandomEvent() {
	var pool []content.EventDef
	var total float64
	for _, e := range s.Content.Events {
		if s.Clock.Day >= e.MinDay {
			pool = append(pool, e)
			total += e.Weight
		}
	}
	if len(pool) == 0 || total <= 0 {
		return
	}

	roll := s.rng.Float() * total
	picked := pool[len(pool)-1]
	for _, e := range pool {
		if roll < e.Weight {
			picked = e
			break
		}
		roll -= e.Weight
	}

	s.log.Info("random event", "event", picked.ID, "day", s.Clock.Day)
	s.applyEvent(picked)
	if s.Player.Health <= 0 {
		s.gameOver("Misfortune found you unprepared.")
	}
}

// applyEvent resolves whichever branch type the event definition carries.
func (s *Simulation) applyEvent(e content.EventDef) {
	switch {
	case e.Outcome != nil:
		s.applyOutcome(*e.Outcome)
	case e.Skill != nil:
		if s.Skills[e.Skill.Skill] >= e.Skill.Level {
			s.applyOutcome(e.Skill.Success)
		} else {
			s.applyOutcome(e.Skill.Failure)
		}
	case e.Item != nil:
		if s.Resources.Consume(e.Item.Resource, e.Item.Amount) {
			s.applyOutcome(e.Item.Has)
		} else {
			s.applyOutcome(e.Item.Lacks)
		}
	case e.Shelter != nil:
		if s.buildingLevelOf(e.Shelter.Building) >= e.Shelter.MinLevel {
			s.applyOutcome(e.Shelter.Protected)
		} else {
			s.applyOutcome(e.Shelter.Exposed)
		}
	}
}

// applyOutcome writes an event outcome's state delta: log line first,
// then grants, costs, vitals, and skill experience.
func (s *Simulation) applyOutcome(o content.Outcome) {
	if o.Log != "" {
		s.logf("%s", o.Log)
	}
	for _, res := range sortedCostKeys(o.Grants) {
		s.grantOutput(res, o.Grants[res])
	}
	for _, res := range sortedCostKeys(o.Costs) {
		if taken := s.Resources.Drain(res, o.Costs[res]); taken > 0 {
			s.logf("Lost %d %s.", taken, s.Content.ResourceName(res))
		}
	}
	if o.Health > 0 {
		s.Player.heal(float64(o.Health))
	} else if o.Health < 0 {
		s.Player.damage(float64(-o.Health))
	}
	if o.Energy > 0 {
		s.Player.restoreEnergy(float64(o.Energy))
	} else if o.Energy < 0 {
		s.Player.spendEnergy(float64(-o.Energy))
	}
	for _, skill := range sortedCostKeys(o.SkillExp) {
		s.AddSkillExp(skill, o.SkillExp[skill])
	}
}

func sortedCostKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
