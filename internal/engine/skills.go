package engine

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnknownNode    = errors.New("unknown skill node")
	ErrNodeLocked     = errors.New("skill node requirements not met")
	ErrNodeMaxed      = errors.New("skill node already at max level")
	ErrNotEnoughExp   = errors.New("not enough experience")
)

// AddSkillExp runs the probabilistic level-up roll for a trainable
// skill. The chance per point of experience shrinks with the square root
// of the current level, so early levels come fast and late ones crawl.
func (s *Simulation) AddSkillExp(skill string, exp int) {
	level, ok := s.Skills[skill]
	if !ok || exp <= 0 {
		return
	}
	chance := math.Min(1, 0.1*float64(exp)/math.Sqrt(float64(level)))
	if !s.rng.Chance(chance) {
		return
	}
	s.Skills[skill] = level + 1
	s.logf("Your %s skill rises to %d.", skill, level+1)
	if (level+1)%5 == 0 {
		s.applySkillMilestone(skill, level+1)
	}
}

// applySkillMilestone fires every fifth skill level. The lasting stat
// changes all flow through the full rebuild so they never compound.
func (s *Simulation) applySkillMilestone(skill string, level int) {
	switch skill {
	case "gathering":
		s.logf("Long days of foraging have built your endurance.")
	case "combat":
		s.logf("You feel tougher than you were.")
	case "survival":
		s.logf("You make better use of every store you have.")
	case "crafting":
		s.logf("Your hands know their work now.")
	}
	s.RebuildBuildingEffects()
	if skill == "combat" {
		s.Player.heal(10)
	}
}

// UnlockSkillNode raises a skill tree node by one level, spending player
// experience and applying the node's effects through the modifier
// pipeline.
func (s *Simulation) UnlockSkillNode(nodeID string) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	node, ok := s.Content.SkillNodeByID(nodeID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, nodeID)
	}
	branch, _ := s.Content.SkillNodeBranch(nodeID)

	next := s.Modifiers.NodeLevel(nodeID) + 1
	if next > node.MaxLevel {
		return fmt.Errorf("%w: %s", ErrNodeMaxed, nodeID)
	}
	if req := node.Requires; req != nil {
		if req.SkillLevel > 0 && s.Skills[branch] < req.SkillLevel {
			s.logf("You need more %s experience before learning %s.", branch, node.Name)
			return fmt.Errorf("%w: %s needs %s %d", ErrNodeLocked, nodeID, branch, req.SkillLevel)
		}
		for dep, lvl := range req.Nodes {
			if s.Modifiers.NodeLevel(dep) < lvl {
				s.logf("%s builds on techniques you have not learned yet.", node.Name)
				return fmt.Errorf("%w: %s needs %s %d", ErrNodeLocked, nodeID, dep, lvl)
			}
		}
	}

	expCost := node.Cost["exp"]
	if s.Player.Exp < expCost {
		s.logf("Not enough experience to learn %s.", node.Name)
		return ErrNotEnoughExp
	}
	resourceCost := make(map[string]int)
	for id, n := range node.Cost {
		if id != "exp" && n > 0 {
			resourceCost[id] = n
		}
	}
	if !s.Resources.ConsumeAll(resourceCost) {
		s.logf("Not enough materials to learn %s.", node.Name)
		return ErrMissingInputs
	}
	s.Player.Exp -= expCost

	s.Modifiers.ApplySkillEffect(nodeID, node.Effects, next)
	s.RebuildBuildingEffects()
	s.refreshWeatherEffects(false)
	if next > 1 {
		s.logf("%s improved to rank %d.", node.Name, next)
	} else {
		s.logf("Learned %s.", node.Name)
	}
	return nil
}

// skillVitalsBonus converts maxHealth and maxMental fractions from
// unlocked skill nodes into flat bonuses on the catalog baseline.
func (s *Simulation) skillVitalsBonus() (health, mental float64) {
	base := newPlayer()
	for nodeID, lvl := range s.Modifiers.GrantedLevels() {
		node, ok := s.Content.SkillNodeByID(nodeID)
		if !ok {
			continue
		}
		if v, ok := node.Effects["maxHealth"]; ok && !v.IsFlag {
			health += math.Floor(base.MaxHealth * v.Number * float64(lvl))
		}
		if v, ok := node.Effects["maxMental"]; ok && !v.IsFlag {
			mental += math.Floor(base.MaxMental * v.Number * float64(lvl))
		}
	}
	return health, mental
}
