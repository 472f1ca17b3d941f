package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownTech       = errors.New("unknown technology")
	ErrAlreadyResearched = errors.New("technology already researched")
	ErrPrereqMissing     = errors.New("prerequisite technology missing")
)

// ResearchTechnology unlocks a technology node, consuming its resource
// cost transactionally. Unlocked technologies gate recipes and buildings.
func (s *Simulation) ResearchTechnology(techID string) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	tech, ok := s.Content.TechnologyByID(techID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTech, techID)
	}
	if s.HasResearched(techID) {
		return fmt.Errorf("%w: %s", ErrAlreadyResearched, techID)
	}
	for _, req := range tech.Requirements {
		if !s.HasResearched(req) {
			s.logf("%s requires understanding you have not reached.", tech.Name)
			return fmt.Errorf("%w: %s needs %s", ErrPrereqMissing, techID, req)
		}
	}
	if !s.Resources.ConsumeAll(tech.Cost) {
		s.logf("Not enough materials to research %s.", tech.Name)
		return ErrMissingInputs
	}

	s.Researched = append(s.Researched, techID)
	s.logf("Research complete: %s.", tech.Name)
	s.log.Info("technology researched", "tech", techID, "day", s.Clock.Day)
	s.Achievements.recordResearch(s)
	return nil
}
