package engine

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownQuest   = errors.New("unknown quest")
	ErrDuplicateQuest = errors.New("quest already accepted")
)

// Quest is a goal the host hands the survivor. Reward keys are either
// the pseudo-stats "exp", "maxHealth" and "maxEnergy" or a resource id.
type Quest struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Rewards     map[string]int `json:"rewards,omitempty"`
}

// AcceptQuest adds a quest to the active list. Duplicate ids are
// rejected, including ids already completed.
func (s *Simulation) AcceptQuest(q Quest) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	for _, active := range s.Quests {
		if active.ID == q.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateQuest, q.ID)
		}
	}
	for _, done := range s.Achievements.CompletedQuests {
		if done == q.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateQuest, q.ID)
		}
	}
	s.Quests = append(s.Quests, q)
	s.logf("New goal: %s.", q.Name)
	return nil
}

// CompleteQuest resolves an active quest and pays out its rewards.
func (s *Simulation) CompleteQuest(questID string) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	for i, q := range s.Quests {
		if q.ID != questID {
			continue
		}
		s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
		s.Achievements.CompletedQuests = append(s.Achievements.CompletedQuests, q.ID)
		s.logf("Goal achieved: %s.", q.Name)
		s.giveQuestRewards(q)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
}

// AbandonQuest drops an active quest without reward.
func (s *Simulation) AbandonQuest(questID string) error {
	if s.State != StatePlaying {
		return ErrGameOver
	}
	for i, q := range s.Quests {
		if q.ID == questID {
			s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
			s.logf("You set aside the goal of %s.", q.Name)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownQuest, questID)
}

func (s *Simulation) giveQuestRewards(q Quest) {
	for _, key := range sortedCostKeys(q.Rewards) {
		amount := q.Rewards[key]
		if amount <= 0 {
			continue
		}
		switch key {
		case "exp":
			s.GrantExp(amount)
			s.logf("Gained %d experience.", amount)
		case "maxHealth":
			s.Player.BonusMaxHealth += float64(amount)
			s.RebuildBuildingEffects()
			s.Player.heal(float64(amount))
			s.logf("You feel sturdier. Max health +%d.", amount)
		case "maxEnergy":
			s.Player.BonusMaxEnergy += float64(amount)
			s.RebuildBuildingEffects()
			s.Player.restoreEnergy(float64(amount))
			s.logf("You feel hardier. Max energy +%d.", amount)
		default:
			s.grantOutput(key, amount)
		}
	}
}
