package engine

import "math"

// Player holds the survivor's vitals and progression. Health, energy and
// mental are tracked as floats because hourly recovery can be fractional;
// the API layer rounds for display.
type Player struct {
	Level     int     `json:"level"`
	Exp       int     `json:"exp"`
	ExpToNext int     `json:"exp_to_next"`
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Energy    float64 `json:"energy"`
	MaxEnergy float64 `json:"max_energy"`
	Mental    float64 `json:"mental"`
	MaxMental float64 `json:"max_mental"`

	// Permanent vitals bonuses from quest rewards, kept separate so the
	// full stat recompute can reapply them.
	BonusMaxHealth float64 `json:"bonus_max_health,omitempty"`
	BonusMaxEnergy float64 `json:"bonus_max_energy,omitempty"`

	Days             int `json:"days_survived"`
	ExplorationCount int `json:"exploration_count"`
}

func newPlayer() Player {
	return Player{
		Level:     1,
		Exp:       0,
		ExpToNext: 100,
		Health:    100,
		MaxHealth: 100,
		Energy:    100,
		MaxEnergy: 100,
		Mental:    100,
		MaxMental: 100,
	}
}

// GrantExp credits experience and resolves any level-ups. Each level
// raises the next threshold by half, grants +5 max health and energy,
// and fully restores both.
func (s *Simulation) GrantExp(amount int) {
	if amount <= 0 {
		return
	}
	p := &s.Player
	p.Exp += amount
	for p.Exp >= p.ExpToNext {
		p.Exp -= p.ExpToNext
		p.Level++
		p.ExpToNext = int(math.Floor(float64(p.ExpToNext) * 1.5))
		p.MaxHealth += 5
		p.Health = p.MaxHealth
		p.MaxEnergy += 5
		p.Energy = p.MaxEnergy
		s.logf("Reached level %d! Health and energy fully restored.", p.Level)
	}
}

// heal raises health, clamped to the current maximum.
func (p *Player) heal(amount float64) {
	if amount <= 0 {
		return
	}
	p.Health = math.Min(p.MaxHealth, p.Health+amount)
}

// restoreEnergy raises energy, clamped to the current maximum.
func (p *Player) restoreEnergy(amount float64) {
	if amount <= 0 {
		return
	}
	p.Energy = math.Min(p.MaxEnergy, p.Energy+amount)
}

// restoreMental raises mental, clamped to the current maximum.
func (p *Player) restoreMental(amount float64) {
	if amount <= 0 {
		return
	}
	p.Mental = math.Min(p.MaxMental, p.Mental+amount)
}

// damage lowers health, clamped at zero. The caller is responsible for
// checking the terminal condition afterwards.
func (p *Player) damage(amount float64) {
	if amount <= 0 {
		return
	}
	p.Health = math.Max(0, p.Health-amount)
}

// spendEnergy lowers energy, clamped at zero.
func (p *Player) spendEnergy(amount float64) {
	if amount <= 0 {
		return
	}
	p.Energy = math.Max(0, p.Energy-amount)
}
