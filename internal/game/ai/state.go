// Package ai implements CPU move selection for a fighter.
package ai

import "github.com/cory-johannsen/brawl/internal/game/combat"

// FighterState captures a fighter's decision-relevant state at choice time.
type FighterState struct {
	Name        string
	Health      int
	MaxHealth   int
	Resource    int
	ResourceMax int
	CanSpecial  bool
}

// HealthPercent returns current health as a percentage of MaxHealth; 0 if
// MaxHealth == 0.
func (f FighterState) HealthPercent() float64 {
	if f.MaxHealth <= 0 {
		return 0
	}
	return float64(f.Health) / float64(f.MaxHealth) * 100
}

// Snapshot reads c's current state.
//
// Precondition: c must be non-nil.
func Snapshot(c *combat.Combatant) FighterState {
	return FighterState{
		Name:        c.Name(),
		Health:      c.Health(),
		MaxHealth:   c.MaxHealth(),
		Resource:    c.Resource(),
		ResourceMax: c.ResourceMax(),
		CanSpecial:  c.CanUseSpecialMove(),
	}
}
