// Package archetype provides the concrete fighter behaviours plugged into
// combat.Combatant.
package archetype

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/brawl/internal/game/combat"
)

// Shoto is the all-rounder: stock multipliers, stock resource economy.
type Shoto struct {
	combat.DefaultBehavior
}

// Rushdown hits harder with light attacks and builds meter on offence.
type Rushdown struct {
	combat.DefaultBehavior
}

// DamageMultiplier boosts LightAttack to 125%.
func (Rushdown) DamageMultiplier(_ *combat.Combatant, attack, _ combat.Move) int {
	if attack == combat.LightAttack {
		return 125
	}
	return 100
}

// OnAttackLanded grants 15 resource.
func (Rushdown) OnAttackLanded(self, _ *combat.Combatant, _ int) {
	self.AdjustResource(15)
}

// Speedster favours jabs over committal heavies.
type Speedster struct {
	combat.DefaultBehavior
}

// DamageMultiplier is 120% for LightAttack and 90% for HeavyAttack.
func (Speedster) DamageMultiplier(_ *combat.Combatant, attack, _ combat.Move) int {
	switch attack {
	case combat.LightAttack:
		return 120
	case combat.HeavyAttack:
		return 90
	default:
		return 100
	}
}

func (Speedster) OnAttackLanded(self, _ *combat.Combatant, _ int) { self.AdjustResource(12) }
func (Speedster) OnDamageTaken(self, _ *combat.Combatant, _ int)  { self.AdjustResource(4) }

// Zoner lands strong heavies and builds meter evenly.
type Zoner struct {
	combat.DefaultBehavior
}

// DamageMultiplier boosts HeavyAttack to 120%.
func (Zoner) DamageMultiplier(_ *combat.Combatant, attack, _ combat.Move) int {
	if attack == combat.HeavyAttack {
		return 120
	}
	return 100
}

func (Zoner) OnAttackLanded(self, _ *combat.Combatant, _ int) { self.AdjustResource(8) }
func (Zoner) OnDamageTaken(self, _ *combat.Combatant, _ int)  { self.AdjustResource(8) }

// Grappler trades jab speed for crushing heavies. Its special is a
// comeback tool: usable only at or below half health or with a full bar.
type Grappler struct {
	combat.DefaultBehavior
}

// DamageMultiplier is 140% for HeavyAttack and 80% for LightAttack.
func (Grappler) DamageMultiplier(_ *combat.Combatant, attack, _ combat.Move) int {
	switch attack {
	case combat.HeavyAttack:
		return 140
	case combat.LightAttack:
		return 80
	default:
		return 100
	}
}

// CanUseSpecialMove adds the health-or-full-bar gate to the resource check.
func (g Grappler) CanUseSpecialMove(self *combat.Combatant) bool {
	if !g.DefaultBehavior.CanUseSpecialMove(self) {
		return false
	}
	return self.Health()*2 <= self.MaxHealth() || self.Resource() == self.ResourceMax()
}

// Tank deals slightly less damage and feeds on punishment.
type Tank struct {
	combat.DefaultBehavior
}

// DamageMultiplier is 90% for every attack, special included.
func (Tank) DamageMultiplier(_ *combat.Combatant, _, _ combat.Move) int { return 90 }

// OnDamageTaken grants 12 resource.
func (Tank) OnDamageTaken(self, _ *combat.Combatant, _ int) { self.AdjustResource(12) }

var constructors = map[string]func(combat.SpecialMove) combat.Archetype{
	"shoto":     func(s combat.SpecialMove) combat.Archetype { return Shoto{combat.DefaultBehavior{Special: s}} },
	"rushdown":  func(s combat.SpecialMove) combat.Archetype { return Rushdown{combat.DefaultBehavior{Special: s}} },
	"speedster": func(s combat.SpecialMove) combat.Archetype { return Speedster{combat.DefaultBehavior{Special: s}} },
	"zoner":     func(s combat.SpecialMove) combat.Archetype { return Zoner{combat.DefaultBehavior{Special: s}} },
	"grappler":  func(s combat.SpecialMove) combat.Archetype { return Grappler{combat.DefaultBehavior{Special: s}} },
	"tank":      func(s combat.SpecialMove) combat.Archetype { return Tank{combat.DefaultBehavior{Special: s}} },
}

// New returns the archetype registered under id with the given special move.
//
// Postcondition: Returns a non-nil Archetype or an error naming the unknown id.
func New(id string, special combat.SpecialMove) (combat.Archetype, error) {
	ctor, ok := constructors[id]
	if !ok {
		return nil, fmt.Errorf("archetype: unknown archetype %q (known: %v)", id, IDs())
	}
	return ctor(special), nil
}

// IDs returns the registered archetype ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(constructors))
	for id := range constructors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
