package archetype

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/brawl/internal/game/combat"
)

// HookCaller dispatches a named Lua hook in the VM registered under key.
// *scripting.Manager satisfies it.
type HookCaller interface {
	CallHook(key, hook string, args ...lua.LValue) (lua.LValue, error)
}

// Scripted wraps a base archetype and lets a Lua script override its damage
// multiplier and special eligibility. A hook that is undefined, errors or
// returns the wrong type leaves the base behaviour in force.
//
// Hooks:
//
//	damage_multiplier(attack, defense, base) -> number
//	can_use_special(resource, cost, health, max_health, base) -> boolean
type Scripted struct {
	combat.Archetype
	caller HookCaller
	key    string
}

// NewScripted wraps base with hooks from caller's VM under key.
//
// Precondition: base and caller must be non-nil.
func NewScripted(base combat.Archetype, caller HookCaller, key string) *Scripted {
	if base == nil || caller == nil {
		panic("archetype.NewScripted: base and caller must not be nil")
	}
	return &Scripted{Archetype: base, caller: caller, key: key}
}

// DamageMultiplier consults the damage_multiplier hook.
func (s *Scripted) DamageMultiplier(self *combat.Combatant, attack, defense combat.Move) int {
	base := s.Archetype.DamageMultiplier(self, attack, defense)
	ret, err := s.caller.CallHook(s.key, "damage_multiplier",
		lua.LString(attack.Key()), lua.LString(defense.Key()), lua.LNumber(base))
	if err != nil {
		return base
	}
	if n, ok := ret.(lua.LNumber); ok {
		return int(n)
	}
	return base
}

// CanUseSpecialMove consults the can_use_special hook. The hook can only
// veto a special the wrapped archetype allows.
func (s *Scripted) CanUseSpecialMove(self *combat.Combatant) bool {
	base := s.Archetype.CanUseSpecialMove(self)
	ret, err := s.caller.CallHook(s.key, "can_use_special",
		lua.LNumber(self.Resource()), lua.LNumber(self.SpecialMoveCost()),
		lua.LNumber(self.Health()), lua.LNumber(self.MaxHealth()),
		lua.LBool(base))
	if err != nil {
		return base
	}
	if b, ok := ret.(lua.LBool); ok {
		return base && bool(b)
	}
	return base
}
