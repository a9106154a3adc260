package archetype_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/brawl/internal/game/archetype"
	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/scripting"
)

func scriptedFighter(t *testing.T, src string) *combat.Combatant {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fighter.lua")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	mgr := scripting.NewManager(0, zap.NewNop())
	t.Cleanup(mgr.Close)
	require.NoError(t, mgr.Load("fighter", path))

	base, err := archetype.New("shoto", combat.SpecialMove{Name: "Yoga Fire"})
	require.NoError(t, err)
	return combat.NewCombatant(combat.Profile{
		Name:            "Scripted",
		MaxHealth:       100,
		ResourceMax:     100,
		SpecialMoveCost: 40,
	}, archetype.NewScripted(base, mgr, "fighter"))
}

func TestScripted_DamageMultiplierHook(t *testing.T) {
	c := scriptedFighter(t, `
		function damage_multiplier(attack, defense, base)
			if attack == "heavy" and defense == "dodge" then
				return 150
			end
			return base
		end
	`)
	assert.Equal(t, 150, c.DamageMultiplier(combat.HeavyAttack, combat.Dodge))
	assert.Equal(t, 100, c.DamageMultiplier(combat.HeavyAttack, combat.Block))
}

func TestScripted_CanUseSpecialHook(t *testing.T) {
	c := scriptedFighter(t, `
		function can_use_special(resource, cost, health, max_health, base)
			return base and health < max_health
		end
	`)
	c.SetResource(100)
	assert.False(t, c.CanUseSpecialMove(), "full health vetoes the special")
	c.SetHealth(80)
	assert.True(t, c.CanUseSpecialMove())
}

func TestScripted_CanUseSpecialHookCannotWaiveCost(t *testing.T) {
	c := scriptedFighter(t, `
		function can_use_special(resource, cost, health, max_health, base)
			return true
		end
	`)
	c.SetResource(0)
	assert.False(t, c.CanUseSpecialMove())
	c.SetResource(39)
	assert.False(t, c.CanUseSpecialMove())
	c.SetResource(40)
	assert.True(t, c.CanUseSpecialMove())

	opp := combat.NewCombatant(combat.Profile{Name: "Target", MaxHealth: 100}, nil)
	c.SetResource(0)
	res := combat.NewResolver(scriptedCoin{}, zap.NewNop()).Resolve(
		combat.Entrant{Fighter: c, Move: combat.Special},
		combat.Entrant{Fighter: opp, Move: combat.Block},
	)
	assert.True(t, res.SpecialFailed(combat.SideA))
	assert.Equal(t, 0, res.DamageTo(combat.SideB))
	assert.Equal(t, 100, opp.Health())
}

type scriptedCoin struct{}

func (scriptedCoin) Intn(int) int { return 0 }

func TestScripted_MissingHooksFallBack(t *testing.T) {
	c := scriptedFighter(t, `-- nothing defined`)
	assert.Equal(t, 100, c.DamageMultiplier(combat.LightAttack, combat.Dodge))
	c.SetResource(40)
	assert.True(t, c.CanUseSpecialMove())
	assert.Equal(t, "Yoga Fire", c.SpecialMoveName())
}

func TestScripted_WrongReturnTypeFallsBack(t *testing.T) {
	c := scriptedFighter(t, `
		function damage_multiplier() return "lots" end
		function can_use_special() return 1 end
	`)
	assert.Equal(t, 100, c.DamageMultiplier(combat.LightAttack, combat.Block))
	c.SetResource(0)
	assert.False(t, c.CanUseSpecialMove())
}

type failingCaller struct{}

func (failingCaller) CallHook(string, string, ...lua.LValue) (lua.LValue, error) {
	return lua.LNumber(999), errors.New("vm gone")
}

func TestScripted_CallerErrorFallsBack(t *testing.T) {
	base, err := archetype.New("tank", combat.SpecialMove{})
	require.NoError(t, err)
	c := combat.NewCombatant(combat.Profile{Name: "T"}, archetype.NewScripted(base, failingCaller{}, "t"))
	assert.Equal(t, 90, c.DamageMultiplier(combat.HeavyAttack, combat.Block))
}

func TestNewScripted_NilPanics(t *testing.T) {
	assert.Panics(t, func() { archetype.NewScripted(nil, failingCaller{}, "x") })
	assert.Panics(t, func() { archetype.NewScripted(archetype.Shoto{}, nil, "x") })
}
