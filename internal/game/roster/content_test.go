package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/roster"
	"github.com/cory-johannsen/brawl/internal/scripting"
)

func TestShippedRoster(t *testing.T) {
	r, err := roster.Load("../../../content/fighters")
	require.NoError(t, err)
	assert.Equal(t, []string{"Blanka", "Chun-Li", "Dhalsim", "E. Honda", "Guile", "Ken", "Ryu", "Zangief"}, r.Names())

	mgr := scripting.NewManager(0, zap.NewNop())
	t.Cleanup(mgr.Close)
	_, err = mgr.LoadDir("../../../content/scripts")
	require.NoError(t, err)

	for _, id := range r.IDs() {
		tmpl, _ := r.Get(id)
		c, err := tmpl.NewCombatant(mgr)
		require.NoError(t, err, id)
		assert.Positive(t, c.MaxHealth(), id)
		assert.NotEqual(t, "SPECIAL MOVE", c.SpecialMoveName(), "%s ships a named special", id)
		if tmpl.Script != "" {
			assert.True(t, mgr.Has(tmpl.Script), "%s script %q is loaded", id, tmpl.Script)
		}
	}
}

func TestShippedScripts_Dhalsim(t *testing.T) {
	r, err := roster.Load("../../../content/fighters")
	require.NoError(t, err)
	mgr := scripting.NewManager(0, zap.NewNop())
	t.Cleanup(mgr.Close)
	_, err = mgr.LoadDir("../../../content/scripts")
	require.NoError(t, err)

	tmpl, ok := r.Get("dhalsim")
	require.True(t, ok)
	c, err := tmpl.NewCombatant(mgr)
	require.NoError(t, err)

	assert.Equal(t, 110, c.DamageMultiplier(combat.LightAttack, combat.Block), "reach bonus on jabs")
	assert.Equal(t, 120, c.DamageMultiplier(combat.HeavyAttack, combat.Block), "zoner heavy unchanged")
	assert.Equal(t, 70, c.DamageMultiplier(combat.Special, combat.Dodge))
	assert.Equal(t, 100, c.DamageMultiplier(combat.Special, combat.Block))

	plain, err := tmpl.NewCombatant(nil)
	require.NoError(t, err)
	assert.Equal(t, 100, plain.DamageMultiplier(combat.LightAttack, combat.Block), "no hooks, no script")
}
