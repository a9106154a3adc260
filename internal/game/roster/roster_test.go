package roster_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/roster"
)

const ryuYAML = `
id: ryu
name: Ryu
nationality: Japan
background: A wandering warrior.
archetype: shoto
special:
  name: Hadoken
  description: A ball of ki.
stats:
  max_health: 120
  resource_max: 100
  attack_power: 12
  defense_power: 10
  special_power: 45
  special_cost: 40
  starting_resource: 0
`

const zangiefYAML = `
id: zangief
name: Zangief
nationality: Russia
background: The Red Cyclone.
archetype: grappler
special:
  name: Spinning Piledriver
stats:
  max_health: 150
  attack_power: 14
  special_cost: 50
`

func writeRoster(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	return dir
}

func TestLoadTemplateFromBytes_Valid(t *testing.T) {
	tmpl, err := roster.LoadTemplateFromBytes([]byte(ryuYAML))
	require.NoError(t, err)
	assert.Equal(t, "ryu", tmpl.ID)
	assert.Equal(t, "Hadoken", tmpl.Special.Name)
	assert.Equal(t, 45, tmpl.Stats.SpecialPower)
}

func TestLoadTemplateFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing id":        "name: X\narchetype: shoto\n",
		"missing name":      "id: x\narchetype: shoto\n",
		"unknown archetype": "id: x\nname: X\narchetype: ninja\n",
		"negative stat":     "id: x\nname: X\narchetype: shoto\nstats:\n  attack_power: -1\n",
		"bad yaml":          "id: [unterminated\n",
	}
	for name, body := range cases {
		_, err := roster.LoadTemplateFromBytes([]byte(body))
		assert.Error(t, err, name)
	}
}

func TestTemplate_NewCombatant(t *testing.T) {
	tmpl, err := roster.LoadTemplateFromBytes([]byte(zangiefYAML))
	require.NoError(t, err)

	c, err := tmpl.NewCombatant(nil)
	require.NoError(t, err)
	assert.Equal(t, "Zangief", c.Name())
	assert.Equal(t, 150, c.Health())
	assert.Equal(t, 100, c.ResourceMax(), "zero resource_max takes the fallback")
	assert.Equal(t, "Spinning Piledriver", c.SpecialMoveName())
	assert.Equal(t, 140, c.DamageMultiplier(combat.HeavyAttack, combat.Block), "grappler heavy multiplier")
}

func TestLoad_IndexesAndSorts(t *testing.T) {
	dir := writeRoster(t, map[string]string{
		"zangief.yaml": zangiefYAML,
		"ryu.yaml":     ryuYAML,
		"README.md":    "ignored",
	})
	r, err := roster.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, []string{"ryu", "zangief"}, r.IDs())
	assert.Equal(t, []string{"Ryu", "Zangief"}, r.Names())

	got, ok := r.Get("zangief")
	require.True(t, ok)
	assert.Equal(t, "Zangief", got.Name)
	_, ok = r.Get("ken")
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	_, err := roster.Load(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	_, err = roster.Load(t.TempDir())
	assert.Error(t, err, "empty roster")

	_, err = roster.Load(writeRoster(t, map[string]string{"a.yaml": ryuYAML, "b.yaml": ryuYAML}))
	assert.Error(t, err, "duplicate id")
}

func TestRoster_Find(t *testing.T) {
	r, err := roster.Load(writeRoster(t, map[string]string{"ryu.yaml": ryuYAML, "zangief.yaml": zangiefYAML}))
	require.NoError(t, err)

	got, err := r.Find("RYU")
	require.NoError(t, err)
	assert.Equal(t, "ryu", got.ID)

	got, err = r.Find(" zangief ")
	require.NoError(t, err)
	assert.Equal(t, "zangief", got.ID)

	_, err = r.Find("guile")
	assert.Error(t, err)
}

type fixedSrc int

func (f fixedSrc) Intn(n int) int { return int(f) % n }

func TestRoster_Random(t *testing.T) {
	r, err := roster.Load(writeRoster(t, map[string]string{"ryu.yaml": ryuYAML, "zangief.yaml": zangiefYAML}))
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(0, 1000).Draw(rt, "v")
		got := r.Random(fixedSrc(v))
		if got.ID != r.IDs()[v%2] {
			rt.Fatalf("Random(%d) = %q", v, got.ID)
		}
	})
}
