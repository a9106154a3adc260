package match_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/brawl/internal/game/ai"
	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/dice"
	"github.com/cory-johannsen/brawl/internal/game/match"
)

func always(m combat.Move) match.Controller {
	return match.ControllerFunc(func(context.Context, *combat.Combatant, *combat.Combatant) (combat.Move, error) {
		return m, nil
	})
}

func fighter(name string, health, attack int) *combat.Combatant {
	return combat.NewCombatant(combat.Profile{Name: name, MaxHealth: health, AttackPower: attack}, nil)
}

func newMatch(t testing.TB, a, b match.Corner, cfg match.Config) (*match.Match, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(core)
	m, err := match.New(a, b, combat.NewResolver(dice.NewSeededSource(7), logger), cfg, logger)
	require.NoError(t, err)
	return m, logs
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, match.DefaultConfig().Validate())
	assert.Error(t, match.Config{RoundsToWin: 0, MaxRounds: 3, TurnLimit: 5}.Validate())
	assert.Error(t, match.Config{RoundsToWin: 3, MaxRounds: 2, TurnLimit: 5}.Validate())
	assert.Error(t, match.Config{RoundsToWin: 1, MaxRounds: 1, TurnLimit: 0}.Validate())
}

func TestNew_InvalidConfig(t *testing.T) {
	logger := zap.NewNop()
	_, err := match.New(
		match.Corner{Fighter: fighter("A", 10, 5), Controller: always(combat.Block)},
		match.Corner{Fighter: fighter("B", 10, 5), Controller: always(combat.Block)},
		combat.NewResolver(dice.NewSeededSource(1), logger), match.Config{}, logger)
	assert.Error(t, err)
}

func TestNew_MissingControllerPanics(t *testing.T) {
	logger := zap.NewNop()
	assert.Panics(t, func() {
		_, _ = match.New(
			match.Corner{Fighter: fighter("A", 10, 5)},
			match.Corner{Fighter: fighter("B", 10, 5), Controller: always(combat.Block)},
			combat.NewResolver(dice.NewSeededSource(1), logger), match.DefaultConfig(), logger)
	})
}

func TestMatch_KnockoutWinsBestOfThree(t *testing.T) {
	a := fighter("Weak", 10, 5)
	b := fighter("Strong", 100, 20)
	m, logs := newMatch(t,
		match.Corner{Fighter: a, Controller: always(combat.LightAttack)},
		match.Corner{Fighter: b, Controller: always(combat.LightAttack)},
		match.DefaultConfig())

	rep, err := m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Result.Cancelled(), "light vs light clashes")
	assert.Equal(t, combat.KnockoutA, rep.Knockout)
	assert.True(t, rep.RoundOver)
	assert.False(t, rep.RoundDraw)
	assert.Equal(t, combat.SideB, rep.RoundWinner)
	assert.Equal(t, [2]int{0, 1}, rep.Wins)
	assert.Equal(t, [2]int{0, 98}, rep.Health, "health is reported before the reset")
	assert.False(t, rep.MatchOver)

	assert.Equal(t, 2, m.Round())
	assert.Equal(t, 10, a.Health(), "fighters reset between rounds")
	assert.Equal(t, 100, b.Health())

	rep, err = m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Round)
	assert.True(t, rep.MatchOver)
	assert.Equal(t, match.Outcome{Winner: combat.SideB, Wins: [2]int{0, 2}, Rounds: 2}, rep.Outcome)

	out, ok := m.Outcome()
	require.True(t, ok)
	assert.Equal(t, rep.Outcome, out)

	_, err = m.PlayTurn(context.Background())
	assert.ErrorIs(t, err, match.ErrMatchOver)

	overs := logs.FilterMessage("match over").All()
	require.Len(t, overs, 1)
	assert.Equal(t, "Strong", overs[0].ContextMap()["winner"])
	assert.Equal(t, m.ID().String(), overs[0].ContextMap()["match_id"])
	assert.Equal(t, 2, logs.FilterMessage("round over").Len())
}

func TestMatch_ResetEmptiesResourceBetweenRounds(t *testing.T) {
	a := combat.NewCombatant(combat.Profile{Name: "A", MaxHealth: 100, AttackPower: 20, StartingResource: 10}, nil)
	b := combat.NewCombatant(combat.Profile{Name: "B", MaxHealth: 30, AttackPower: 5}, nil)
	m, _ := newMatch(t,
		match.Corner{Fighter: a, Controller: always(combat.HeavyAttack)},
		match.Corner{Fighter: b, Controller: always(combat.Block)},
		match.DefaultConfig())

	rep, err := m.PlayTurn(context.Background())
	require.NoError(t, err)
	require.True(t, rep.RoundOver)
	require.False(t, rep.MatchOver)
	assert.Equal(t, combat.KnockoutB, rep.Knockout)

	assert.Equal(t, 2, m.Round())
	assert.Equal(t, 0, a.Resource(), "starting resource only applies to the first round")
	assert.Equal(t, 0, b.Resource())
	assert.Equal(t, 100, a.Health())
	assert.Equal(t, 30, b.Health())
}

func TestMatch_DoubleKnockoutIsDrawRound(t *testing.T) {
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("A", 1, 2), Controller: always(combat.LightAttack)},
		match.Corner{Fighter: fighter("B", 1, 2), Controller: always(combat.LightAttack)},
		match.Config{RoundsToWin: 1, MaxRounds: 1, TurnLimit: 10})

	rep, err := m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.Equal(t, combat.DoubleKnockout, rep.Knockout)
	assert.True(t, rep.RoundDraw)
	assert.Equal(t, [2]int{0, 0}, rep.Wins)
	assert.True(t, rep.MatchOver)
	assert.True(t, rep.Outcome.Draw)
}

func TestMatch_TimeOverGoesToHealthLead(t *testing.T) {
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("A", 100, 5), Controller: always(combat.HeavyAttack)},
		match.Corner{Fighter: fighter("B", 100, 5), Controller: always(combat.Block)},
		match.Config{RoundsToWin: 1, MaxRounds: 3, TurnLimit: 2})

	rep, err := m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.False(t, rep.RoundOver)
	assert.Equal(t, 10, rep.Result.DamageToB())

	rep, err = m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.TimeOver)
	assert.Equal(t, combat.SideA, rep.RoundWinner)
	assert.True(t, rep.MatchOver)
	assert.Equal(t, combat.SideA, rep.Outcome.Winner)
}

func TestMatch_TimeOverComparesFractions(t *testing.T) {
	// A keeps 150/200 (75%), B keeps 80/100 (80%).
	a := fighter("Big", 200, 5)
	b := fighter("Small", 100, 5)
	m, _ := newMatch(t,
		match.Corner{Fighter: a, Controller: match.ControllerFunc(func(context.Context, *combat.Combatant, *combat.Combatant) (combat.Move, error) {
			a.SetHealth(150)
			b.SetHealth(80)
			return combat.Block, nil
		})},
		match.Corner{Fighter: b, Controller: always(combat.Dodge)},
		match.Config{RoundsToWin: 1, MaxRounds: 1, TurnLimit: 1})

	rep, err := m.PlayTurn(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.TimeOver)
	assert.Equal(t, combat.SideB, rep.RoundWinner)
}

func TestMatch_MaxRoundsDrawWhenLevel(t *testing.T) {
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("A", 100, 5), Controller: always(combat.Block)},
		match.Corner{Fighter: fighter("B", 100, 5), Controller: always(combat.Dodge)},
		match.Config{RoundsToWin: 2, MaxRounds: 2, TurnLimit: 3})

	var reports []*match.TurnReport
	out, err := m.Run(context.Background(), func(r *match.TurnReport) { reports = append(reports, r) })
	require.NoError(t, err)
	assert.True(t, out.Draw)
	assert.Equal(t, 2, out.Rounds)
	require.Len(t, reports, 6)
	assert.Equal(t, 3, reports[2].Turn)
	assert.True(t, reports[2].RoundDraw)
	assert.Equal(t, 1, reports[3].Turn, "turn counter restarts each round")
	assert.Equal(t, 2, reports[3].Round)
}

func TestMatch_ControllerErrorPropagates(t *testing.T) {
	boom := errors.New("input closed")
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("A", 100, 5), Controller: match.ControllerFunc(func(context.Context, *combat.Combatant, *combat.Combatant) (combat.Move, error) {
			return combat.MoveUnknown, boom
		})},
		match.Corner{Fighter: fighter("B", 100, 5), Controller: always(combat.Block)},
		match.DefaultConfig())

	_, err := m.Run(context.Background(), nil)
	assert.ErrorIs(t, err, boom)
	_, ok := m.Outcome()
	assert.False(t, ok)
}

func TestMatch_RunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("A", 100, 5), Controller: always(combat.Block)},
		match.Corner{Fighter: fighter("B", 100, 5), Controller: always(combat.Block)},
		match.DefaultConfig())

	turns := 0
	_, err := m.Run(ctx, func(*match.TurnReport) {
		turns++
		if turns == 3 {
			cancel()
		}
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, turns)
}

func TestMatch_LabelsDefaultToNames(t *testing.T) {
	m, _ := newMatch(t,
		match.Corner{Fighter: fighter("Ryu", 100, 5), Controller: always(combat.Block), Label: "P1"},
		match.Corner{Fighter: fighter("Ken", 100, 5), Controller: always(combat.Block)},
		match.DefaultConfig())
	assert.Equal(t, "P1", m.Label(combat.SideA))
	assert.Equal(t, "Ken", m.Label(combat.SideB))
	assert.Equal(t, "Ryu", m.Fighter(combat.SideA).Name())
}

func TestProperty_CPUMatchesTerminateWithinBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := match.Config{
			RoundsToWin: rapid.IntRange(1, 3).Draw(rt, "rounds_to_win"),
			TurnLimit:   rapid.IntRange(1, 20).Draw(rt, "turn_limit"),
		}
		cfg.MaxRounds = cfg.RoundsToWin + rapid.IntRange(0, 4).Draw(rt, "extra_rounds")
		src := dice.NewSeededSource(rapid.Uint64().Draw(rt, "seed"))

		cpu := func(name string) match.Controller {
			s, err := ai.NewStrategy(name, src, ai.DefaultTacticalConfig())
			if err != nil {
				rt.Fatal(err)
			}
			return match.CPU{Strategy: s}
		}
		logger := zap.NewNop()
		m, err := match.New(
			match.Corner{Fighter: fighter("A", 60, 10), Controller: cpu(ai.StrategyRandom)},
			match.Corner{Fighter: fighter("B", 60, 10), Controller: cpu(ai.StrategyTactical)},
			combat.NewResolver(src, logger), cfg, logger)
		if err != nil {
			rt.Fatal(err)
		}

		out, err := m.Run(context.Background(), nil)
		if err != nil {
			rt.Fatal(err)
		}
		if out.Rounds > cfg.MaxRounds {
			rt.Fatalf("played %d rounds, max %d", out.Rounds, cfg.MaxRounds)
		}
		for _, w := range out.Wins {
			if w > cfg.RoundsToWin {
				rt.Fatalf("wins %v exceed %d", out.Wins, cfg.RoundsToWin)
			}
		}
		if !out.Draw && out.Wins[out.Winner] < out.Wins[out.Winner.Other()] {
			rt.Fatalf("winner %s has fewer wins: %v", out.Winner, out.Wins)
		}
		if out.Draw && out.Wins[0] != out.Wins[1] {
			rt.Fatalf("draw with uneven wins %v", out.Wins)
		}
	})
}
