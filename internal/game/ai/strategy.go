package ai

import (
	"fmt"

	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/dice"
)

// Source is the random source used for move selection.
type Source = dice.Source

// Strategy picks a move for self against opponent. Implementations read
// both fighters and never mutate them.
//
// Postcondition: the returned move is always playable.
type Strategy interface {
	Name() string
	DecideMove(self, opponent *combat.Combatant) combat.Move
}

// Strategy names accepted by NewStrategy.
const (
	StrategyRandom   = "random"
	StrategyTactical = "tactical"
)

// TacticalConfig tunes TacticalStrategy.
type TacticalConfig struct {
	// FinisherHealth: spend the special when the opponent's health is below this.
	FinisherHealth int
	// CriticalRatio: turtle when own health is below opponent health times this.
	CriticalRatio float64
}

// DefaultTacticalConfig returns the stock thresholds.
func DefaultTacticalConfig() TacticalConfig {
	return TacticalConfig{FinisherHealth: 50, CriticalRatio: 0.3}
}

// NewStrategy builds the strategy registered under name.
//
// Precondition: src must be non-nil.
// Postcondition: Returns a non-nil Strategy or an error naming the unknown strategy.
func NewStrategy(name string, src Source, cfg TacticalConfig) (Strategy, error) {
	if src == nil {
		panic("ai.NewStrategy: src must not be nil")
	}
	switch name {
	case StrategyRandom:
		return &RandomStrategy{src: src}, nil
	case StrategyTactical:
		return &TacticalStrategy{src: src, cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("ai: unknown strategy %q (valid: %s, %s)", name, StrategyRandom, StrategyTactical)
	}
}

func pick(src Source, moves ...combat.Move) combat.Move {
	return dice.Pick(src, moves)
}

// RandomStrategy chooses uniformly among the five playable moves, special
// included whether or not it is affordable.
type RandomStrategy struct {
	src Source
}

func (s *RandomStrategy) Name() string { return StrategyRandom }

// DecideMove ignores both fighters.
func (s *RandomStrategy) DecideMove(_, _ *combat.Combatant) combat.Move {
	return pick(s.src, combat.Moves...)
}

// TacticalStrategy applies a fixed priority list:
//  1. finish: special when affordable and the opponent is low
//  2. press: a random attack when ahead on health
//  3. turtle: a random defence when far behind
//  4. otherwise any move
type TacticalStrategy struct {
	src Source
	cfg TacticalConfig
}

func (s *TacticalStrategy) Name() string { return StrategyTactical }

func (s *TacticalStrategy) DecideMove(self, opponent *combat.Combatant) combat.Move {
	return s.Decide(Snapshot(self), Snapshot(opponent))
}

// Decide applies the priority list to snapshots.
func (s *TacticalStrategy) Decide(self, opponent FighterState) combat.Move {
	switch {
	case self.CanSpecial && opponent.Health < s.cfg.FinisherHealth:
		return combat.Special
	case opponent.Health < self.Health:
		return pick(s.src, combat.LightAttack, combat.HeavyAttack)
	case float64(self.Health) < float64(opponent.Health)*s.cfg.CriticalRatio:
		return pick(s.src, combat.Block, combat.Dodge)
	default:
		return pick(s.src, combat.Moves...)
	}
}
