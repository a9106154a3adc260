package match

import (
	"context"

	"github.com/cory-johannsen/brawl/internal/game/ai"
	"github.com/cory-johannsen/brawl/internal/game/combat"
)

// Controller supplies a corner's move each turn.
type Controller interface {
	NextMove(ctx context.Context, self, opponent *combat.Combatant) (combat.Move, error)
}

// CPU drives a corner with an ai.Strategy.
type CPU struct {
	Strategy ai.Strategy
}

// NextMove asks the strategy. It never fails.
func (c CPU) NextMove(_ context.Context, self, opponent *combat.Combatant) (combat.Move, error) {
	return c.Strategy.DecideMove(self, opponent), nil
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(ctx context.Context, self, opponent *combat.Combatant) (combat.Move, error)

func (f ControllerFunc) NextMove(ctx context.Context, self, opponent *combat.Combatant) (combat.Move, error) {
	return f(ctx, self, opponent)
}
