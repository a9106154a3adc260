// Package match runs a best-of-N fight between two corners, asking each
// corner's Controller for a move every turn and resolving it with a
// combat.Resolver.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/brawl/internal/game/combat"
)

// ErrMatchOver is returned by PlayTurn once the match has a result.
var ErrMatchOver = errors.New("match: match is over")

// Config bounds a match.
type Config struct {
	// RoundsToWin is the number of round wins that takes the match.
	RoundsToWin int
	// MaxRounds caps the number of rounds played, draws included.
	MaxRounds int
	// TurnLimit is the number of turns after which a round goes to time.
	TurnLimit int
}

// DefaultConfig returns a best-of-three with a 30-turn clock and a
// nine-round cap.
func DefaultConfig() Config {
	return Config{RoundsToWin: 2, MaxRounds: 9, TurnLimit: 30}
}

// Validate checks that every bound is positive and MaxRounds can fit a win.
func (c Config) Validate() error {
	var errs []error
	if c.RoundsToWin < 1 {
		errs = append(errs, fmt.Errorf("rounds_to_win must be >= 1, got %d", c.RoundsToWin))
	}
	if c.MaxRounds < c.RoundsToWin {
		errs = append(errs, fmt.Errorf("max_rounds (%d) must be >= rounds_to_win (%d)", c.MaxRounds, c.RoundsToWin))
	}
	if c.TurnLimit < 1 {
		errs = append(errs, fmt.Errorf("turn_limit must be >= 1, got %d", c.TurnLimit))
	}
	return errors.Join(errs...)
}

// Corner is one side of the match.
type Corner struct {
	Fighter    *combat.Combatant
	Controller Controller
	// Label is the narration name; empty uses the fighter's name.
	Label string
}

// Outcome is the final result of a match.
type Outcome struct {
	Winner combat.Side
	Draw   bool
	Wins   [2]int
	Rounds int
}

// TurnReport describes one played turn. Health and Resource are read after
// resolution and before any between-round reset.
type TurnReport struct {
	Round    int
	Turn     int
	Moves    [2]combat.Move
	Result   *combat.TurnResult
	Knockout combat.Knockout
	Health   [2]int
	Resource [2]int

	RoundOver   bool
	TimeOver    bool
	RoundDraw   bool
	RoundWinner combat.Side

	Wins      [2]int
	MatchOver bool
	Outcome   Outcome
}

// Match owns two corners for the duration of a fight.
type Match struct {
	id       uuid.UUID
	cfg      Config
	corners  [2]Corner
	resolver *combat.Resolver
	logger   *zap.Logger

	round        int
	turn         int
	roundsPlayed int
	wins         [2]int
	over         bool
	outcome      Outcome
}

// New creates a match at round 1, turn 0.
//
// Precondition: both corners have a fighter and a controller; resolver and
// logger are non-nil.
// Postcondition: Returns a Match with a fresh ID, or an error if cfg is invalid.
func New(a, b Corner, resolver *combat.Resolver, cfg Config, logger *zap.Logger) (*Match, error) {
	for i, c := range []Corner{a, b} {
		if c.Fighter == nil || c.Controller == nil {
			panic(fmt.Sprintf("match.New: corner %s must have a fighter and a controller", combat.Side(i)))
		}
	}
	if resolver == nil || logger == nil {
		panic("match.New: resolver and logger must not be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("match config: %w", err)
	}
	id := uuid.New()
	return &Match{
		id:       id,
		cfg:      cfg,
		corners:  [2]Corner{a, b},
		resolver: resolver,
		logger:   logger.With(zap.String("match_id", id.String())),
		round:    1,
	}, nil
}

// ID returns the match identifier.
func (m *Match) ID() uuid.UUID { return m.id }

// Round returns the current 1-based round number.
func (m *Match) Round() int { return m.round }

// Wins returns the round wins per side.
func (m *Match) Wins() [2]int { return m.wins }

// Fighter returns the combatant in side's corner.
func (m *Match) Fighter(side combat.Side) *combat.Combatant { return m.corners[side].Fighter }

// Label returns the narration name for side.
func (m *Match) Label(side combat.Side) string {
	if l := m.corners[side].Label; l != "" {
		return l
	}
	return m.corners[side].Fighter.Name()
}

// Outcome returns the final result; ok is false while the match is running.
func (m *Match) Outcome() (out Outcome, ok bool) {
	return m.outcome, m.over
}

// PlayTurn collects one move per corner, resolves the turn and advances the
// round and match state.
//
// Postcondition: on success the report reflects the resolved turn; when the
// round ended and the match continues, both fighters have been reset.
func (m *Match) PlayTurn(ctx context.Context) (*TurnReport, error) {
	if m.over {
		return nil, ErrMatchOver
	}
	a, b := m.corners[combat.SideA], m.corners[combat.SideB]

	moveA, err := a.Controller.NextMove(ctx, a.Fighter, b.Fighter)
	if err != nil {
		return nil, fmt.Errorf("side A move: %w", err)
	}
	moveB, err := b.Controller.NextMove(ctx, b.Fighter, a.Fighter)
	if err != nil {
		return nil, fmt.Errorf("side B move: %w", err)
	}

	m.turn++
	res := m.resolver.Resolve(
		combat.Entrant{Fighter: a.Fighter, Move: moveA, Label: a.Label},
		combat.Entrant{Fighter: b.Fighter, Move: moveB, Label: b.Label},
	)
	ko := combat.CheckKnockout(a.Fighter, b.Fighter)

	rep := &TurnReport{
		Round:    m.round,
		Turn:     m.turn,
		Moves:    [2]combat.Move{moveA, moveB},
		Result:   res,
		Knockout: ko,
		Health:   [2]int{a.Fighter.Health(), b.Fighter.Health()},
		Resource: [2]int{a.Fighter.Resource(), b.Fighter.Resource()},
	}

	switch {
	case ko != combat.NoKnockout:
		rep.RoundOver = true
		rep.RoundWinner, rep.RoundDraw = roundWinnerByKnockout(ko)
	case m.turn >= m.cfg.TurnLimit:
		rep.RoundOver = true
		rep.TimeOver = true
		rep.RoundWinner, rep.RoundDraw = roundWinnerByHealth(a.Fighter, b.Fighter)
	}

	if rep.RoundOver {
		m.endRound(rep)
	}
	rep.Wins = m.wins
	rep.MatchOver = m.over
	rep.Outcome = m.outcome
	return rep, nil
}

func (m *Match) endRound(rep *TurnReport) {
	m.roundsPlayed++
	if !rep.RoundDraw && m.wins[rep.RoundWinner] < m.cfg.RoundsToWin {
		m.wins[rep.RoundWinner]++
	}

	fields := []zap.Field{
		zap.Int("round", m.round),
		zap.Int("turns", m.turn),
		zap.Bool("time_over", rep.TimeOver),
		zap.Bool("draw", rep.RoundDraw),
		zap.Ints("wins", m.wins[:]),
	}
	if !rep.RoundDraw {
		fields = append(fields, zap.String("winner", m.Label(rep.RoundWinner)))
	}
	m.logger.Info("round over", fields...)

	switch {
	case m.wins[combat.SideA] >= m.cfg.RoundsToWin, m.wins[combat.SideB] >= m.cfg.RoundsToWin,
		m.roundsPlayed >= m.cfg.MaxRounds:
		m.finish()
	default:
		m.round++
		m.turn = 0
		for _, c := range m.corners {
			c.Fighter.ResetForNewRound()
		}
	}
}

func (m *Match) finish() {
	m.over = true
	m.outcome = Outcome{Wins: m.wins, Rounds: m.roundsPlayed}
	switch {
	case m.wins[combat.SideA] > m.wins[combat.SideB]:
		m.outcome.Winner = combat.SideA
	case m.wins[combat.SideB] > m.wins[combat.SideA]:
		m.outcome.Winner = combat.SideB
	default:
		m.outcome.Draw = true
	}

	fields := []zap.Field{
		zap.Int("rounds", m.roundsPlayed),
		zap.Ints("wins", m.wins[:]),
		zap.Bool("draw", m.outcome.Draw),
	}
	if !m.outcome.Draw {
		fields = append(fields, zap.String("winner", m.Label(m.outcome.Winner)))
	}
	m.logger.Info("match over", fields...)
}

// Run plays turns until the match ends, calling observe (if non-nil) after
// each one. Context cancellation is honoured between turns.
//
// Postcondition: Returns the final Outcome, or the first controller or
// context error.
func (m *Match) Run(ctx context.Context, observe func(*TurnReport)) (Outcome, error) {
	m.logger.Info("match started",
		zap.String("side_a", m.Label(combat.SideA)),
		zap.String("side_b", m.Label(combat.SideB)),
		zap.Int("rounds_to_win", m.cfg.RoundsToWin),
	)
	for !m.over {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		rep, err := m.PlayTurn(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if observe != nil {
			observe(rep)
		}
	}
	return m.outcome, nil
}

func roundWinnerByKnockout(ko combat.Knockout) (winner combat.Side, draw bool) {
	w, ok := ko.Winner()
	return w, !ok
}

// roundWinnerByHealth compares health fractions by cross-multiplication.
func roundWinnerByHealth(a, b *combat.Combatant) (winner combat.Side, draw bool) {
	fa := a.Health() * b.MaxHealth()
	fb := b.Health() * a.MaxHealth()
	switch {
	case fa > fb:
		return combat.SideA, false
	case fb > fa:
		return combat.SideB, false
	default:
		return combat.SideA, true
	}
}
