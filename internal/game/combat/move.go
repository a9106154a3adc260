package combat

import (
	"fmt"
	"strings"
)

// Move identifies the action a side submits for one turn.
// The zero value (MoveUnknown) is intentionally invalid.
type Move int

const (
	MoveUnknown Move = iota // zero value; intentionally invalid
	LightAttack
	HeavyAttack
	Block
	Dodge
	Special
	// Throw is reserved vocabulary. The resolver does not implement it and
	// strategies must never select it.
	Throw
)

// Moves lists every move a side may submit, in menu order.
// Throw is excluded.
var Moves = []Move{LightAttack, HeavyAttack, Block, Dodge, Special}

// String returns the display name of the move.
func (m Move) String() string {
	switch m {
	case LightAttack:
		return "Light Attack"
	case HeavyAttack:
		return "Heavy Attack"
	case Block:
		return "Block"
	case Dodge:
		return "Dodge"
	case Special:
		return "Special Move"
	case Throw:
		return "Throw"
	default:
		return "Unknown"
	}
}

// Key returns the stable lower-case identifier used in scripts and input.
func (m Move) Key() string {
	switch m {
	case LightAttack:
		return "light"
	case HeavyAttack:
		return "heavy"
	case Block:
		return "block"
	case Dodge:
		return "dodge"
	case Special:
		return "special"
	case Throw:
		return "throw"
	default:
		return "unknown"
	}
}

// Playable reports whether m may be submitted to the resolver.
//
// Postcondition: true only for the five moves in Moves.
func (m Move) Playable() bool {
	return m >= LightAttack && m <= Special
}

// IsAttack reports whether m deals damage through the attack-tier rules.
func (m Move) IsAttack() bool {
	return m == LightAttack || m == HeavyAttack
}

// IsDefensive reports whether m is Block or Dodge.
func (m Move) IsDefensive() bool {
	return m == Block || m == Dodge
}

// ParseMove maps player input to a Move. It accepts the menu number
// ("1".."5"), the key ("light", "heavy", ...) or the display name,
// case-insensitively.
//
// Postcondition: Returns a playable Move or a non-nil error.
func ParseMove(s string) (Move, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	for i, m := range Moves {
		if in == fmt.Sprint(i+1) || in == m.Key() || in == strings.ToLower(m.String()) {
			return m, nil
		}
	}
	return MoveUnknown, fmt.Errorf("combat: unknown move %q", s)
}
