package combat

// Knockout describes the knockout state after a turn.
type Knockout int

const (
	// NoKnockout means both fighters are still standing.
	NoKnockout Knockout = iota
	// KnockoutA means side A was knocked out; side B wins.
	KnockoutA
	// KnockoutB means side B was knocked out; side A wins.
	KnockoutB
	// DoubleKnockout means both fell in the same turn. It is scored as a draw.
	DoubleKnockout
)

// String returns a human-readable knockout label.
func (k Knockout) String() string {
	switch k {
	case NoKnockout:
		return "none"
	case KnockoutA:
		return "side A knocked out"
	case KnockoutB:
		return "side B knocked out"
	case DoubleKnockout:
		return "double knockout"
	default:
		return "unknown"
	}
}

// Winner returns the surviving side. ok is false for NoKnockout and DoubleKnockout.
func (k Knockout) Winner() (side Side, ok bool) {
	switch k {
	case KnockoutA:
		return SideB, true
	case KnockoutB:
		return SideA, true
	default:
		return SideA, false
	}
}

// CheckKnockout inspects both fighters' health.
//
// Postcondition: Returns DoubleKnockout iff both are at zero health.
func CheckKnockout(a, b *Combatant) Knockout {
	switch {
	case a.IsKnockedOut() && b.IsKnockedOut():
		return DoubleKnockout
	case a.IsKnockedOut():
		return KnockoutA
	case b.IsKnockedOut():
		return KnockoutB
	default:
		return NoKnockout
	}
}
