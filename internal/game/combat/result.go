package combat

// Side identifies a position in a two-sided fight. Attribution of damage is
// always positional: the first combatant passed to Resolve is SideA.
type Side int

const (
	SideA Side = iota
	SideB
)

// Other returns the opposing side.
func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// String returns "A" or "B".
func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

// TurnResult is the structured outcome of one resolved turn.
// It is built by a single Resolve call and read-only afterwards.
type TurnResult struct {
	log           []string
	damage        [2]int
	cancelled     bool
	specialFailed [2]bool
	effective     [2]Move
	initiative    Side
	hasInitiative bool
}

func newTurnResult() *TurnResult {
	return &TurnResult{log: []string{}}
}

func (r *TurnResult) addLog(line string) {
	r.log = append(r.log, line)
}

// addDamage accumulates amount against side; negative amounts count as zero.
func (r *TurnResult) addDamage(side Side, amount int) {
	if amount < 0 {
		amount = 0
	}
	r.damage[side] += amount
}

// Log returns a copy of the ordered narration lines.
func (r *TurnResult) Log() []string {
	cp := make([]string, len(r.log))
	copy(cp, r.log)
	return cp
}

// DamageTo returns the total damage dealt to side this turn.
//
// Postcondition: Returns >= 0.
func (r *TurnResult) DamageTo(side Side) int { return r.damage[side] }

// DamageToA is shorthand for DamageTo(SideA).
func (r *TurnResult) DamageToA() int { return r.damage[SideA] }

// DamageToB is shorthand for DamageTo(SideB).
func (r *TurnResult) DamageToB() int { return r.damage[SideB] }

// Cancelled reports whether both actions negated each other
// (double special or identical-tier clash).
func (r *TurnResult) Cancelled() bool { return r.cancelled }

// SpecialFailed reports whether side attempted a special without enough resource.
func (r *TurnResult) SpecialFailed(side Side) bool { return r.specialFailed[side] }

// EffectiveMove returns the move side actually used after validation.
func (r *TurnResult) EffectiveMove(side Side) Move { return r.effective[side] }

// Initiative returns which side acted first in a general exchange.
// ok is false when the turn ended before the exchange step.
func (r *TurnResult) Initiative() (side Side, ok bool) {
	return r.initiative, r.hasInitiative
}
