package combat

import (
	"fmt"

	"go.uber.org/zap"
)

// Source is the subset of dice.Source used by the resolver.
// Using a local interface avoids a circular import.
type Source interface {
	Intn(n int) int
}

// Entrant is one side's submission for a turn.
type Entrant struct {
	Fighter *Combatant
	Move    Move
	// Label is the display name used in narration; empty uses Fighter.Name().
	Label string
}

// Resolver turns a pair of submitted moves into a TurnResult.
// Its only randomness is the initiative coin flip drawn from src.
type Resolver struct {
	src    Source
	logger *zap.Logger
}

// NewResolver creates a Resolver.
//
// Precondition: src and logger must be non-nil.
func NewResolver(src Source, logger *zap.Logger) *Resolver {
	if src == nil {
		panic("combat.NewResolver: src must not be nil")
	}
	if logger == nil {
		panic("combat.NewResolver: logger must not be nil")
	}
	return &Resolver{src: src, logger: logger}
}

// contender is the per-side working state of a single Resolve call.
type contender struct {
	side          Side
	fighter       *Combatant
	label         string
	submitted     Move
	effective     Move
	specialFailed bool
}

func newContender(side Side, e Entrant) *contender {
	if e.Fighter == nil {
		panic(fmt.Sprintf("combat.Resolve: side %s fighter must not be nil", side))
	}
	if !e.Move.Playable() {
		panic(fmt.Sprintf("combat.Resolve: side %s submitted unrecognized move %q (%d)", side, e.Move.String(), int(e.Move)))
	}
	label := e.Label
	if label == "" {
		label = e.Fighter.Name()
	}
	return &contender{
		side:      side,
		fighter:   e.Fighter,
		label:     label,
		submitted: e.Move,
		effective: e.Move,
	}
}

func (c *contender) hasValidSpecial() bool {
	return c.effective == Special && !c.specialFailed
}

// Resolve resolves one turn between a (SideA) and b (SideB), mutating both
// fighters' health and resource in place.
//
// Precondition: both fighters are non-nil and both moves are playable
// (LightAttack, HeavyAttack, Block, Dodge or Special); violations panic.
// Postcondition: returns a non-nil TurnResult; both fighters satisfy the
// clamp invariants.
func (r *Resolver) Resolve(a, b Entrant) *TurnResult {
	ca := newContender(SideA, a)
	cb := newContender(SideB, b)
	res := newTurnResult()

	for _, c := range []*contender{ca, cb} {
		if c.submitted == Special && !c.fighter.CanUseSpecialMove() {
			res.addLog(fmt.Sprintf("%s tried to use their special move, but didn't have enough SP!", c.label))
			res.addLog(fmt.Sprintf("%s is left wide open!", c.label))
			c.specialFailed = true
			c.effective = Block
		}
		res.specialFailed[c.side] = c.specialFailed
		res.effective[c.side] = c.effective
	}

	switch {
	case ca.hasValidSpecial() && cb.hasValidSpecial():
		r.specialCollision(res, ca, cb)
	case ca.hasValidSpecial():
		r.applySpecial(res, ca, cb)
	case cb.hasValidSpecial():
		r.applySpecial(res, cb, ca)
	case ca.effective.IsAttack() && ca.effective == cb.effective:
		r.clash(res, ca, cb)
	default:
		r.exchange(res, ca, cb)
	}

	r.logger.Debug("turn resolved",
		zap.String("move_a", ca.submitted.Key()),
		zap.String("move_b", cb.submitted.Key()),
		zap.String("effective_a", ca.effective.Key()),
		zap.String("effective_b", cb.effective.Key()),
		zap.Int("damage_to_a", res.DamageToA()),
		zap.Int("damage_to_b", res.DamageToB()),
		zap.Bool("cancelled", res.Cancelled()),
	)
	return res
}

func (r *Resolver) specialCollision(res *TurnResult, a, b *contender) {
	res.addLog(fmt.Sprintf("%s unleashes %s!", a.label, a.fighter.SpecialMoveName()))
	res.addLog(fmt.Sprintf("%s counters with %s!", b.label, b.fighter.SpecialMoveName()))
	res.addLog("The special moves collide in a spectacular explosion!")
	res.addLog("Forces cancel each other out!")
	res.cancelled = true
}

// applySpecial lands actor's special on target as a full interrupt: the
// target's stance is ignored and the target does not act this turn.
func (r *Resolver) applySpecial(res *TurnResult, actor, target *contender) {
	dmg := scale(actor.fighter.SpecialMovePower(), actor.fighter.DamageMultiplier(Special, target.effective))
	target.fighter.ApplyDamage(dmg)
	actor.fighter.AdjustResource(-actor.fighter.SpecialMoveCost())
	res.addDamage(target.side, dmg)

	res.addLog(fmt.Sprintf("%s unleashes %s!", actor.label, actor.fighter.SpecialMoveName()))
	res.addLog(fmt.Sprintf("A devastating blast of energy strikes %s!", target.label))
	res.addLog(fmt.Sprintf("CRITICAL HIT! %d damage!", dmg))
}

// clash resolves identical attack tiers: each side deals half of its own
// unmodified tier damage to the other, simultaneously.
func (r *Resolver) clash(res *TurnResult, a, b *contender) {
	res.addLog(fmt.Sprintf("%s uses %s!", a.label, a.effective))
	res.addLog(fmt.Sprintf("%s uses %s!", b.label, b.effective))
	res.addLog("Both attacks clash!")

	dmgToB := baseDamage(a.fighter, a.effective) / 2
	dmgToA := baseDamage(b.fighter, b.effective) / 2
	a.fighter.ApplyDamage(dmgToA)
	b.fighter.ApplyDamage(dmgToB)
	if dmgToB > 0 {
		r.landed(res, a, b, dmgToB)
	}
	if dmgToA > 0 {
		r.landed(res, b, a, dmgToA)
	}
	res.addLog(fmt.Sprintf("Both fighters stagger! %s takes %d, %s takes %d.", a.label, dmgToA, b.label, dmgToB))
	res.cancelled = true
}

func (r *Resolver) exchange(res *TurnResult, a, b *contender) {
	describeExchange(res, a, b)

	first, second := a, b
	if r.initiative(a.effective, b.effective) == SideB {
		first, second = b, a
	}
	res.initiative = first.side
	res.hasInitiative = true

	r.act(res, first, second)
	if !second.fighter.IsKnockedOut() && second.effective.IsAttack() {
		r.act(res, second, first)
	}
}

// initiative returns the side whose move applies first. LightAttack always
// beats HeavyAttack; every other pairing is a fair coin flip.
func (r *Resolver) initiative(a, b Move) Side {
	switch {
	case a == LightAttack && b == HeavyAttack:
		return SideA
	case a == HeavyAttack && b == LightAttack:
		return SideB
	}
	if r.src.Intn(2) == 0 {
		return SideA
	}
	return SideB
}

// act applies actor's effective move to target. A target whose special
// failed has no defence.
func (r *Resolver) act(res *TurnResult, actor, target *contender) {
	if !actor.effective.IsAttack() {
		return
	}
	dmg := attackDamage(actor, target)
	if dmg <= 0 {
		return
	}
	target.fighter.ApplyDamage(dmg)
	r.landed(res, actor, target, dmg)
	res.addLog(fmt.Sprintf("%s's %s hits %s for %d damage!", actor.label, actor.effective, target.label, dmg))
}

// landed records a non-zero hit and fires both hit reactions.
func (r *Resolver) landed(res *TurnResult, actor, target *contender, dmg int) {
	res.addDamage(target.side, dmg)
	actor.fighter.OnAttackLanded(target.fighter, dmg)
	target.fighter.OnDamageTaken(actor.fighter, dmg)
}

// baseDamage is attackPower for LightAttack and twice that for HeavyAttack.
func baseDamage(c *Combatant, m Move) int {
	switch m {
	case LightAttack:
		return c.AttackPower()
	case HeavyAttack:
		return c.AttackPower() * 2
	default:
		return 0
	}
}

// attackDamage computes the damage actor's attack deals to target.
// Block absorbs LightAttack, Dodge evades HeavyAttack, and neither applies
// when target's special failed.
func attackDamage(actor, target *contender) int {
	if !target.specialFailed {
		switch {
		case target.effective == Block && actor.effective == LightAttack:
			return 0
		case target.effective == Dodge && actor.effective == HeavyAttack:
			return 0
		}
	}
	base := baseDamage(actor.fighter, actor.effective)
	return scale(base, actor.fighter.DamageMultiplier(actor.effective, target.effective))
}

// scale applies a percentage multiplier with integer truncation.
func scale(base, pct int) int {
	if base <= 0 || pct <= 0 {
		return 0
	}
	return base * pct / 100
}
