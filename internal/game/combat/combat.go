// Package combat implements the two-combatant turn resolution engine.
package combat

// Fallback stats applied when a Profile carries a non-positive value.
const (
	FallbackMaxHealth        = 100
	FallbackResourceMax      = 100
	FallbackAttackPower      = 10
	FallbackDefensePower     = 10
	FallbackSpecialMovePower = 50
	FallbackSpecialMoveCost  = 50
)

// Default resource gains granted by the stock hit reactions.
const (
	DefaultLandedGain = 10
	DefaultTakenGain  = 5
)

// Profile is the construction input for a Combatant.
// Non-positive stats are replaced by the Fallback* constants.
type Profile struct {
	Name        string
	Nationality string
	Background  string
	MaxHealth   int
	ResourceMax int
	AttackPower int
	// DefensePower is descriptive. Damage resolution never reads it.
	DefensePower     int
	SpecialMovePower int
	SpecialMoveCost  int
	// StartingResource is clamped into [0, ResourceMax].
	StartingResource int
}

// Combatant is one fighter's mutable battle state plus its archetype behaviour.
//
// Invariant: 0 <= Health() <= MaxHealth() and 0 <= Resource() <= ResourceMax().
type Combatant struct {
	name        string
	nationality string
	background  string

	maxHealth int
	health    int

	resourceMax int
	resource    int

	attackPower      int
	defensePower     int
	specialMovePower int
	specialMoveCost  int

	behavior Archetype
}

// NewCombatant builds a fully initialised combatant at full health.
// A nil behavior selects DefaultBehavior.
//
// Postcondition: every stat is positive; Health() == MaxHealth();
// Resource() == clamp(p.StartingResource).
func NewCombatant(p Profile, behavior Archetype) *Combatant {
	if behavior == nil {
		behavior = DefaultBehavior{}
	}
	c := &Combatant{
		name:             p.Name,
		nationality:      p.Nationality,
		background:       p.Background,
		maxHealth:        positiveOr(p.MaxHealth, FallbackMaxHealth),
		resourceMax:      positiveOr(p.ResourceMax, FallbackResourceMax),
		attackPower:      positiveOr(p.AttackPower, FallbackAttackPower),
		defensePower:     positiveOr(p.DefensePower, FallbackDefensePower),
		specialMovePower: positiveOr(p.SpecialMovePower, FallbackSpecialMovePower),
		specialMoveCost:  positiveOr(p.SpecialMoveCost, FallbackSpecialMoveCost),
		behavior:         behavior,
	}
	c.health = c.maxHealth
	c.resource = clamp(p.StartingResource, 0, c.resourceMax)
	return c
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *Combatant) Name() string        { return c.name }
func (c *Combatant) Nationality() string { return c.nationality }
func (c *Combatant) Background() string  { return c.background }
func (c *Combatant) MaxHealth() int      { return c.maxHealth }
func (c *Combatant) Health() int         { return c.health }
func (c *Combatant) ResourceMax() int    { return c.resourceMax }
func (c *Combatant) Resource() int       { return c.resource }
func (c *Combatant) AttackPower() int    { return c.attackPower }
func (c *Combatant) DefensePower() int   { return c.defensePower }
func (c *Combatant) SpecialMovePower() int {
	return c.specialMovePower
}
func (c *Combatant) SpecialMoveCost() int { return c.specialMoveCost }

// Behavior returns the archetype attached to this combatant.
func (c *Combatant) Behavior() Archetype { return c.behavior }

// SetHealth writes health, clamped to [0, MaxHealth()].
func (c *Combatant) SetHealth(v int) { c.health = clamp(v, 0, c.maxHealth) }

// SetResource writes the resource bar, clamped to [0, ResourceMax()].
func (c *Combatant) SetResource(v int) { c.resource = clamp(v, 0, c.resourceMax) }

// AdjustResource adds delta (which may be negative) to the resource bar.
//
// Postcondition: 0 <= Resource() <= ResourceMax().
func (c *Combatant) AdjustResource(delta int) { c.SetResource(c.resource + delta) }

// ApplyDamage reduces health by amount, flooring at zero.
// Non-positive amounts are ignored.
//
// Postcondition: Health() >= 0.
func (c *Combatant) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.SetHealth(c.health - amount)
}

// IsKnockedOut reports whether health has reached zero.
func (c *Combatant) IsKnockedOut() bool { return c.health <= 0 }

// HealthFraction returns health as a fraction of max health in [0, 1].
func (c *Combatant) HealthFraction() float64 {
	return float64(c.health) / float64(c.maxHealth)
}

// ResetForNewRound restores full health and empties the resource bar.
// StartingResource only applies when the combatant is built.
func (c *Combatant) ResetForNewRound() {
	c.health = c.maxHealth
	c.resource = 0
}

// SpecialMoveName delegates to the archetype.
func (c *Combatant) SpecialMoveName() string { return c.behavior.SpecialMoveName() }

// SpecialMoveDescription delegates to the archetype.
func (c *Combatant) SpecialMoveDescription() string {
	return c.behavior.SpecialMoveDescription()
}

// CanUseSpecialMove reports whether the archetype allows a special this turn.
func (c *Combatant) CanUseSpecialMove() bool { return c.behavior.CanUseSpecialMove(c) }

// DamageMultiplier returns the archetype's percentage multiplier, floored at zero.
func (c *Combatant) DamageMultiplier(attack, defense Move) int {
	pct := c.behavior.DamageMultiplier(c, attack, defense)
	if pct < 0 {
		return 0
	}
	return pct
}

// OnAttackLanded fires the archetype's landed-hit reaction.
func (c *Combatant) OnAttackLanded(target *Combatant, damage int) {
	c.behavior.OnAttackLanded(c, target, damage)
}

// OnDamageTaken fires the archetype's hit-taken reaction.
func (c *Combatant) OnDamageTaken(attacker *Combatant, damage int) {
	c.behavior.OnDamageTaken(c, attacker, damage)
}
