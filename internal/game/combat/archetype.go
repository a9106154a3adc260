package combat

// Archetype is the per-fighter behaviour plugged into a Combatant.
//
// Implementations must only mutate the combatants passed to them through
// their clamped setters and must not perform I/O.
type Archetype interface {
	// SpecialMoveName returns the shouted name of the special, e.g. "HADOUKEN".
	SpecialMoveName() string
	// SpecialMoveDescription returns flavour text for the special.
	SpecialMoveDescription() string
	// DamageMultiplier returns the percentage applied to self's base damage
	// for attack against defense. 100 means unmodified.
	DamageMultiplier(self *Combatant, attack, defense Move) int
	// OnAttackLanded is called after self lands a non-zero hit on target.
	OnAttackLanded(self, target *Combatant, damage int)
	// OnDamageTaken is called after self takes a non-zero hit from attacker.
	OnDamageTaken(self, attacker *Combatant, damage int)
	// CanUseSpecialMove reports whether self may perform its special now.
	CanUseSpecialMove(self *Combatant) bool
}

// SpecialMove names and describes a fighter's special.
type SpecialMove struct {
	Name        string
	Description string
}

// DefaultBehavior implements Archetype with the stock rules. Concrete
// archetypes embed it and override what differs.
type DefaultBehavior struct {
	Special SpecialMove
}

// SpecialMoveName returns the configured name, or "SPECIAL MOVE".
func (d DefaultBehavior) SpecialMoveName() string {
	if d.Special.Name == "" {
		return "SPECIAL MOVE"
	}
	return d.Special.Name
}

func (d DefaultBehavior) SpecialMoveDescription() string { return d.Special.Description }

// DamageMultiplier is 100 for every pairing.
func (DefaultBehavior) DamageMultiplier(_ *Combatant, _, _ Move) int { return 100 }

// OnAttackLanded grants DefaultLandedGain resource.
func (DefaultBehavior) OnAttackLanded(self, _ *Combatant, _ int) {
	self.AdjustResource(DefaultLandedGain)
}

// OnDamageTaken grants DefaultTakenGain resource.
func (DefaultBehavior) OnDamageTaken(self, _ *Combatant, _ int) {
	self.AdjustResource(DefaultTakenGain)
}

// CanUseSpecialMove requires Resource() >= SpecialMoveCost().
func (DefaultBehavior) CanUseSpecialMove(self *Combatant) bool {
	return self.Resource() >= self.SpecialMoveCost()
}
