package combat

import (
	"fmt"
	"strings"
)

type movePair struct{ first, second Move }

// exchangeLines holds flavour text keyed by an ordered pair of effective
// moves. {1} names the side holding the first move of the pair, {2} the
// other; the reversed pair is served by swapping the names.
var exchangeLines = map[movePair][]string{
	{LightAttack, HeavyAttack}: {
		"{1} throws a quick jab!",
		"{2} winds up for a heavy strike...",
		"But {1}'s lightning-fast attack gets there first!",
	},
	{LightAttack, Block}: {
		"{1} launches a quick strike!",
		"{2} raises their guard and blocks it completely!",
	},
	{LightAttack, Dodge}: {
		"{1} throws a swift attack!",
		"{2} tries to evade...",
		"But the attack is too fast!",
	},
	{HeavyAttack, Block}: {
		"{1} unleashes a powerful heavy attack!",
		"{2} tries to block...",
		"But the force is overwhelming! The attack breaks through!",
	},
	{HeavyAttack, Dodge}: {
		"{1} winds up a massive strike!",
		"{2} reads the attack and evades gracefully!",
		"{1}'s attack whiffs through empty air!",
	},
	{Block, Block}: {
		"Both fighters stand in defensive stance...",
		"A tense standoff as they wait for an opening!",
	},
	{Dodge, Dodge}: {
		"Both fighters are moving evasively!",
		"They circle each other, looking for an advantage!",
	},
	{Block, Dodge}: {
		"Both fighters play it safe with defensive maneuvers!",
		"No attacks connect this round!",
	},
}

// describeExchange appends the flavour text for a general exchange.
func describeExchange(res *TurnResult, a, b *contender) {
	for _, c := range []*contender{a, b} {
		other := b
		if c == b {
			other = a
		}
		if c.specialFailed && other.effective.IsAttack() {
			res.addLog(fmt.Sprintf("%s sees the opening and goes for it!", other.label))
			return
		}
	}

	lines, ok := exchangeLines[movePair{a.effective, b.effective}]
	names := strings.NewReplacer("{1}", a.label, "{2}", b.label)
	if !ok {
		lines, ok = exchangeLines[movePair{b.effective, a.effective}]
		names = strings.NewReplacer("{1}", b.label, "{2}", a.label)
	}
	if !ok {
		return
	}
	for _, l := range lines {
		res.addLog(names.Replace(l))
	}
}
