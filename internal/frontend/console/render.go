package console

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/match"
	"github.com/cory-johannsen/brawl/internal/game/roster"
)

// BarWidth is the cell width of health and special bars.
const BarWidth = 20

// Renderer formats fight output. With Color false every method returns plain
// text.
type Renderer struct {
	Color bool
}

func (r Renderer) paint(color, text string) string {
	if !r.Color {
		return text
	}
	return Colorize(color, text)
}

// StatusBar draws value out of limit as width cells, rounding the filled
// part up so any remaining value stays visible.
//
// Postcondition: the result is exactly width runes of '█' then '░'.
func StatusBar(value, limit, width int) string {
	if width <= 0 {
		return ""
	}
	if limit <= 0 {
		return strings.Repeat("░", width)
	}
	value = min(max(value, 0), limit)
	filled := (value*width + limit - 1) / limit
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func (r Renderer) healthColor(health, maxHealth int) string {
	switch {
	case health*4 <= maxHealth:
		return BrightRed
	case health*2 <= maxHealth:
		return BrightYellow
	default:
		return BrightGreen
	}
}

// FighterPanel renders a fighter's health and special bars.
func (r Renderer) FighterPanel(label string, c *combat.Combatant) string {
	var b strings.Builder
	b.WriteString(r.paint(Bold, fmt.Sprintf("%s - %s", label, c.Name())))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  HEALTH:  %3d/%-3d %s\n",
		c.Health(), c.MaxHealth(),
		r.paint(r.healthColor(c.Health(), c.MaxHealth()), StatusBar(c.Health(), c.MaxHealth(), BarWidth))))

	ready := ""
	if c.CanUseSpecialMove() {
		ready = r.paint(BrightYellow, " * READY!")
	}
	b.WriteString(fmt.Sprintf("  SPECIAL: %3d/%-3d %s%s\n",
		c.Resource(), c.ResourceMax(),
		r.paint(BrightCyan, StatusBar(c.Resource(), c.ResourceMax(), BarWidth)), ready))
	return b.String()
}

// TurnSummary renders one side's view of a turn: the move it used and the
// damage it dealt and took.
func (r Renderer) TurnSummary(label string, side combat.Side, move combat.Move, res *combat.TurnResult) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s used %s", label, move))
	if res.SpecialFailed(side) {
		b.WriteString(r.paint(Dim, " (failed)"))
	}
	b.WriteString(": ")

	dealt := res.DamageTo(side.Other())
	taken := res.DamageTo(side)
	var parts []string
	if res.Cancelled() {
		parts = append(parts, r.paint(Magenta, "Forces cancelled!"))
	}
	if dealt > 0 {
		parts = append(parts, r.paint(Green, fmt.Sprintf(">> dealt %d HP", dealt)))
	}
	if taken > 0 {
		parts = append(parts, r.paint(Red, fmt.Sprintf("<< took %d HP", taken)))
	}
	if len(parts) == 0 {
		parts = append(parts, "No damage")
	}
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("\n")
	return b.String()
}

// Turn renders a full turn report: narration, per-side summaries, and the
// round result when the round ended.
func (r Renderer) Turn(m *match.Match, rep *match.TurnReport) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightYellow, fmt.Sprintf("=== Round %d, Turn %d ===", rep.Round, rep.Turn)))
	b.WriteString("\n")
	for _, line := range rep.Result.Log() {
		b.WriteString("  ")
		b.WriteString(r.paint(White, line))
		b.WriteString("\n")
	}
	for _, side := range []combat.Side{combat.SideA, combat.SideB} {
		b.WriteString(r.TurnSummary(m.Label(side), side, rep.Moves[side], rep.Result))
	}

	if rep.RoundOver {
		b.WriteString(r.roundResult(m, rep))
	}
	return b.String()
}

func (r Renderer) roundResult(m *match.Match, rep *match.TurnReport) string {
	var how string
	switch {
	case rep.Knockout == combat.DoubleKnockout:
		how = "DOUBLE K.O.!"
	case rep.Knockout != combat.NoKnockout:
		how = "K.O.!"
	case rep.TimeOver:
		how = "TIME OVER!"
	}
	line := fmt.Sprintf("%s Round %d is a draw.", how, rep.Round)
	if !rep.RoundDraw {
		line = fmt.Sprintf("%s %s wins round %d.", how, m.Label(rep.RoundWinner), rep.Round)
	}
	return r.paint(BrightRed, line) + "\n" +
		fmt.Sprintf("Wins: %s %d - %d %s\n",
			m.Label(combat.SideA), rep.Wins[combat.SideA], rep.Wins[combat.SideB], m.Label(combat.SideB))
}

// Status renders both fighter panels with a VS divider.
func (r Renderer) Status(m *match.Match) string {
	return r.FighterPanel(m.Label(combat.SideA), m.Fighter(combat.SideA)) +
		r.paint(Dim, "  VS") + "\n" +
		r.FighterPanel(m.Label(combat.SideB), m.Fighter(combat.SideB))
}

// Outcome renders the final banner.
func (r Renderer) Outcome(m *match.Match, out match.Outcome) string {
	rule := strings.Repeat("═", 19)
	headline := "DRAW GAME"
	if !out.Draw {
		headline = fmt.Sprintf("%s WINS!", m.Label(out.Winner))
	}
	return r.paint(BrightYellow, rule) + "\n" +
		r.paint(Bold, headline) + "\n" +
		fmt.Sprintf("%d - %d after %d rounds\n", out.Wins[combat.SideA], out.Wins[combat.SideB], out.Rounds) +
		r.paint(BrightYellow, rule) + "\n"
}

// Roster renders a numbered fighter list for selection.
func (r Renderer) Roster(ros *roster.Roster) string {
	var b strings.Builder
	b.WriteString(r.paint(BrightWhite, "=== Choose your fighter ==="))
	b.WriteString("\n")
	for i, id := range ros.IDs() {
		t, _ := ros.Get(id)
		b.WriteString(fmt.Sprintf("  %d) %s", i+1, r.paint(BrightCyan, t.Name)))
		if t.Nationality != "" {
			b.WriteString(r.paint(Dim, " ("+t.Nationality+")"))
		}
		if t.Special.Name != "" {
			b.WriteString(" - " + t.Special.Name)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// MoveMenu renders the numbered move list.
func (r Renderer) MoveMenu(self *combat.Combatant) string {
	var b strings.Builder
	for i, m := range combat.Moves {
		name := m.String()
		if m == combat.Special {
			name = fmt.Sprintf("%s: %s (%d SP)", name, self.SpecialMoveName(), self.SpecialMoveCost())
		}
		b.WriteString(fmt.Sprintf("  %d) %s\n", i+1, name))
	}
	return b.String()
}
