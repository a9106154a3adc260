package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/brawl/internal/game/combat"
	"github.com/cory-johannsen/brawl/internal/game/roster"
)

// ErrInputClosed is returned when the input stream ends before a choice is made.
var ErrInputClosed = errors.New("console: input closed")

// Prompter reads line-oriented choices from in and writes prompts to out.
type Prompter struct {
	in       *bufio.Scanner
	out      io.Writer
	renderer Renderer
}

// NewPrompter creates a Prompter.
//
// Precondition: in and out must be non-nil.
func NewPrompter(in io.Reader, out io.Writer, renderer Renderer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out, renderer: renderer}
}

// readLine writes prompt and returns the next trimmed line.
func (p *Prompter) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", ErrInputClosed
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// NextMove prompts until a playable move is entered by number or name.
// It satisfies match.Controller.
func (p *Prompter) NextMove(ctx context.Context, self, _ *combat.Combatant) (combat.Move, error) {
	fmt.Fprint(p.out, p.renderer.MoveMenu(self))
	for {
		line, err := p.readLine(ctx, "Your move> ")
		if err != nil {
			return combat.MoveUnknown, err
		}
		m, err := combat.ParseMove(line)
		if err == nil {
			return m, nil
		}
		fmt.Fprintln(p.out, p.renderer.paint(Red, fmt.Sprintf("%q is not a move. Enter 1-%d or a move name.", line, len(combat.Moves))))
	}
}

// ChooseFighter prompts until a fighter is chosen by list number, id or name.
func (p *Prompter) ChooseFighter(ctx context.Context, ros *roster.Roster) (*roster.Template, error) {
	fmt.Fprint(p.out, p.renderer.Roster(ros))
	ids := ros.IDs()
	for {
		line, err := p.readLine(ctx, "Fighter> ")
		if err != nil {
			return nil, err
		}
		if n, convErr := strconv.Atoi(line); convErr == nil {
			if n >= 1 && n <= len(ids) {
				t, _ := ros.Get(ids[n-1])
				return t, nil
			}
		} else if t, findErr := ros.Find(line); findErr == nil {
			return t, nil
		}
		fmt.Fprintln(p.out, p.renderer.paint(Red, fmt.Sprintf("%q is not a fighter.", line)))
	}
}
