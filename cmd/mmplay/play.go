package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
	"github.com/SaltyBoi06/mastermind-test/internal/palette"
)

// ansi maps palette names to terminal colors.
var ansi = map[string]string{
	"red":    color.Red,
	"orange": color.Bold + color.Yellow,
	"yellow": color.Yellow,
	"green":  color.Green,
	"blue":   color.Blue,
	"purple": color.Purple,
}

type player struct {
	in    io.Reader
	out   io.Writer
	sess  *game.Session
	pal   *palette.Palette
	debug bool
	color bool
}

// run drives the prompt loop until EOF or "quit".
func (p *player) run() error {
	p.help()
	p.startBanner()

	sc := bufio.NewScanner(p.in)
	for {
		p.prompt()
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "q", "quit", "exit":
			fmt.Fprintln(p.out, "bye")
			return nil
		case "h", "help":
			p.help()
			continue
		case "n", "new":
			if _, err := p.sess.NewRound(); err != nil {
				return err
			}
			p.startBanner()
			continue
		}
		p.guess(line)
	}
}

func (p *player) prompt() {
	st := p.sess.State()
	if st.Status.Terminal() {
		fmt.Fprint(p.out, "(new/quit) > ")
		return
	}
	fmt.Fprintf(p.out, "guess %d/%d > ", st.AttemptCount+1, st.MaxTries)
}

func (p *player) help() {
	var legend []string
	for _, e := range p.pal.Entries() {
		legend = append(legend, fmt.Sprintf("%s=%s", p.peg(e.ID), e.Name))
	}
	st := p.sess.State()
	fmt.Fprintf(p.out, "Crack the %d-peg code in %d tries. Colors may repeat.\n", st.Pegs, st.MaxTries)
	fmt.Fprintf(p.out, "Colors: %s\n", strings.Join(legend, " "))
	fmt.Fprintln(p.out, "Type e.g. ROYG, 1234 or \"red blue blue green\". Commands: new, help, quit.")
	fmt.Fprintln(p.out, "Feedback: ● right color & position, ○ right color wrong position.")
}

func (p *player) startBanner() {
	fmt.Fprintln(p.out, "New round started.")
	if p.debug {
		fmt.Fprintf(p.out, "[debug] secret: %s\n", p.row(p.sess.Current().DebugSecret()))
	}
}

// guess parses and submits one line, printing the outcome.
func (p *player) guess(line string) {
	code, err := p.pal.Parse(line)
	if err != nil {
		fmt.Fprintf(p.out, "%v\n", err)
		return
	}
	a, err := p.sess.SubmitGuess(code)
	if err != nil {
		fmt.Fprintln(p.out, explain(err))
		return
	}

	st := p.sess.State()
	fmt.Fprintf(p.out, "%2d  %s  %s\n", a.Seq, p.row(a.Guess), pins(a.Feedback, st.Pegs))

	switch st.Status {
	case game.StatusWon:
		secret, _ := p.sess.RevealSecret()
		fmt.Fprintf(p.out, "You cracked it in %d tries! Secret: %s\n", st.AttemptCount, p.row(secret))
	case game.StatusLost:
		secret, _ := p.sess.RevealSecret()
		fmt.Fprintf(p.out, "Out of tries, you lose. Secret was: %s\n", p.row(secret))
	default:
		fmt.Fprintf(p.out, "exact: %d, color only: %d (tries left: %d)\n",
			a.Feedback.Exact, a.Feedback.ColorOnly, st.TriesRemaining)
	}
}

// explain turns a rejected submission into a player-facing hint.
func explain(err error) string {
	switch {
	case errors.Is(err, game.ErrIncompleteGuess):
		return "Fill all pegs before submitting."
	case errors.Is(err, game.ErrInvalidColor):
		return "That color is not on the palette."
	case errors.Is(err, game.ErrRoundOver), errors.Is(err, game.ErrTriesExhausted):
		return "Round is over. Type \"new\" to play again."
	}
	return err.Error()
}

func (p *player) peg(c game.Color) string {
	e, ok := p.pal.Entry(c)
	if !ok {
		return "?"
	}
	if !p.color {
		return e.Letter
	}
	return color.Ize(ansi[e.Name], e.Letter)
}

func (p *player) row(c game.Code) string {
	parts := make([]string, len(c))
	for i, x := range c {
		parts[i] = p.peg(x)
	}
	return strings.Join(parts, " ")
}

// pins renders feedback as exact pins, then color-only pins, padded with dots.
func pins(f game.Feedback, pegs int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("●", f.Exact))
	b.WriteString(strings.Repeat("○", f.ColorOnly))
	if n := pegs - f.Exact - f.ColorOnly; n > 0 {
		b.WriteString(strings.Repeat("·", n))
	}
	return b.String()
}
