// internal/game/guess.go
//
// Guess is the partially-filled builder a player edits before submitting.
// Slots start empty (NoColor); Complete reports whether every peg is assigned.

package game

// Guess holds one candidate code under construction.
type Guess struct {
	slots Code
}

// NewGuess returns a guess with pegs empty slots.
func NewGuess(pegs int) *Guess {
	g := &Guess{slots: make(Code, pegs)}
	g.Reset()
	return g
}

// GuessFrom wraps an existing code (copied). Negative entries count as empty.
func GuessFrom(c Code) *Guess {
	g := &Guess{slots: c.clone()}
	for i, x := range g.slots {
		if x < 0 {
			g.slots[i] = NoColor
		}
	}
	return g
}

// Set places color c at pos. Color range is checked on submit, not here.
func (g *Guess) Set(pos int, c Color) error {
	if pos < 0 || pos >= len(g.slots) {
		return ErrBadPosition
	}
	g.slots[pos] = c
	return nil
}

// Clear empties pos.
func (g *Guess) Clear(pos int) error {
	return g.Set(pos, NoColor)
}

// Reset empties every slot.
func (g *Guess) Reset() {
	for i := range g.slots {
		g.slots[i] = NoColor
	}
}

// Filled counts assigned slots.
func (g *Guess) Filled() int {
	n := 0
	for _, x := range g.slots {
		if x != NoColor {
			n++
		}
	}
	return n
}

// Complete reports whether every slot is assigned.
func (g *Guess) Complete() bool { return g.Filled() == len(g.slots) }

// Code returns a copy of the current slots.
func (g *Guess) Code() Code { return g.slots.clone() }
