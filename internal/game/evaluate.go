// internal/game/evaluate.go
//
// Guess evaluation.
//
// Pass 1:
//   - Count exact matches.
//   - Tally the remaining (non-exact) secret pegs by color.
//
// Pass 2:
//   - For each non-exact guess peg, if the tally for its color is positive,
//     count a color-only match and decrement the tally.
//
// Each secret peg backs at most one feedback point and each guess peg backs at
// most one, so repeated colors in either code are handled correctly.

package game

import "fmt"

// Evaluate scores guess against secret.
// Both codes must have the same length and only hold colors 0..K-1; the round
// controller validates guesses before calling this, so a violation is a bug and panics.
func Evaluate(guess, secret Code) Feedback {
	if len(guess) != len(secret) {
		panic(fmt.Sprintf("game: evaluate length mismatch (%d vs %d)", len(guess), len(secret)))
	}

	var fb Feedback
	var buf [tallySize]int
	remaining := buf[:]
	if top := maxColor(secret); int(top) >= len(remaining) {
		remaining = make([]int, top+1)
	}

	for i := range secret {
		if guess[i] < 0 || secret[i] < 0 {
			panic(fmt.Sprintf("game: evaluate unassigned peg at %d", i))
		}
		if guess[i] == secret[i] {
			fb.Exact++
		} else {
			remaining[secret[i]]++
		}
	}

	for i := range guess {
		if guess[i] == secret[i] {
			continue
		}
		if c := guess[i]; int(c) < len(remaining) && remaining[c] > 0 {
			fb.ColorOnly++
			remaining[c]--
		}
	}
	return fb
}

// tallySize covers the usual palettes without a heap allocation.
const tallySize = 16

func maxColor(c Code) Color {
	top := Color(0)
	for _, x := range c {
		if x > top {
			top = x
		}
	}
	return top
}
