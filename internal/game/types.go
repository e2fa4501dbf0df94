// internal/game/types.go
//
// Core type definitions for the Mastermind game engine.
// Defines:
//   - Color/Code: peg colors and fixed-length peg sequences.
//   - Params: pegs per code, palette size, attempt cap.
//   - Feedback/Attempt: the scored result of one submitted guess.
//   - Status: round lifecycle (in-progress → won/lost).

package game

import (
	"strconv"
	"strings"
)

const (
	DefaultPegs     = 4
	DefaultColors   = 6
	DefaultMaxTries = 10
)

// Color identifies one palette entry, 0..Colors-1.
// NoColor marks an unassigned slot in a Guess.
type Color int

const NoColor Color = -1

// Code is an ordered sequence of pegs (a secret or a guess).
type Code []Color

// String renders the code with 1-based color numbers, e.g. "1,4,4,6".
// Empty slots are rendered as "_".
func (c Code) String() string {
	parts := make([]string, len(c))
	for i, x := range c {
		if x == NoColor {
			parts[i] = "_"
			continue
		}
		parts[i] = strconv.Itoa(int(x) + 1)
	}
	return strings.Join(parts, ",")
}

// Equal reports whether two codes hold the same pegs in the same order.
func (c Code) Equal(o Code) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

// clone returns an independent copy so recorded history can't be mutated by callers.
func (c Code) clone() Code {
	if c == nil {
		return nil
	}
	out := make(Code, len(c))
	copy(out, c)
	return out
}

// Params holds the fixed dimensions of a round.
type Params struct {
	Pegs     int `json:"pegs"`     // length of every Code (P)
	Colors   int `json:"colors"`   // palette size (K)
	MaxTries int `json:"maxTries"` // attempts before a forced loss
}

// DefaultParams returns the classic 4 pegs / 6 colors / 10 tries setup.
func DefaultParams() Params {
	return Params{Pegs: DefaultPegs, Colors: DefaultColors, MaxTries: DefaultMaxTries}
}

// Validate rejects non-positive dimensions.
func (p Params) Validate() error {
	if p.Pegs <= 0 || p.Colors <= 0 || p.MaxTries <= 0 {
		return ErrBadParams
	}
	return nil
}

// Feedback is the evaluation of one guess against the secret.
type Feedback struct {
	Exact     int `json:"exact"`     // right color, right position
	ColorOnly int `json:"colorOnly"` // right color, wrong position
}

// Solved reports whether the feedback means every peg was placed correctly.
func (f Feedback) Solved(pegs int) bool { return f.Exact == pegs }

// Attempt is an immutable record of one submitted guess.
type Attempt struct {
	Seq      int      `json:"seq"` // 1-based
	Guess    Code     `json:"guess"`
	Feedback Feedback `json:"feedback"`
}

// Status is the coarse lifecycle state of a round.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }
