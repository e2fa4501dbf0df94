// internal/game/errors.go
//
// Error taxonomy for the round controller.
// Every rejected submission returns a *ValidationError wrapping one of the
// sentinels below, so callers can branch with errors.Is and still report the
// offending peg position when there is one.

package game

import (
	"errors"
	"fmt"
)

var (
	ErrIncompleteGuess = errors.New("incomplete guess")
	ErrInvalidColor    = errors.New("invalid color")
	ErrRoundOver       = errors.New("round over")
	// ErrTriesExhausted is a consistency guard: the status should already be lost.
	ErrTriesExhausted = errors.New("no tries left")

	ErrRoundInProgress = errors.New("round in progress")
	ErrBadParams       = errors.New("params must be positive")
	ErrBadPosition     = errors.New("position out of range")
)

// ValidationError reports why a guess was rejected.
// Pos is the offending peg index, or -1 when the error is not about a single peg.
type ValidationError struct {
	Err error
	Pos int
}

func (e *ValidationError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%v at position %d", e.Err, e.Pos+1)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error, pos int) error { return &ValidationError{Err: err, Pos: pos} }
