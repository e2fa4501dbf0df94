// internal/game/engine.go
//
// Round controller for a single Mastermind game.
// Responsibilities:
//   - Create rounds with a freshly drawn secret.
//   - Validate and apply guesses (length, assigned pegs, color range).
//   - Score guesses with Evaluate and record immutable attempts.
//   - Track state transitions: in-progress → won/lost.
//
// Notes:
//   - A Round is owned by exactly one caller; it does no locking.
//   - Rejected submissions never change state.
//   - The secret is only handed out once the round is over (RevealSecret);
//     DebugSecret is a dev-only escape hatch.

package game

import (
	"time"

	"github.com/google/uuid"
)

// Round holds the state of one game from secret generation to win/loss.
type Round struct {
	ID         string
	Params     Params
	StartedAt  time.Time
	FinishedAt time.Time
	// Mode is a caller label ("normal", "daily"); the round itself ignores it.
	Mode string

	secret   Code
	attempts []Attempt
	status   Status
}

// NewRound validates p and draws a fresh secret from src.
// A nil src falls back to CryptoSource.
func NewRound(p Params, src Source) (*Round, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		src = CryptoSource{}
	}
	return newRound(p, RandomCode(p, src)), nil
}

// NewRoundWithSecret starts a round with a predetermined secret.
// The secret must have p.Pegs pegs, each in [0, p.Colors).
func NewRoundWithSecret(p Params, secret Code) (*Round, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := checkCode(p, secret); err != nil {
		return nil, err
	}
	return newRound(p, secret.clone()), nil
}

func newRound(p Params, secret Code) *Round {
	return &Round{
		ID:        uuid.NewString(),
		Params:    p,
		StartedAt: time.Now().UTC(),
		secret:    secret,
		attempts:  make([]Attempt, 0, p.MaxTries),
		status:    StatusInProgress,
	}
}

// SubmitGuess validates and scores guess, mutating the round.
// Returns the recorded attempt, or a *ValidationError leaving the round untouched.
//
// State transitions:
//   - All pegs exact → won.
//   - Else if the attempt count reaches MaxTries → lost.
func (r *Round) SubmitGuess(guess Code) (Attempt, error) {
	if r.status.Terminal() {
		return Attempt{}, invalid(ErrRoundOver, -1)
	}
	if len(r.attempts) >= r.Params.MaxTries {
		return Attempt{}, invalid(ErrTriesExhausted, -1)
	}
	if err := checkCode(r.Params, guess); err != nil {
		return Attempt{}, err
	}

	a := Attempt{
		Seq:      len(r.attempts) + 1,
		Guess:    guess.clone(),
		Feedback: Evaluate(guess, r.secret),
	}
	r.attempts = append(r.attempts, a)

	if a.Feedback.Solved(r.Params.Pegs) {
		r.finish(StatusWon)
	} else if len(r.attempts) >= r.Params.MaxTries {
		r.finish(StatusLost)
	}
	return a.copy(), nil
}

// SubmitBuilder submits the current contents of a Guess builder.
func (r *Round) SubmitBuilder(g *Guess) (Attempt, error) {
	return r.SubmitGuess(g.Code())
}

func (r *Round) finish(s Status) {
	r.status = s
	r.FinishedAt = time.Now().UTC()
}

// Status reports the current lifecycle state.
func (r *Round) Status() Status { return r.status }

// AttemptCount reports how many guesses have been recorded.
func (r *Round) AttemptCount() int { return len(r.attempts) }

// TriesRemaining reports how many submissions are still allowed.
func (r *Round) TriesRemaining() int {
	if r.status.Terminal() {
		return 0
	}
	return r.Params.MaxTries - len(r.attempts)
}

// Attempts returns a copy of the attempt history in submission order.
func (r *Round) Attempts() []Attempt {
	out := make([]Attempt, len(r.attempts))
	for i, a := range r.attempts {
		out[i] = a.copy()
	}
	return out
}

// RevealSecret returns the secret once the round is over.
func (r *Round) RevealSecret() (Code, error) {
	if !r.status.Terminal() {
		return nil, ErrRoundInProgress
	}
	return r.secret.clone(), nil
}

// DebugSecret returns the secret regardless of status.
// Not part of the player contract; only dev tooling should call it.
func (r *Round) DebugSecret() Code { return r.secret.clone() }

// RoundSnapshot is a read-only view for rendering.
type RoundSnapshot struct {
	ID             string    `json:"gameId"`
	Status         Status    `json:"state"`
	Attempts       []Attempt `json:"attempts"`
	AttemptCount   int       `json:"attemptCount"`
	MaxTries       int       `json:"maxTries"`
	TriesRemaining int       `json:"triesRemaining"`
	Pegs           int       `json:"pegs"`
	Colors         int       `json:"colors"`
}

// Snapshot captures the current state.
func (r *Round) Snapshot() RoundSnapshot {
	return RoundSnapshot{
		ID:             r.ID,
		Status:         r.status,
		Attempts:       r.Attempts(),
		AttemptCount:   len(r.attempts),
		MaxTries:       r.Params.MaxTries,
		TriesRemaining: r.TriesRemaining(),
		Pegs:           r.Params.Pegs,
		Colors:         r.Params.Colors,
	}
}

// checkCode enforces the submission preconditions of Evaluate.
func checkCode(p Params, c Code) error {
	if len(c) != p.Pegs {
		return invalid(ErrIncompleteGuess, -1)
	}
	for i, x := range c {
		if x == NoColor {
			return invalid(ErrIncompleteGuess, i)
		}
	}
	for i, x := range c {
		if x < 0 || int(x) >= p.Colors {
			return invalid(ErrInvalidColor, i)
		}
	}
	return nil
}

func (a Attempt) copy() Attempt {
	a.Guess = a.Guess.clone()
	return a
}
