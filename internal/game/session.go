// internal/game/session.go
//
// Session is the handle a single player holds across "new game" requests.
// Each NewRound replaces the current Round wholesale; nothing carries over.

package game

type Session struct {
	params Params
	src    Source
	round  *Round
}

// NewSession validates p and starts the first round.
func NewSession(p Params, src Source) (*Session, error) {
	s := &Session{params: p, src: src}
	if _, err := s.NewRound(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRound discards the current round and starts a fresh one.
func (s *Session) NewRound() (RoundSnapshot, error) {
	r, err := NewRound(s.params, s.src)
	if err != nil {
		return RoundSnapshot{}, err
	}
	s.round = r
	return r.Snapshot(), nil
}

// Current returns the active round.
func (s *Session) Current() *Round { return s.round }

// SubmitGuess forwards to the active round.
func (s *Session) SubmitGuess(guess Code) (Attempt, error) {
	return s.round.SubmitGuess(guess)
}

// State returns a snapshot of the active round.
func (s *Session) State() RoundSnapshot { return s.round.Snapshot() }

// RevealSecret forwards to the active round.
func (s *Session) RevealSecret() (Code, error) { return s.round.RevealSecret() }
