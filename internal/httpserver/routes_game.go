// internal/httpserver/routes_game.go
//
// Free-play game endpoints.
//   - POST /game/new          → start a round, return its snapshot + palette
//   - POST /game/guess        → submit a guess, return the attempt + state
//   - GET  /game/{id}         → read-only snapshot for rendering
//   - GET  /game/{id}/secret  → reveal, only once the round is over
//
// Every rejected guess leaves the round untouched and reports a typed error code.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
	"github.com/SaltyBoi06/mastermind-test/internal/palette"
	"github.com/SaltyBoi06/mastermind-test/internal/store"
)

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	// Secret fixes the code (palette syntax). Honored only with DEBUG_SECRET=true.
	Secret string `json:"secret"`
}

// newGameRes embeds the snapshot and adds the palette for rendering.
type newGameRes struct {
	game.RoundSnapshot
	Palette []palette.Entry `json:"palette"`
}

// handleNewGame creates a new in-memory round and a ledger row for history/stats.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	rd, err := s.newRound(req.Secret)
	if err != nil {
		writeGuessError(w, err)
		return
	}
	rd.Mode = modeNormal
	if err := s.store.Save(r.Context(), rd); err != nil {
		log.Error().Err(err).Msg("save round")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.recordStart(w, r, rd)

	writeJSON(w, http.StatusOK, newGameRes{RoundSnapshot: rd.Snapshot(), Palette: s.pal.Entries()})
}

// newRound draws a random secret, or uses a fixed one in debug mode.
func (s *Server) newRound(fixed string) (*game.Round, error) {
	if fixed != "" && s.cfg.DebugSecret {
		code, err := s.pal.Parse(fixed)
		if err != nil {
			return nil, err
		}
		return game.NewRoundWithSecret(s.params, code)
	}
	return game.NewRound(s.params, nil)
}

// guessReq is the payload for POST /game/guess.
// The guess is either an int array (null = empty peg) or a palette string.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  []*int `json:"guess,omitempty"`
	Code   string `json:"code,omitempty"`
}

// code converts the request into a game.Code.
func (g guessReq) code(pal *palette.Palette) (game.Code, error) {
	if g.Code != "" {
		return pal.Parse(g.Code)
	}
	out := make(game.Code, len(g.Guess))
	for i, v := range g.Guess {
		if v == nil {
			out[i] = game.NoColor
			continue
		}
		out[i] = game.Color(*v)
	}
	return out, nil
}

// guessRes is returned by POST /game/guess.
type guessRes struct {
	Attempt        game.Attempt `json:"attempt"`
	State          game.Status  `json:"state"`
	TriesRemaining int          `json:"triesRemaining"`
	Secret         game.Code    `json:"secret,omitempty"` // revealed once the round is over
}

// handleGuess applies a guess to an in-memory round and updates the ledger
// (best effort) when the round finishes.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	guess, err := req.code(s.pal)
	if err != nil {
		writeGuessError(w, err)
		return
	}

	var (
		res      guessRes
		finished bool
	)
	err = s.store.Update(r.Context(), req.GameID, func(rd *game.Round) error {
		if rd.Mode == modeDaily {
			return errDailyRound
		}
		a, err := rd.SubmitGuess(guess)
		if err != nil {
			return err
		}
		res = guessRes{Attempt: a, State: rd.Status(), TriesRemaining: rd.TriesRemaining()}
		if rd.Status().Terminal() {
			finished = true
			res.Secret, _ = rd.RevealSecret()
		}
		return nil
	})
	if err != nil {
		writeGuessError(w, err)
		return
	}

	s.recordAttempt(w, r, req.GameID, res, finished)
	writeJSON(w, http.StatusOK, res)
}

// handleState returns the snapshot of a round.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snap game.RoundSnapshot
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(rd *game.Round) error {
		snap = rd.Snapshot()
		return nil
	})
	if err != nil {
		writeGuessError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// secretRes is returned by GET /game/{id}/secret.
type secretRes struct {
	Secret  game.Code   `json:"secret"`
	Letters string      `json:"letters"`
	State   game.Status `json:"state"`
}

// handleSecret reveals the secret of a finished round.
// With DEBUG_SECRET=true, ?debug=1 reveals it early (dev tooling only).
func (s *Server) handleSecret(w http.ResponseWriter, r *http.Request) {
	debug := s.cfg.DebugSecret && r.URL.Query().Get("debug") == "1"
	var res secretRes
	err := s.store.View(r.Context(), chi.URLParam(r, "id"), func(rd *game.Round) error {
		res.State = rd.Status()
		if debug {
			res.Secret = rd.DebugSecret()
			return nil
		}
		code, err := rd.RevealSecret()
		res.Secret = code
		return err
	})
	if err != nil {
		writeGuessError(w, err)
		return
	}
	res.Letters = s.pal.Letters(res.Secret)
	writeJSON(w, http.StatusOK, res)
}

// writeGuessError maps game/store/palette errors onto status codes and error codes.
func writeGuessError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, store.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrIncompleteGuess):
		status, code = http.StatusBadRequest, "incomplete_guess"
	case errors.Is(err, game.ErrInvalidColor), errors.Is(err, palette.ErrUnknownColor):
		status, code = http.StatusBadRequest, "invalid_color"
	case errors.Is(err, game.ErrRoundOver):
		status, code = http.StatusConflict, "round_over"
	case errors.Is(err, game.ErrTriesExhausted):
		status, code = http.StatusConflict, "tries_exhausted"
	case errors.Is(err, game.ErrRoundInProgress):
		status, code = http.StatusConflict, "round_in_progress"
	case errors.Is(err, errDailyRound):
		status, code = http.StatusConflict, "daily_round"
	default:
		log.Error().Err(err).Msg("unexpected game error")
	}

	body := errorRes{Error: code, Message: err.Error()}
	var ve *game.ValidationError
	if errors.As(err, &ve) && ve.Pos >= 0 {
		pos := ve.Pos + 1
		body.Position = &pos
	}
	writeJSON(w, status, body)
}
