// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes three endpoints under /daily:
//   - POST /daily/new         → start a daily round (creates or reuses session)
//   - POST /daily/guess       → submit a guess for today's daily round
//   - GET  /daily/leaderboard → winners for today (or ?date=YYYY-MM-DD)
//
// Each player gets one daily result per date (enforced by DB + in-memory session).
// The secret is derived from date + salt, so everyone shares the same code.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/SaltyBoi06/mastermind-test/internal/daily"
	"github.com/SaltyBoi06/mastermind-test/internal/game"
	"github.com/SaltyBoi06/mastermind-test/internal/store"
)

var (
	errNoSession  = errors.New("no daily session")
	errDailyRound = errors.New("daily rounds are played through /daily/guess")
)

const (
	modeNormal = "normal"
	modeDaily  = "daily"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv      *Server
	store    *daily.Store
	salt     string
	now      func() time.Time
	sessions map[string]*dailySession // keyed by userID|date
	day      string                   // date the sessions belong to
	mu       sync.Mutex               // guards sessions and day
}

// dailySession maps a player's daily round to its store entry.
type dailySession struct {
	GameID   string
	UserID   string
	Date     string
	Start    time.Time
	Finished bool
}

// mount registers all /daily routes.
func (d *dailyServer) mount(r chi.Router) {
	r.Post("/new", d.handleNew)
	r.Post("/guess", d.handleGuess)
	r.Get("/leaderboard", d.handleLeaderboard)
}

func (d *dailyServer) today() string {
	if d.now != nil {
		return daily.DateKey(d.now())
	}
	return daily.DateKey(time.Now())
}

// userID returns the authenticated user ID, or the anonymous cookie ID.
func (d *dailyServer) userID(w http.ResponseWriter, r *http.Request) string {
	if me := userFrom(r); me != nil {
		return me.ID
	}
	return d.srv.ensureAnonID(w, r)
}

// session looks up key, dropping every session from an earlier day first.
// Callers must hold d.mu.
func (d *dailyServer) session(key, date string) (*dailySession, bool) {
	if d.day != date {
		for k, sess := range d.sessions {
			if sess.Date != date {
				delete(d.sessions, k)
			}
		}
		d.day = date
	}
	sess, ok := d.sessions[key]
	return sess, ok
}

// forget drops key if it still points at gameID.
func (d *dailyServer) forget(key, gameID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if sess, ok := d.sessions[key]; ok && sess.GameID == gameID {
		delete(d.sessions, key)
		return true
	}
	return false
}

// prune drops sessions from earlier days and sessions whose round has left the
// store. It returns how many were dropped.
func (d *dailyServer) prune(ctx context.Context) int {
	date := d.today()
	d.mu.Lock()
	before := len(d.sessions)
	d.session("", date)
	n := before - len(d.sessions)
	ids := make(map[string]string, len(d.sessions))
	for k, sess := range d.sessions {
		ids[k] = sess.GameID
	}
	d.mu.Unlock()

	for k, id := range ids {
		err := d.srv.store.View(ctx, id, func(*game.Round) error { return nil })
		if errors.Is(err, store.ErrNotFound) && d.forget(k, id) {
			n++
		}
	}
	return n
}

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string              `json:"gameId,omitempty"`
	Date   string              `json:"date"`
	Played bool                `json:"played"`
	Round  *game.RoundSnapshot `json:"round,omitempty"`
}

// handleNew creates or reuses a daily session for the current date.
//   - If the player already has a DB row for today → Played=true.
//   - Otherwise create/reuse an in-memory round and return its snapshot.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)
	date := d.today()

	if played, err := d.store.AlreadyPlayed(r.Context(), uid, date); err != nil {
		log.Warn().Err(err).Msg("daily already played")
	} else if played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: date, Played: true})
		return
	}

	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.session(key, date)
	d.mu.Unlock()

	if ok {
		snap, err := d.snapshot(r.Context(), sess.GameID)
		if err == nil {
			writeJSON(w, http.StatusOK, dailyNewRes{GameID: sess.GameID, Date: date, Round: &snap})
			return
		}
		// Round was swept from memory; start over below.
		d.forget(key, sess.GameID)
	}

	rd, err := game.NewRound(d.srv.params, daily.NewSource(date, d.salt))
	if err != nil {
		writeGuessError(w, err)
		return
	}
	rd.Mode = modeDaily
	if err := d.srv.store.Save(r.Context(), rd); err != nil {
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}

	d.mu.Lock()
	cur, raced := d.session(key, date)
	if !raced {
		d.sessions[key] = &dailySession{GameID: rd.ID, UserID: uid, Date: date, Start: time.Now()}
	}
	d.mu.Unlock()

	if raced {
		// A concurrent request for the same player won; hand back its round.
		_ = d.srv.store.Delete(r.Context(), rd.ID)
		snap, err := d.snapshot(r.Context(), cur.GameID)
		if err != nil {
			writeGuessError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, dailyNewRes{GameID: cur.GameID, Date: date, Round: &snap})
		return
	}

	d.srv.recordStart(w, r, rd)
	snap := rd.Snapshot()
	writeJSON(w, http.StatusOK, dailyNewRes{GameID: rd.ID, Date: date, Round: &snap})
}

func (d *dailyServer) snapshot(ctx context.Context, id string) (game.RoundSnapshot, error) {
	var snap game.RoundSnapshot
	err := d.srv.store.View(ctx, id, func(rd *game.Round) error {
		snap = rd.Snapshot()
		return nil
	})
	return snap, err
}

// handleGuess validates and applies a guess for today's daily round.
// On win or loss the result is persisted and the session locked.
func (d *dailyServer) handleGuess(w http.ResponseWriter, r *http.Request) {
	uid := d.userID(w, r)

	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", err.Error())
		return
	}
	guess, err := req.code(d.srv.pal)
	if err != nil {
		writeGuessError(w, err)
		return
	}

	date := d.today()
	key := uid + "|" + date
	d.mu.Lock()
	sess, ok := d.session(key, date)
	d.mu.Unlock()
	if !ok || sess.GameID != req.GameID {
		writeError(w, http.StatusConflict, "no_session", errNoSession.Error())
		return
	}

	var (
		res      guessRes
		finished bool
	)
	err = d.srv.store.Update(r.Context(), sess.GameID, func(rd *game.Round) error {
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
		if errors.Is(err, store.ErrNotFound) {
			d.forget(key, sess.GameID)
		}
		writeGuessError(w, err)
		return
	}

	if finished {
		d.mu.Lock()
		sess.Finished = true
		d.mu.Unlock()
		err := d.store.InsertResult(r.Context(), daily.Result{
			UserID:    uid,
			Date:      date,
			Guesses:   res.Attempt.Seq,
			ElapsedMs: int(time.Since(sess.Start).Milliseconds()),
			Won:       res.State == game.StatusWon,
		})
		if err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("insert daily result")
		}
	}
	d.srv.recordAttempt(w, r, sess.GameID, res, finished)
	writeJSON(w, http.StatusOK, res)
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.today()
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "bad_date", "")
		return
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Error().Err(err).Msg("daily leaderboard")
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
