// internal/httpserver/ledger.go
//
// Best-effort bookkeeping of rounds in SQLite for history and user stats.
// Failures are logged and never block play. The secret is written only
// once a round is over.

package httpserver

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

// owner resolves the ledger owner: user_id when signed in, otherwise anonymous_id.
func (s *Server) owner(w http.ResponseWriter, r *http.Request) (clause string, arg any) {
	if me := userFrom(r); me != nil {
		return `user_id=?`, me.ID
	}
	return `anonymous_id=?`, s.ensureAnonID(w, r)
}

// recordStart inserts the ledger row for a new round.
func (s *Server) recordStart(w http.ResponseWriter, r *http.Request, rd *game.Round) {
	mode := rd.Mode
	now := rd.StartedAt.Format(time.RFC3339)
	var err error
	if me := userFrom(r); me != nil {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, user_id, mode, status, started_at)
		                     VALUES (?,?,?,?,?)`, rd.ID, me.ID, mode, string(rd.Status()), now)
	} else {
		_, err = s.db.ExecContext(r.Context(), `INSERT INTO games (id, anonymous_id, mode, status, started_at)
		                     VALUES (?,?,?,?,?)`, rd.ID, s.ensureAnonID(w, r), mode, string(rd.Status()), now)
	}
	if err != nil {
		log.Warn().Err(err).Str("gameId", rd.ID).Msg("insert game row")
	}
}

// recordAttempt bumps the attempt counter and, on finish, closes the row and
// updates the signed-in user's stats in one transaction.
func (s *Server) recordAttempt(w http.ResponseWriter, r *http.Request, id string, res guessRes, finished bool) {
	clause, arg := s.owner(w, r)

	tx, err := s.db.BeginTx(r.Context(), nil)
	if err != nil {
		log.Warn().Err(err).Msg("begin ledger tx")
		return
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE games SET attempts=?, status=? WHERE id=? AND `+clause,
		res.Attempt.Seq, string(res.State), id, arg); err != nil {
		log.Warn().Err(err).Str("gameId", id).Msg("update attempts")
	}

	if finished {
		if _, err := tx.Exec(`UPDATE games SET secret=?, finished_at=? WHERE id=? AND `+clause,
			s.pal.Letters(res.Secret), time.Now().UTC().Format(time.RFC3339), id, arg); err != nil {
			log.Warn().Err(err).Str("gameId", id).Msg("finish game")
		}
		if me := userFrom(r); me != nil {
			if err := bumpStats(tx, me.ID, res.State == game.StatusWon); err != nil {
				log.Warn().Err(err).Str("user", me.ID).Msg("bump stats")
			}
		}
		log.Info().Str("gameId", id).Str("state", string(res.State)).Int("attempts", res.Attempt.Seq).Msg("round finished")
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Msg("commit ledger tx")
	}
}

// bumpStats increments games played; updates wins and streak based on result (within tx).
func bumpStats(tx *sql.Tx, userID string, won bool) error {
	var gp, wins, streak int
	row := tx.QueryRow(`SELECT games_played, wins, streak FROM users WHERE id=?`, userID)
	if err := row.Scan(&gp, &wins, &streak); err != nil {
		return err
	}
	gp++
	if won {
		wins++
		streak++
	} else {
		streak = 0
	}
	_, err := tx.Exec(`UPDATE users SET games_played=?, wins=?, streak=? WHERE id=?`, gp, wins, streak, userID)
	return err
}

// claimAnonGames transfers any anonymous games to a user account after auth.
func (s *Server) claimAnonGames(r *http.Request, anonID, userID string) {
	if anonID == "" || userID == "" {
		return
	}
	if _, err := s.db.ExecContext(r.Context(), `UPDATE games SET user_id=?, anonymous_id=NULL WHERE anonymous_id=?`, userID, anonID); err != nil {
		log.Warn().Err(err).Msg("claim anon games")
	}
}
