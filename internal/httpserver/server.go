// internal/httpserver/server.go
//
// HTTP server wiring for the Mastermind backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): POST /game/new, POST /game/guess,
//     GET /game/{id}, GET /game/{id}/secret.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints (require auth): /auth/*, /stats/me, /games/mine.
//
// Notes:
//   - Active rounds live in the in-memory store; SQLite only keeps accounts,
//     the game ledger and daily results.
//   - Optional auth decorates requests with user context when a valid token is present;
//     routes still run for guests, who are tracked by an anonymous cookie.

package httpserver

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/SaltyBoi06/mastermind-test/internal/config"
	"github.com/SaltyBoi06/mastermind-test/internal/daily"
	"github.com/SaltyBoi06/mastermind-test/internal/game"
	"github.com/SaltyBoi06/mastermind-test/internal/palette"
	"github.com/SaltyBoi06/mastermind-test/internal/store"
)

// Server bundles router, round store, DB handle and game dimensions.
type Server struct {
	r      *chi.Mux
	cfg    config.Config
	store  store.Store
	db     *sql.DB
	pal    *palette.Palette
	params game.Params
	daily  *dailyServer
}

// New constructs a Server, installs middleware, and registers routes.
// The game uses the default dimensions with K taken from the palette size.
func New(cfg config.Config, st store.Store, db *sql.DB, pal *palette.Palette) *Server {
	params := game.DefaultParams()
	params.Colors = pal.Size()
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}

	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, db: db, pal: pal, params: params}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(cfg.RequestTimeout))
	s.r.Use(jsonContentType)
	s.r.Use(cors(cfg.ClientOrigin))

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "mastermind-go",
			"endpoints": []string{"/health", "POST /game/new", "POST /game/guess", "GET /game/{id}", "/daily/*", "/auth/*"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// Game endpoints — OPTIONAL AUTH (guests can play)
	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		r.Post("/game/new", s.handleNewGame)
		r.Post("/game/guess", s.handleGuess)
		r.Get("/game/{id}", s.handleState)
		r.Get("/game/{id}/secret", s.handleSecret)
	})

	// Daily Challenge — OPTIONAL AUTH
	s.daily = &dailyServer{
		srv:      s,
		store:    daily.NewStore(db),
		salt:     cfg.DailySalt,
		sessions: make(map[string]*dailySession),
	}
	s.r.With(s.withOptionalAuth()).Route("/daily", s.daily.mount)

	// Auth + profile/stats
	s.mountAuthRoutes()

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	s.r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ServeHTTP lets the Server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Params reports the dimensions used for new rounds.
func (s *Server) Params() game.Params { return s.params }

// PruneDaily drops daily sessions from earlier days or whose round was evicted.
// Call it after sweeping the round store.
func (s *Server) PruneDaily(ctx context.Context) int { return s.daily.prune(ctx) }
