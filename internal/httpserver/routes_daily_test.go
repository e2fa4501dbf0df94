package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SaltyBoi06/mastermind-test/internal/daily"
	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

func atTime(ts time.Time) func(*Server) {
	return func(s *Server) { s.daily.now = func() time.Time { return ts } }
}

// clock is a settable time source shared between the test and the server.
type clock struct{ ns atomic.Int64 }

func newClock(ts time.Time) *clock {
	c := &clock{}
	c.set(ts)
	return c
}

func (c *clock) set(ts time.Time) { c.ns.Store(ts.UnixNano()) }
func (c *clock) now() time.Time  { return time.Unix(0, c.ns.Load()).UTC() }

func onClock(c *clock) func(*Server) {
	return func(s *Server) { s.daily.now = c.now }
}

func dailySessions(s *Server) int {
	s.daily.mu.Lock()
	defer s.daily.mu.Unlock()
	return len(s.daily.sessions)
}

func TestDailyFlow(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s, c := newTestServer(t, testConfig(), atTime(fixed))
	date := daily.DateKey(fixed)
	secret := daily.Secret(date, "test_salt", s.Params())

	var first, second dailyNewRes
	c.do(http.MethodPost, "/daily/new", nil, &first)
	c.do(http.MethodPost, "/daily/new", nil, &second)
	if first.GameID == "" || first.GameID != second.GameID || first.Played {
		t.Fatalf("daily sessions = %+v / %+v", first, second)
	}
	if first.Date != date || first.Round == nil || first.Round.Status != game.StatusInProgress {
		t.Fatalf("daily new = %+v", first)
	}

	// Wrong game ID is rejected.
	var e errorRes
	if st := c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": "other", "code": "RRRR"}, &e); st != http.StatusConflict || e.Error != "no_session" {
		t.Fatalf("wrong session = %d %+v", st, e)
	}

	guess := make([]int, len(secret))
	for i, x := range secret {
		guess[i] = int(x)
	}
	var res guessRes
	if st := c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": first.GameID, "guess": ints(guess...)}, &res); st != http.StatusOK {
		t.Fatalf("daily guess status = %d", st)
	}
	if res.State != game.StatusWon || !res.Secret.Equal(secret) {
		t.Fatalf("daily guess = %+v", res)
	}

	var again dailyNewRes
	c.do(http.MethodPost, "/daily/new", nil, &again)
	if !again.Played || again.GameID != "" {
		t.Fatalf("second daily after win = %+v", again)
	}

	var lb lbRes
	if st := c.do(http.MethodGet, "/daily/leaderboard?date="+date, nil, &lb); st != http.StatusOK {
		t.Fatalf("leaderboard status = %d", st)
	}
	if len(lb.Top) != 1 || lb.Top[0].Guesses != 1 {
		t.Fatalf("leaderboard = %+v", lb)
	}

	if st := c.do(http.MethodGet, "/daily/leaderboard?date=yesterday", nil, &e); st != http.StatusBadRequest {
		t.Fatalf("bad date status = %d", st)
	}
}

func TestDailySameSecretForEveryone(t *testing.T) {
	_, a := newTestServer(t, testConfig(), atTime(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)))
	b := newClient(t, a.base)

	var ra, rb dailyNewRes
	a.do(http.MethodPost, "/daily/new", nil, &ra)
	b.do(http.MethodPost, "/daily/new", nil, &rb)
	if ra.GameID == rb.GameID {
		t.Fatalf("players share a round")
	}

	var sa, sb secretRes
	a.do(http.MethodGet, "/game/"+ra.GameID+"/secret?debug=1", nil, &sa)
	b.do(http.MethodGet, "/game/"+rb.GameID+"/secret?debug=1", nil, &sb)
	if sa.Letters == "" || sa.Letters != sb.Letters {
		t.Fatalf("daily secrets differ: %q vs %q", sa.Letters, sb.Letters)
	}
}

func TestFreePlayGuessRejectsDailyRound(t *testing.T) {
	fixed := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	s, c := newTestServer(t, testConfig(), atTime(fixed))
	date := daily.DateKey(fixed)
	secret := daily.Secret(date, "test_salt", s.Params())
	guess := make([]int, len(secret))
	for i, x := range secret {
		guess[i] = int(x)
	}

	var started dailyNewRes
	c.do(http.MethodPost, "/daily/new", nil, &started)

	var e errorRes
	st := c.do(http.MethodPost, "/game/guess", map[string]any{"gameId": started.GameID, "guess": ints(guess...)}, &e)
	if st != http.StatusConflict || e.Error != "daily_round" {
		t.Fatalf("free-play guess on daily round = %d %+v", st, e)
	}

	var snap game.RoundSnapshot
	c.do(http.MethodGet, "/game/"+started.GameID, nil, &snap)
	if snap.AttemptCount != 0 || snap.Status != game.StatusInProgress {
		t.Fatalf("daily round changed: %+v", snap)
	}

	var res guessRes
	if st := c.do(http.MethodPost, "/daily/guess", map[string]any{"gameId": started.GameID, "guess": ints(guess...)}, &res); st != http.StatusOK || res.State != game.StatusWon {
		t.Fatalf("daily guess = %d %+v", st, res)
	}
	var lb lbRes
	c.do(http.MethodGet, "/daily/leaderboard?date="+date, nil, &lb)
	if len(lb.Top) != 1 {
		t.Fatalf("leaderboard = %+v", lb)
	}
}

func TestPruneDailyDropsEvictedAndStaleSessions(t *testing.T) {
	clk := newClock(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	s, a := newTestServer(t, testConfig(), onClock(clk))

	var first dailyNewRes
	a.do(http.MethodPost, "/daily/new", nil, &first)
	for i := 0; i < 2; i++ {
		var res dailyNewRes
		newClient(t, a.base).do(http.MethodPost, "/daily/new", nil, &res)
	}
	if n := dailySessions(s); n != 3 {
		t.Fatalf("sessions = %d, want 3", n)
	}

	if n := s.PruneDaily(context.Background()); n != 0 {
		t.Fatalf("pruned %d live sessions", n)
	}

	if err := s.store.Delete(context.Background(), first.GameID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if n := s.PruneDaily(context.Background()); n != 1 {
		t.Fatalf("pruned %d, want 1", n)
	}
	if n := dailySessions(s); n != 2 {
		t.Fatalf("sessions after eviction = %d, want 2", n)
	}

	// The evicted player simply gets a fresh round.
	var again dailyNewRes
	a.do(http.MethodPost, "/daily/new", nil, &again)
	if again.GameID == "" || again.GameID == first.GameID {
		t.Fatalf("new daily after eviction = %+v", again)
	}

	clk.set(time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC))
	if n := s.PruneDaily(context.Background()); n != 3 {
		t.Fatalf("pruned %d on rollover, want 3", n)
	}
	if n := dailySessions(s); n != 0 {
		t.Fatalf("sessions after rollover = %d", n)
	}
}

func TestDailyNewConcurrentSamePlayerSharesRound(t *testing.T) {
	s, c := newTestServer(t, testConfig(), atTime(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)))

	// Establish the anonymous cookie, then evict the round so every request
	// below takes the create path.
	var first dailyNewRes
	c.do(http.MethodPost, "/daily/new", nil, &first)
	if err := s.store.Delete(context.Background(), first.GameID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	const n = 8
	ids := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := c.hc.Post(c.base+"/daily/new", "application/json", nil)
			if err != nil {
				errs[i] = err
				return
			}
			defer resp.Body.Close()
			var res dailyNewRes
			errs[i] = json.NewDecoder(resp.Body).Decode(&res)
			ids[i] = res.GameID
		}(i)
	}
	wg.Wait()

	for i := range ids {
		if errs[i] != nil {
			t.Fatalf("request %d: %v", i, errs[i])
		}
		if ids[i] == "" || ids[i] != ids[0] {
			t.Fatalf("game ids = %v", ids)
		}
	}
	if got := dailySessions(s); got != 1 {
		t.Fatalf("sessions = %d, want 1", got)
	}
	var snap game.RoundSnapshot
	if st := c.do(http.MethodGet, "/game/"+ids[0], nil, &snap); st != http.StatusOK {
		t.Fatalf("shared round status = %d", st)
	}
}
