package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

func newRound(t *testing.T) *game.Round {
	t.Helper()
	r, err := game.NewRoundWithSecret(game.DefaultParams(), game.Code{0, 1, 2, 3})
	if err != nil {
		t.Fatalf("new round: %v", err)
	}
	return r
}

func TestMemorySaveUpdateView(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	r := newRound(t)
	if err := m.Save(ctx, r); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := m.Update(ctx, r.ID, func(r *game.Round) error {
		_, err := r.SubmitGuess(game.Code{3, 2, 1, 0})
		return err
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var count int
	if err := m.View(ctx, r.ID, func(r *game.Round) error {
		count = r.AttemptCount()
		return nil
	}); err != nil {
		t.Fatalf("view: %v", err)
	}
	if count != 1 {
		t.Fatalf("attempt count = %d, want 1", count)
	}
}

func TestMemoryNotFound(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	noop := func(*game.Round) error { return nil }
	if err := m.View(ctx, "missing", noop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("view err = %v", err)
	}
	if err := m.Update(ctx, "missing", noop); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update err = %v", err)
	}
	if err := m.Delete(ctx, "missing"); err != nil {
		t.Fatalf("delete err = %v", err)
	}
}

func TestMemoryUpdatePropagatesError(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	r := newRound(t)
	_ = m.Save(ctx, r)
	err := m.Update(ctx, r.ID, func(r *game.Round) error {
		_, err := r.SubmitGuess(game.Code{0, 1})
		return err
	})
	if !errors.Is(err, game.ErrIncompleteGuess) {
		t.Fatalf("expected ErrIncompleteGuess, got %v", err)
	}
}

func TestMemorySweep(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return now }

	old := newRound(t)
	_ = m.Save(ctx, old)
	now = now.Add(2 * time.Hour)
	fresh := newRound(t)
	_ = m.Save(ctx, fresh)

	if n := m.Sweep(time.Hour); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if m.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.Len())
	}
	if err := m.View(ctx, fresh.ID, func(*game.Round) error { return nil }); err != nil {
		t.Fatalf("fresh round evicted: %v", err)
	}
}
