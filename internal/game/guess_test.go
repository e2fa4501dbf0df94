package game

import (
	"errors"
	"testing"
)

func TestGuessBuilder(t *testing.T) {
	g := NewGuess(4)
	if g.Filled() != 0 || g.Complete() {
		t.Fatalf("new guess should be empty")
	}
	for i := 0; i < 4; i++ {
		if err := g.Set(i, Color(i)); err != nil {
			t.Fatalf("set %d: %v", i, err)
		}
	}
	if !g.Complete() {
		t.Fatalf("expected complete guess, have %v", g.Code())
	}
	if err := g.Clear(2); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if g.Complete() || g.Filled() != 3 {
		t.Fatalf("expected 3 filled, got %d", g.Filled())
	}
	if got := g.Code().String(); got != "1,2,_,4" {
		t.Fatalf("code = %s", got)
	}
	g.Reset()
	if g.Filled() != 0 {
		t.Fatalf("reset left %d filled", g.Filled())
	}
}

func TestGuessSetOutOfRange(t *testing.T) {
	g := NewGuess(4)
	if err := g.Set(4, 0); !errors.Is(err, ErrBadPosition) {
		t.Fatalf("expected ErrBadPosition, got %v", err)
	}
	if err := g.Set(-1, 0); !errors.Is(err, ErrBadPosition) {
		t.Fatalf("expected ErrBadPosition, got %v", err)
	}
}

func TestGuessFromNormalizesEmpty(t *testing.T) {
	g := GuessFrom(Code{0, -7, 2, 3})
	if g.Filled() != 3 {
		t.Fatalf("filled = %d, want 3", g.Filled())
	}
}
