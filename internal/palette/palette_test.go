package palette

import (
	"errors"
	"testing"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

func mustDefault(t *testing.T) *Palette {
	t.Helper()
	p, err := Default()
	if err != nil {
		t.Fatalf("default palette: %v", err)
	}
	return p
}

func TestDefaultPalette(t *testing.T) {
	p := mustDefault(t)
	if p.Size() != game.DefaultColors {
		t.Fatalf("size = %d, want %d", p.Size(), game.DefaultColors)
	}
	e, ok := p.Entry(0)
	if !ok || e.Name != "red" || e.Hex != "#ef4444" || e.Letter != "R" {
		t.Fatalf("entry 0 = %+v", e)
	}
	e, _ = p.Entry(5)
	if e.Name != "purple" {
		t.Fatalf("entry 5 = %+v", e)
	}
}

func TestParse(t *testing.T) {
	p := mustDefault(t)
	cases := []struct {
		in   string
		want game.Code
	}{
		{"ROYG", game.Code{0, 1, 2, 3}},
		{"royg", game.Code{0, 1, 2, 3}},
		{"1234", game.Code{0, 1, 2, 3}},
		{"red, orange, purple, blue", game.Code{0, 1, 5, 4}},
		{"R O ? P", game.Code{0, 1, game.NoColor, 5}},
		{"RO.P", game.Code{0, 1, game.NoColor, 5}},
		{"1279", game.Code{0, 1, 6, 8}},
		{"", game.Code{}},
	}
	for _, tc := range cases {
		got, err := p.Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if !got.Equal(tc.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	p := mustDefault(t)
	for _, in := range []string{"RXYG", "red, pink", "0123"} {
		if _, err := p.Parse(in); !errors.Is(err, ErrUnknownColor) {
			t.Fatalf("Parse(%q) err = %v, want ErrUnknownColor", in, err)
		}
	}
}

func TestLettersAndNames(t *testing.T) {
	p := mustDefault(t)
	c := game.Code{5, 4, game.NoColor, 0}
	if got := p.Letters(c); got != "PB?R" {
		t.Fatalf("letters = %q", got)
	}
	if got := p.Names(c); got != "purple,blue,?,red" {
		t.Fatalf("names = %q", got)
	}
	parsed, err := p.Parse(p.Letters(game.Code{1, 2, 3, 4}))
	if err != nil || !parsed.Equal(game.Code{1, 2, 3, 4}) {
		t.Fatalf("round trip = %v, %v", parsed, err)
	}
}

func TestFromLinesRejectsDuplicates(t *testing.T) {
	if _, err := FromLines([]string{"red #f00 R", "rose #f0f R"}); err == nil {
		t.Fatal("expected duplicate letter error")
	}
	if _, err := FromLines(nil); err == nil {
		t.Fatal("expected empty palette error")
	}
}
