// internal/palette/palette.go
//
// Peg color palette shared by the HTTP API and the terminal client.
//
// Responsibilities:
//   - Load the default palette from the embedded assets/palette.txt.
//   - Map between color IDs, names, hex values and single-letter shorthands.
//   - Parse human-typed guesses into game.Code values.
//
// Guess syntax (Parse):
//   - Compact:   "ROYG" (letters) or "1234" (1-based numbers), one rune per peg.
//   - Separated: "red, orange yellow green" (names, letters or numbers).
//   - "?", "." or "_" leave a peg empty; the round rejects such a guess as incomplete.
//   - Numbers beyond the palette are passed through so the round reports invalid_color.
//
// Initialization is run once (sync.Once), mirroring the assets loader.

package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/SaltyBoi06/mastermind-test/assets"
	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

// ErrUnknownColor is returned by Parse for tokens that are not colors.
var ErrUnknownColor = errors.New("unknown color")

// Entry describes one palette color.
type Entry struct {
	ID     game.Color `json:"id"`
	Name   string     `json:"name"`
	Hex    string     `json:"hex"`
	Letter string     `json:"letter"`
}

// Palette is an ordered list of colors; an entry's index is its game.Color.
type Palette struct {
	entries  []Entry
	byName   map[string]game.Color
	byLetter map[rune]game.Color
}

var (
	defaultOnce sync.Once
	defaultPal  *Palette
	defaultErr  error
)

// Default returns the embedded palette, loading it on first use.
func Default() (*Palette, error) {
	defaultOnce.Do(func() {
		lines, err := assets.PaletteLines()
		if err != nil {
			defaultErr = fmt.Errorf("read palette: %w", err)
			return
		}
		defaultPal, defaultErr = FromLines(lines)
	})
	return defaultPal, defaultErr
}

// FromLines builds a palette from "name hex letter" rows.
func FromLines(lines []string) (*Palette, error) {
	p := &Palette{
		byName:   make(map[string]game.Color),
		byLetter: make(map[rune]game.Color),
	}
	for _, line := range lines {
		f := strings.Fields(line)
		if len(f) != 3 || len([]rune(f[2])) != 1 {
			return nil, fmt.Errorf("palette: malformed line %q", line)
		}
		name := strings.ToLower(f[0])
		letter := unicode.ToUpper([]rune(f[2])[0])
		if _, dup := p.byName[name]; dup {
			return nil, fmt.Errorf("palette: duplicate name %q", name)
		}
		if _, dup := p.byLetter[letter]; dup {
			return nil, fmt.Errorf("palette: duplicate letter %q", string(letter))
		}
		id := game.Color(len(p.entries))
		p.entries = append(p.entries, Entry{ID: id, Name: name, Hex: strings.ToLower(f[1]), Letter: string(letter)})
		p.byName[name] = id
		p.byLetter[letter] = id
	}
	if len(p.entries) == 0 {
		return nil, errors.New("palette: no colors")
	}
	return p, nil
}

// Size is the number of colors (K).
func (p *Palette) Size() int { return len(p.entries) }

// Entries returns a copy of the palette rows in ID order.
func (p *Palette) Entries() []Entry {
	return append([]Entry(nil), p.entries...)
}

// Entry looks up a color by ID.
func (p *Palette) Entry(c game.Color) (Entry, bool) {
	if c < 0 || int(c) >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[c], true
}

// Parse converts typed input into a code. See the package comment for syntax.
func (p *Palette) Parse(s string) (game.Code, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return game.Code{}, nil
	}
	if strings.ContainsAny(s, ", \t") {
		tokens := strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || unicode.IsSpace(r)
		})
		out := make(game.Code, 0, len(tokens))
		for _, tok := range tokens {
			c, err := p.token(tok)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}

	runes := []rune(s)
	out := make(game.Code, 0, len(runes))
	for _, r := range runes {
		c, err := p.token(string(r))
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// token resolves a single name, letter, 1-based number or empty marker.
func (p *Palette) token(tok string) (game.Color, error) {
	switch tok {
	case "?", ".", "_":
		return game.NoColor, nil
	}
	if n, err := strconv.Atoi(tok); err == nil && n >= 1 {
		return game.Color(n - 1), nil
	}
	if r := []rune(tok); len(r) == 1 {
		if c, ok := p.byLetter[unicode.ToUpper(r[0])]; ok {
			return c, nil
		}
	}
	if c, ok := p.byName[strings.ToLower(tok)]; ok {
		return c, nil
	}
	return game.NoColor, fmt.Errorf("%w: %q", ErrUnknownColor, tok)
}

// Letters renders a code as palette letters, "?" for empty or unknown pegs.
func (p *Palette) Letters(c game.Code) string {
	var b strings.Builder
	for _, x := range c {
		if e, ok := p.Entry(x); ok {
			b.WriteString(e.Letter)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// Names renders a code as comma-separated color names.
func (p *Palette) Names(c game.Code) string {
	parts := make([]string, len(c))
	for i, x := range c {
		if e, ok := p.Entry(x); ok {
			parts[i] = e.Name
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ",")
}
