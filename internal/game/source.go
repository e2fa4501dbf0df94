// internal/game/source.go
//
// Randomness for secret generation.
// Production rounds draw from crypto/rand; tests and the daily challenge plug in
// their own Source to get reproducible secrets.

package game

import (
	"crypto/rand"
	"math/big"
)

// Source yields uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// CryptoSource draws from crypto/rand.
type CryptoSource struct{}

func (CryptoSource) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: crypto/rand failed: " + err.Error())
	}
	return int(v.Int64())
}

// FixedSource replays a predetermined sequence, wrapping around at the end.
// Values are reduced modulo n.
type FixedSource struct {
	Values []int
	next   int
}

func (s *FixedSource) Intn(n int) int {
	if len(s.Values) == 0 {
		return 0
	}
	v := s.Values[s.next%len(s.Values)]
	s.next++
	return ((v % n) + n) % n
}

// RandomCode draws p.Pegs independent colors, uniform over Colors^Pegs codes.
func RandomCode(p Params, src Source) Code {
	out := make(Code, p.Pegs)
	for i := range out {
		out[i] = Color(src.Intn(p.Colors))
	}
	return out
}
