// internal/daily/daily.go
//
// Daily Challenge secrets.
// Everyone playing on the same UTC date gets the same secret, derived from
// HMAC-SHA256(salt, "YYYY-MM-DD" || counter). The HMAC output is consumed as a
// byte stream and turned into uniform colors by rejection sampling.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Source is a deterministic game.Source keyed by date and salt.
type Source struct {
	key     []byte
	date    string
	counter uint64
	buf     []byte
}

// NewSource returns the source for a date key.
func NewSource(date, salt string) *Source {
	return &Source{key: []byte(salt), date: date}
}

func (s *Source) refill() {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(s.date))
	var c [8]byte
	binary.BigEndian.PutUint64(c[:], s.counter)
	h.Write(c[:])
	s.counter++
	s.buf = append(s.buf, h.Sum(nil)...)
}

func (s *Source) uint32() uint32 {
	for len(s.buf) < 4 {
		s.refill()
	}
	v := binary.BigEndian.Uint32(s.buf[:4])
	s.buf = s.buf[4:]
	return v
}

// Intn returns a uniform value in [0, n) without modulo bias.
func (s *Source) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	limit := (1 << 32) / uint64(n) * uint64(n)
	for {
		v := uint64(s.uint32())
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// Secret returns the daily secret for a date key.
func Secret(date, salt string, p game.Params) game.Code {
	return game.RandomCode(p, NewSource(date, salt))
}
