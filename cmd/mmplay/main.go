// cmd/mmplay/main.go
//
// Terminal Mastermind client. Plays rounds against the game core locally:
// reads guesses from stdin, prints colored pegs with feedback, and reveals
// the secret once the round ends.
//
// Usage:
//   mmplay [-debug]
//
// At the prompt type a guess ("ROYG", "1234", "red orange yellow green"),
// "new" for a fresh round, "help", or "quit".

package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SaltyBoi06/mastermind-test/internal/game"
	"github.com/SaltyBoi06/mastermind-test/internal/palette"
)

func main() {
	debug := flag.Bool("debug", false, "print the secret at the start of each round (dev only)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	pal, err := palette.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load palette")
	}
	params := game.DefaultParams()
	params.Colors = pal.Size()

	sess, err := game.NewSession(params, nil)
	if err != nil {
		log.Fatal().Err(err).Msg("start session")
	}

	p := &player{in: os.Stdin, out: os.Stdout, sess: sess, pal: pal, debug: *debug, color: true}
	if err := p.run(); err != nil {
		log.Fatal().Err(err).Msg("read input")
	}
}
