// main.go
//
// Entrypoint for the Mastermind HTTP server.
// Loads config, opens + migrates SQLite, starts the round sweeper and serves
// until SIGINT/SIGTERM, then shuts down gracefully.

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/SaltyBoi06/mastermind-test/internal/config"
	"github.com/SaltyBoi06/mastermind-test/internal/db"
	"github.com/SaltyBoi06/mastermind-test/internal/httpserver"
	"github.com/SaltyBoi06/mastermind-test/internal/palette"
	"github.com/SaltyBoi06/mastermind-test/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	pal, err := palette.Default()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load palette")
	}

	conn, err := db.OpenAndMigrate(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mem := store.NewMemoryStore()
	api := httpserver.New(cfg, mem, conn, pal)
	go mem.RunSweeper(ctx, time.Minute, cfg.RoundIdleTTL, func(n int) {
		log.Info().Int("evicted", n).Int("dailySessions", api.PruneDaily(ctx)).Msg("swept idle rounds")
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting mastermind server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server exited")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
