// internal/config/config.go
//
// Process configuration, read from the environment (and a .env file in development).
//
// Environment variables:
//   PORT=5175                      HTTP listen port
//   LOG_LEVEL=info                 zerolog level
//   DB_PATH=./data/mastermind.db   SQLite file for accounts, game ledger, daily results
//   CLIENT_ORIGIN=...              single CORS origin allowed with credentials
//   JWT_SECRET / JWT_EXPIRES_DAYS  auth token signing
//   COOKIE_NAME=mm_token           auth cookie name
//   PRODUCTION=false               Secure + SameSite=None cookies when true
//   DAILY_SALT                     HMAC key for the daily secret
//   DEBUG_SECRET=false             allow /game/{id}/secret?debug=1 before the round ends
//   REQUEST_TIMEOUT=10s            per-request handler timeout
//   ROUND_IDLE_TTL=24h             evict in-memory rounds idle this long

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           string        `env:"PORT" envDefault:"5175"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	DBPath         string        `env:"DB_PATH" envDefault:"./data/mastermind.db"`
	ClientOrigin   string        `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"`
	JWTExpiresDays int           `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string        `env:"COOKIE_NAME" envDefault:"mm_token"`
	Production     bool          `env:"PRODUCTION" envDefault:"false"`
	DailySalt      string        `env:"DAILY_SALT" envDefault:"local_dev_salt"`
	DebugSecret    bool          `env:"DEBUG_SECRET" envDefault:"false"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	RoundIdleTTL   time.Duration `env:"ROUND_IDLE_TTL" envDefault:"24h"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the environment into a Config without touching .env.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiresDays <= 0 {
		return Config{}, fmt.Errorf("parse env: JWT_EXPIRES_DAYS must be positive, got %d", cfg.JWTExpiresDays)
	}
	if cfg.RoundIdleTTL <= 0 {
		return Config{}, fmt.Errorf("parse env: ROUND_IDLE_TTL must be positive, got %s", cfg.RoundIdleTTL)
	}
	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string { return ":" + c.Port }
