package config

import (
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "5175" || cfg.Addr() != ":5175" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.CookieName != "mm_token" || cfg.JWTExpiresDays != 14 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("timeout = %v", cfg.RequestTimeout)
	}
	if cfg.DebugSecret {
		t.Fatal("debug secret should default off")
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEBUG_SECRET", "true")
	t.Setenv("REQUEST_TIMEOUT", "2s")
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "9000" || !cfg.DebugSecret || cfg.RequestTimeout != 2*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestParseError(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	_, err := Parse()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestParseRejectsNonPositiveExpiry(t *testing.T) {
	t.Setenv("JWT_EXPIRES_DAYS", "0")
	if _, err := Parse(); err == nil {
		t.Fatal("expected error")
	}
}

func TestParseRejectsNonPositiveIdleTTL(t *testing.T) {
	for _, v := range []string{"0", "0s", "-5m"} {
		t.Setenv("ROUND_IDLE_TTL", v)
		if _, err := Parse(); err == nil || !strings.Contains(err.Error(), "ROUND_IDLE_TTL") {
			t.Fatalf("ROUND_IDLE_TTL=%s: expected error, got %v", v, err)
		}
	}
}
