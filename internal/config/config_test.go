package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_PATH", "JWT_SECRET", "JWT_EXPIRY", "PORT", "CONCIERGE_USER"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.DBDriver != "sqlite" {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if cfg.DSN() != "shopping.db" {
		t.Errorf("DSN() = %q, want shopping.db", cfg.DSN())
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("JWTExpiry = %v, want 24h", cfg.JWTExpiry)
	}
	if cfg.AuthEnabled() {
		t.Error("auth should be disabled without JWT_SECRET")
	}
	if cfg.DefaultUser != "priya@example.com" {
		t.Errorf("DefaultUser = %q", cfg.DefaultUser)
	}
}

func TestLoadPostgresDSN(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "secret")

	dsn := Load().DSN()
	for _, want := range []string{"host=db.internal", "password=secret", "sslmode=disable"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}
}

func TestParseDurationFallback(t *testing.T) {
	if got := parseDuration("not-a-duration", time.Minute); got != time.Minute {
		t.Errorf("parseDuration fallback = %v, want 1m", got)
	}
	if got := parseDuration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("parseDuration = %v, want 90s", got)
	}
}
