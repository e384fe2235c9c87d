package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/CityPulse/CityPulse-Backend/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "SESSION_SECRET", "SESSION_TTL", "IDP_ASSERTION_SECRET",
		"CHAT_RATE_PER_MIN", "ISSUE_DAILY_LIMIT", "KAFKA_BROKERS", "ALLOWED_ORIGINS",
		"UPLOAD_TTL", "CONFIG_FILE", "STATIC_DIR",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/citypulse")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Port != "5050" {
		t.Errorf("expected default port 5050, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h session TTL, got %v", cfg.SessionTTL)
	}
	if cfg.IdPAssertionSecret != cfg.SessionSecret {
		t.Error("expected assertion secret to fall back to the session secret")
	}
	if cfg.GeminiModel != config.DefaultGeminiModel {
		t.Errorf("expected default model, got %s", cfg.GeminiModel)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("expected no brokers, got %v", cfg.KafkaBrokers)
	}
}

func TestValidate_RequiredSettings(t *testing.T) {
	clearEnv(t)

	cfg, _ := config.Load()
	if err := cfg.Validate(); !errors.Is(err, config.ErrMissingDatabaseURL) {
		t.Errorf("expected ErrMissingDatabaseURL, got %v", err)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/citypulse")
	t.Setenv("SESSION_SECRET", "too-short")
	cfg, _ = config.Load()
	if err := cfg.Validate(); !errors.Is(err, config.ErrMissingSessionSecret) {
		t.Errorf("expected ErrMissingSessionSecret, got %v", err)
	}
}

func TestLoad_FileOverlayLosesToEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "citypulse.yaml")
	overlay := `
allowed_origins:
  - https://citypulse.example
chat_rate_per_min: 5
issue_daily_limit: 3
kafka_brokers: [kafka-1:9092]
`
	if err := os.WriteFile(path, []byte(overlay), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ISSUE_DAILY_LIMIT", "7")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(cfg.AllowedOrigins, []string{"https://citypulse.example"}) {
		t.Errorf("expected origins from file, got %v", cfg.AllowedOrigins)
	}
	if cfg.ChatRatePerMin != 5 {
		t.Errorf("expected chat rate 5 from file, got %d", cfg.ChatRatePerMin)
	}
	if cfg.IssueDailyLimit != 7 {
		t.Errorf("expected env to win with 7, got %d", cfg.IssueDailyLimit)
	}
	if !slices.Equal(cfg.KafkaBrokers, []string{"a:9092", "b:9092"}) {
		t.Errorf("expected brokers from env, got %v", cfg.KafkaBrokers)
	}
}

func TestLoad_BadOverlay(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	if _, err := config.Load(); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
