package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Common errors
var (
	ErrMissingDatabaseURL   = errors.New("DATABASE_URL environment variable is required")
	ErrMissingSessionSecret = errors.New("SESSION_SECRET environment variable is required (min 32 chars)")
)

// Config holds everything the server needs at startup.
type Config struct {
	Port        string
	DatabaseURL string
	StaticDir   string

	// Session signing
	SessionSecret      string
	SessionTTL         time.Duration
	SecureCookies      bool
	IdPAssertionSecret string

	// Chat relay
	GeminiKey      string
	GeminiModel    string
	ChatTimeout    time.Duration
	ChatRatePerMin int
	ChatRateBurst  int
	ChatHistoryCap int

	// Optional infrastructure; empty disables the feature.
	RedisAddr        string
	RedisPassword    string
	IssueDailyLimit  int
	KafkaBrokers     []string
	UploadBucket     string
	UploadRegion     string
	UploadPublicBase string
	UploadTTL        time.Duration

	AllowedOrigins []string
}

// fileOverlay is the optional YAML file pointed to by CONFIG_FILE.
// Values set there win over defaults but lose to explicit env vars.
type fileOverlay struct {
	AllowedOrigins  []string `yaml:"allowed_origins"`
	ChatRatePerMin  int      `yaml:"chat_rate_per_min"`
	ChatRateBurst   int      `yaml:"chat_rate_burst"`
	IssueDailyLimit int      `yaml:"issue_daily_limit"`
	KafkaBrokers    []string `yaml:"kafka_brokers"`
	StaticDir       string   `yaml:"static_dir"`
}

// DefaultGeminiModel is used when GEMINI_MODEL is unset.
const DefaultGeminiModel = "gemini-1.5-flash"

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Load reads .env.local (if present), the optional YAML overlay and the
// process environment.
//
// Environment variables:
//   - PORT (default 5050)
//   - DATABASE_URL (required)
//   - SESSION_SECRET (required), SESSION_TTL (default 24h), SECURE_COOKIES
//   - IDP_ASSERTION_SECRET: shared secret for sign-in assertions (defaults to SESSION_SECRET)
//   - GEMINI_API_KEY, GEMINI_MODEL, CHAT_TIMEOUT (default 30s), CHAT_RATE_PER_MIN (default 20)
//   - CHAT_RATE_BURST (default 5), CHAT_HISTORY_CAP (default 40)
//   - REDIS_ADDRESS, REDIS_PASSWORD, ISSUE_DAILY_LIMIT (default 10)
//   - KAFKA_BROKERS (comma separated)
//   - UPLOAD_BUCKET, AWS_REGION, UPLOAD_PUBLIC_BASE, UPLOAD_TTL (default 5m)
//   - ALLOWED_ORIGINS (comma separated), STATIC_DIR, CONFIG_FILE
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")

	cfg := Config{
		Port:            "5050",
		SessionTTL:      24 * time.Hour,
		GeminiModel:     DefaultGeminiModel,
		ChatTimeout:     30 * time.Second,
		ChatRatePerMin:  20,
		ChatRateBurst:   5,
		ChatHistoryCap:  40,
		IssueDailyLimit: 10,
		UploadRegion:    "us-east-1",
		UploadTTL:       5 * time.Minute,
		AllowedOrigins:  defaultOrigins,
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	var f fileOverlay
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if len(f.AllowedOrigins) > 0 {
		c.AllowedOrigins = f.AllowedOrigins
	}
	if f.ChatRatePerMin > 0 {
		c.ChatRatePerMin = f.ChatRatePerMin
	}
	if f.ChatRateBurst > 0 {
		c.ChatRateBurst = f.ChatRateBurst
	}
	if f.IssueDailyLimit > 0 {
		c.IssueDailyLimit = f.IssueDailyLimit
	}
	if len(f.KafkaBrokers) > 0 {
		c.KafkaBrokers = f.KafkaBrokers
	}
	if f.StaticDir != "" {
		c.StaticDir = f.StaticDir
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = get("PORT", c.Port)
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	c.StaticDir = get("STATIC_DIR", c.StaticDir)

	c.SessionSecret = os.Getenv("SESSION_SECRET")
	c.SessionTTL = duration("SESSION_TTL", c.SessionTTL)
	c.SecureCookies = get("SECURE_COOKIES", "") == "true"
	c.IdPAssertionSecret = get("IDP_ASSERTION_SECRET", c.SessionSecret)

	c.GeminiKey = os.Getenv("GEMINI_API_KEY")
	c.GeminiModel = get("GEMINI_MODEL", c.GeminiModel)
	c.ChatTimeout = duration("CHAT_TIMEOUT", c.ChatTimeout)
	c.ChatRatePerMin = integer("CHAT_RATE_PER_MIN", c.ChatRatePerMin)
	c.ChatRateBurst = integer("CHAT_RATE_BURST", c.ChatRateBurst)
	c.ChatHistoryCap = integer("CHAT_HISTORY_CAP", c.ChatHistoryCap)

	c.RedisAddr = os.Getenv("REDIS_ADDRESS")
	c.RedisPassword = os.Getenv("REDIS_PASSWORD")
	c.IssueDailyLimit = integer("ISSUE_DAILY_LIMIT", c.IssueDailyLimit)

	if brokers := list("KAFKA_BROKERS"); len(brokers) > 0 {
		c.KafkaBrokers = brokers
	}

	c.UploadBucket = os.Getenv("UPLOAD_BUCKET")
	c.UploadRegion = get("AWS_REGION", c.UploadRegion)
	c.UploadPublicBase = os.Getenv("UPLOAD_PUBLIC_BASE")
	c.UploadTTL = duration("UPLOAD_TTL", c.UploadTTL)

	if origins := list("ALLOWED_ORIGINS"); len(origins) > 0 {
		c.AllowedOrigins = origins
	}
}

// Validate checks the settings the server cannot start without.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	if len(c.SessionSecret) < 32 {
		return ErrMissingSessionSecret
	}
	return nil
}

func get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func integer(k string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func duration(k string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(k)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func list(k string) []string {
	raw := strings.TrimSpace(os.Getenv(k))
	if raw == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
