package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// CORS
	CORSOrigins string // Comma-separated allowed origins, e.g. "https://example.com,https://app.example.com"

	// Storage
	StoreDriver string // memory, bolt, sqlite, postgres or redis
	StorePath   string // bolt/sqlite file
	DatabaseURL string
	RedisURL    string

	// Roster
	SeedDisabled bool // start from an empty roster instead of the starter roster

	// Public intake
	SignupRateLimit int // requests per minute per client on /api/signup

	// Snapshots
	SnapshotDir      string // empty disables the snapshot job
	SnapshotInterval time.Duration

	// Email alerts
	SMTPEnabled  bool
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string   // "none", "tls" or "starttls"
	AlertEmails  []string // operators who receive notification emails
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env file", "error", err)
	}

	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),
		StoreDriver:      getEnv("STORE_DRIVER", "bolt"),
		StorePath:        getEnv("STORE_PATH", "amplify.db"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/amplify?sslmode=disable"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SeedDisabled:     getEnv("SEED_DISABLED", "") != "",
		SignupRateLimit:  getEnvInt("SIGNUP_RATE_LIMIT", 10),
		SnapshotDir:      getEnv("SNAPSHOT_DIR", ""),
		SnapshotInterval: getEnvDuration("SNAPSHOT_INTERVAL", 24*time.Hour),
		SMTPEnabled:      getEnv("SMTP_ENABLED", "") == "true",
		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getEnvInt("SMTP_PORT", 587),
		SMTPUsername:     getEnv("SMTP_USERNAME", ""),
		SMTPPassword:     getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:         getEnv("SMTP_FROM", ""),
		SMTPFromName:     getEnv("SMTP_FROM_NAME", "Amplify"),
		SMTPTLS:          getEnv("SMTP_TLS", "starttls"),
		AlertEmails:      splitList(getEnv("ALERT_EMAILS", "")),
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil && v > 0 {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(getEnv(key, "")); err == nil && d > 0 {
		return d
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// SnapshotsEnabled reports whether the roster snapshot job should run.
func (c *Config) SnapshotsEnabled() bool {
	return c.SnapshotDir != ""
}

// IsEmailEnabled reports whether SMTP is configured well enough to send.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPEnabled && c.SMTPHost != "" && c.SMTPFrom != ""
}
