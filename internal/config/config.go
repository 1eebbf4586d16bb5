// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
	"your-secret-key-change-in-production",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"PORTFOLIO_DB_PATH" envDefault:"./data/portfolio.db"`
	JWTSecret  string `env:"PORTFOLIO_JWT_SECRET,required"`
	ServerHost string `env:"PORTFOLIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"PORTFOLIO_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"PORTFOLIO_ENV" envDefault:"development"`
	LogLevel   string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	LogFormat  string `env:"PORTFOLIO_LOG_FORMAT" envDefault:"text"`
	UploadsDir string `env:"PORTFOLIO_UPLOADS_DIR" envDefault:"./uploads"`

	// TokenTTL is the session token lifetime. Expiry forces re-login;
	// tokens are never refreshed automatically.
	TokenTTL time.Duration `env:"PORTFOLIO_TOKEN_TTL" envDefault:"24h"`

	// SetupKey gates force re-provisioning of the admin account outside
	// development. Empty means force mode is refused in production.
	SetupKey string `env:"PORTFOLIO_SETUP_KEY"`

	// VisitorSalt feeds the daily visitor-hash in analytics. When unset
	// it is derived from the signing secret so the two keys stay
	// distinct even on a minimal configuration.
	VisitorSalt string `env:"PORTFOLIO_VISITOR_SALT"`

	// GeoIP configuration
	GeoIPDBPath string `env:"PORTFOLIO_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Analytics retention window in days. Pageviews older than this are
	// pruned by the scheduler. Zero disables pruning.
	AnalyticsRetentionDays int `env:"PORTFOLIO_ANALYTICS_RETENTION_DAYS" envDefault:"365"`

	// Maximum accepted CV upload size in bytes.
	MaxCVSize int64 `env:"PORTFOLIO_MAX_CV_SIZE" envDefault:"10485760"`

	// Seeding configuration
	DoSeed bool `env:"PORTFOLIO_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinJWTSecretLength is the minimum required length for the token signing
// secret. HS256 keys shorter than the hash output weaken the MAC.
const MinJWTSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate signing secret length
	if len(cfg.JWTSecret) < MinJWTSecretLength {
		return nil, fmt.Errorf("PORTFOLIO_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinJWTSecretLength, len(cfg.JWTSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.JWTSecret == weak {
			return nil, fmt.Errorf("PORTFOLIO_JWT_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.JWTSecret) {
		slog.Warn("PORTFOLIO_JWT_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("PORTFOLIO_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	if cfg.AnalyticsRetentionDays < 0 {
		return nil, fmt.Errorf("PORTFOLIO_ANALYTICS_RETENTION_DAYS must not be negative, got %d", cfg.AnalyticsRetentionDays)
	}

	if cfg.VisitorSalt == "" {
		cfg.VisitorSalt = deriveVisitorSalt(cfg.JWTSecret)
	}

	return cfg, nil
}

// deriveVisitorSalt derives a visitor-hash salt from the signing secret
// with a fixed domain prefix, so the raw secret never doubles as the
// salt.
func deriveVisitorSalt(secret string) string {
	sum := sha256.Sum256([]byte("portfolio-visitor-salt:" + secret))
	return hex.EncodeToString(sum[:])
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
