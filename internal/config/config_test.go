// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/portfolio.db", cfg.DBPath)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 365, cfg.AnalyticsRetentionDays)
	assert.Equal(t, int64(10485760), cfg.MaxCVSize)
	assert.False(t, cfg.GeoIPEnabled())
	assert.False(t, cfg.DoSeed)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "too-short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_KnownWeakSecret(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "change-me-to-32-byte-secret-key!")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "known default value")
}

func TestLoad_NonPositiveTokenTTL(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")
	t.Setenv("PORTFOLIO_TOKEN_TTL", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeRetention(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")
	t.Setenv("PORTFOLIO_ANALYTICS_RETENTION_DAYS", "-1")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")
	t.Setenv("PORTFOLIO_SERVER_HOST", "0.0.0.0")
	t.Setenv("PORTFOLIO_SERVER_PORT", "9090")
	t.Setenv("PORTFOLIO_ENV", "production")
	t.Setenv("PORTFOLIO_GEOIP_DB_PATH", "/srv/geoip/GeoLite2-Country.mmdb")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.ServerAddr())
	assert.False(t, cfg.IsDevelopment())
	assert.True(t, cfg.GeoIPEnabled())
}

func TestLoad_VisitorSaltDerivedFromSecret(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")

	cfg, err := Load()
	require.NoError(t, err)

	// Unset, the salt is derived rather than reusing the raw secret.
	assert.NotEmpty(t, cfg.VisitorSalt)
	assert.NotEqual(t, cfg.JWTSecret, cfg.VisitorSalt)
	assert.NotContains(t, cfg.VisitorSalt, cfg.JWTSecret)

	// Derivation is stable across restarts so visitor IDs stay stable.
	again, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg.VisitorSalt, again.VisitorSalt)
}

func TestLoad_VisitorSaltOverride(t *testing.T) {
	t.Setenv("PORTFOLIO_JWT_SECRET", "Xk9#mP2$vQ8@nR5!wT3^bY7&cU1*dZ4%")
	t.Setenv("PORTFOLIO_VISITOR_SALT", "separate-analytics-salt")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "separate-analytics-salt", cfg.VisitorSalt)
}

func TestHasMinimumEntropy(t *testing.T) {
	assert.True(t, hasMinimumEntropy("Abc123!@#"))
	assert.True(t, hasMinimumEntropy("Abc123"))
	assert.False(t, hasMinimumEntropy("abcdefgh"))
	assert.False(t, hasMinimumEntropy("abc123"))
}
