// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import "net/http"

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment disables HSTS (which requires HTTPS).
	IsDevelopment bool
	// ContentSecurityPolicy sets the CSP header. Empty means no CSP header.
	ContentSecurityPolicy string
	// HSTSMaxAge in seconds. Zero disables HSTS.
	HSTSMaxAge string
	// FrameOptions sets X-Frame-Options. Empty defaults to DENY.
	FrameOptions string
	// ReferrerPolicy. Empty defaults to strict-origin-when-cross-origin.
	ReferrerPolicy string
}

// DefaultSecurityHeadersConfig returns sensible defaults for a JSON API
// with an admin panel.
func DefaultSecurityHeadersConfig(isDevelopment bool) SecurityHeadersConfig {
	return SecurityHeadersConfig{
		IsDevelopment:  isDevelopment,
		HSTSMaxAge:     "31536000",
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}
}

// SecurityHeaders creates middleware that sets common security headers
// on every response.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	if cfg.FrameOptions == "" {
		cfg.FrameOptions = "DENY"
	}
	if cfg.ReferrerPolicy == "" {
		cfg.ReferrerPolicy = "strict-origin-when-cross-origin"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", cfg.FrameOptions)
			h.Set("Referrer-Policy", cfg.ReferrerPolicy)

			if cfg.ContentSecurityPolicy != "" {
				h.Set("Content-Security-Policy", cfg.ContentSecurityPolicy)
			}

			// HSTS only makes sense over HTTPS.
			if !cfg.IsDevelopment && cfg.HSTSMaxAge != "" && cfg.HSTSMaxAge != "0" {
				h.Set("Strict-Transport-Security", "max-age="+cfg.HSTSMaxAge+"; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}
