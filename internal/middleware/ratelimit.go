// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"portfolio-go/internal/util"
)

// RateLimiterConfig holds per-IP rate limit settings for a route group.
type RateLimiterConfig struct {
	// Rate is the sustained number of requests per second allowed.
	Rate rate.Limit
	// Burst is the number of requests allowed to exceed the rate briefly.
	Burst int
	// CleanupInterval controls how often idle limiters are evicted.
	CleanupInterval time.Duration
	// IdleTimeout is how long an IP must be quiet before its limiter is
	// dropped.
	IdleTimeout time.Duration
}

// ContactFormLimiterConfig throttles the public contact endpoint hard:
// humans do not submit forms more than a few times a minute.
func ContactFormLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Rate:            rate.Every(12 * time.Second),
		Burst:           5,
		CleanupInterval: 10 * time.Minute,
		IdleTimeout:     30 * time.Minute,
	}
}

// LoginLimiterConfig slows down credential guessing without locking out
// a legitimate admin who fat-fingers a password a few times.
func LoginLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		Rate:            rate.Every(3 * time.Second),
		Burst:           10,
		CleanupInterval: 10 * time.Minute,
		IdleTimeout:     30 * time.Minute,
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps a token-bucket limiter per client IP, evicting
// entries for IPs that have gone quiet.
type IPRateLimiter struct {
	cfg      RateLimiterConfig
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	done     chan struct{}
}

// NewIPRateLimiter creates a per-IP limiter and starts its background
// cleanup loop. Call Close when shutting down.
func NewIPRateLimiter(cfg RateLimiterConfig) *IPRateLimiter {
	l := &IPRateLimiter{
		cfg:      cfg,
		limiters: make(map[string]*limiterEntry),
		done:     make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Close stops the cleanup goroutine.
func (l *IPRateLimiter) Close() {
	close(l.done)
}

// Allow reports whether a request from ip may proceed.
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.limiters[ip]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(l.cfg.Rate, l.cfg.Burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (l *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.cleanup()
		}
	}
}

func (l *IPRateLimiter) cleanup() {
	cutoff := time.Now().Add(-l.cfg.IdleTimeout)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, entry := range l.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(l.limiters, ip)
		}
	}
}

// Middleware wraps a handler with the per-IP rate limit, answering 429
// when the bucket for the client is empty.
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := util.ClientIP(r)
		if !l.Allow(ip) {
			slog.Warn("rate limit exceeded", "ip", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "10")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
