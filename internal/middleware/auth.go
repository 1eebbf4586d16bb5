// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request context handling.
package middleware

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped auth data.
const (
	ContextKeyClaims ContextKey = "claims"
	ContextKeyUser   ContextKey = "user"
)

// Admin area paths. LoginPath and SetupPath are carve-outs from the
// generic "require valid token" rule.
const (
	AdminPrefix = "/admin"
	LoginPath   = "/admin/login"
	SetupPath   = "/admin/setup"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "auth_token"

// SessionCookie builds the HTTP-only session cookie holding a signed
// token. A negative MaxAge with an empty value is used by
// ClearSessionCookie.
func SessionCookie(token string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearSessionCookie expires the session cookie immediately.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	c := SessionCookie("", -1, secure)
	http.SetCookie(w, c)
}

// redirectToLogin sends the client to the login page, preserving the
// originally requested path as a return-target query parameter.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := LoginPath + "?from=" + url.QueryEscape(r.URL.Path)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Guard creates middleware protecting the admin path prefix. It decides
// allow/redirect from token presence and validity alone; the check is
// stateless and runs once per request, before any protected content is
// served. The setup path is always allowed through: it performs its own
// authorization so the very first admin can be created with no
// pre-existing credential.
func Guard(secret []byte, secureCookies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path

			if path == SetupPath {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				// No token: the login page is reachable, everything else
				// redirects there.
				if path == LoginPath {
					next.ServeHTTP(w, r)
					return
				}
				redirectToLogin(w, r)
				return
			}

			claims, err := auth.VerifyToken(cookie.Value, secret)
			if err != nil {
				// Expired, malformed and bad-signature tokens are all
				// handled the same way: purge the untrusted cookie and
				// start over at the login page.
				slog.Debug("rejected session token", "reason", err, "path", path)
				ClearSessionCookie(w, secureCookies)
				if path == LoginPath {
					next.ServeHTTP(w, r)
					return
				}
				redirectToLogin(w, r)
				return
			}

			if path == LoginPath {
				// Already authenticated, no reason to show login.
				http.Redirect(w, r, AdminPrefix, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims retrieves the verified token claims from the request
// context. Returns nil if the request did not pass the Guard.
func GetClaims(r *http.Request) *auth.Claims {
	claims, ok := r.Context().Value(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// LoadUser creates middleware that loads the authenticated user record
// into the request context. Deactivated or deleted accounts are logged
// out even when their token is still cryptographically valid.
func LoadUser(db *sql.DB, secureCookies bool) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				redirectToLogin(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), claims.UserID())
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("loading user for session", "error", err, "user_id", claims.UserID())
				}
				ClearSessionCookie(w, secureCookies)
				redirectToLogin(w, r)
				return
			}

			if !user.IsActive {
				slog.Warn("session for deactivated account rejected", "user_id", user.ID)
				ClearSessionCookie(w, secureCookies)
				redirectToLogin(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the current user from the request context.
// Returns nil if no user is in context.
func GetUser(r *http.Request) *model.User {
	user, ok := r.Context().Value(ContextKeyUser).(model.User)
	if !ok {
		return nil
	}
	return &user
}

// GetUserID returns the current user's ID from context, or 0 if not found.
// Safe to use in logging where a zero-value is acceptable.
func GetUserID(r *http.Request) int64 {
	if user := GetUser(r); user != nil {
		return user.ID
	}
	return 0
}

// RequireAdmin creates middleware that requires the admin role.
// Non-admin principals get 403; unauthenticated requests are redirected
// by the Guard before reaching here.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				redirectToLogin(w, r)
				return
			}

			if !user.IsAdmin() {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", user.Role,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
