// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/middleware"
	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// AuthHandler handles login, logout and session introspection.
type AuthHandler struct {
	queries       *store.Queries
	secret        []byte
	tokenTTL      time.Duration
	secureCookies bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, secret []byte, tokenTTL time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		queries:       store.New(db),
		secret:        secret,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and establishes the session cookie.
// POST /admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.Email == "" || req.Password == "" {
		writeJSONError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	clientIP := util.ClientIP(r)

	user, err := h.queries.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			slog.Warn("login failed: user not found", "email", req.Email, "ip", clientIP)
		} else {
			slog.Error("database error during login", "error", err)
		}
		// Same answer for unknown user and wrong password: no enumeration.
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil {
		slog.Error("password check error", "error", err)
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !valid {
		slog.Warn("login failed: invalid password", "user_id", user.ID, "ip", clientIP)
		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !user.IsActive {
		slog.Warn("login refused for deactivated account", "user_id", user.ID, "ip", clientIP)
		writeJSONError(w, http.StatusUnauthorized, "Account is deactivated")
		return
	}

	// Re-hash if the stored hash uses outdated parameters.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			}); err != nil {
				slog.Error("failed to re-hash password", "error", err, "user_id", user.ID)
			}
		}
	}

	token, err := auth.IssueToken(user.ID, user.Email, user.Role, h.secret, h.tokenTTL)
	if err != nil {
		logAndInternalError(w, "issuing session token", "error", err, "user_id", user.ID)
		return
	}

	if err := h.queries.UpdateUserLastLogin(r.Context(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	}); err != nil {
		// Not worth failing the login over.
		slog.Error("failed to update last login time", "error", err, "user_id", user.ID)
	}

	http.SetCookie(w, middleware.SessionCookie(token, int(h.tokenTTL.Seconds()), h.secureCookies))

	slog.Info("user logged in", "user_id", user.ID, "ip", clientIP)
	writeJSONSuccess(w, map[string]any{"user": user})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; logout is purely client-side state removal.
// POST /admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := int64(0)
	if claims := middleware.GetClaims(r); claims != nil {
		userID = claims.UserID()
	}

	middleware.ClearSessionCookie(w, h.secureCookies)
	slog.Info("user logged out", "user_id", userID)
	writeJSONSuccess(w, nil)
}

// Me returns the authenticated user's record.
// GET /admin/api/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	writeJSONSuccess(w, map[string]any{"user": user})
}
