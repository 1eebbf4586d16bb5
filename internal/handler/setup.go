// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"crypto/subtle"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// SetupKeyHeader carries the provisioning key that authorizes force
// re-provisioning outside development.
const SetupKeyHeader = "X-Admin-Setup-Key"

// SetupHandler implements the one-time admin provisioning gate.
type SetupHandler struct {
	queries       *store.Queries
	isDevelopment bool
	setupKey      string
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(db *sql.DB, isDevelopment bool, setupKey string) *SetupHandler {
	return &SetupHandler{
		queries:       store.New(db),
		isDevelopment: isDevelopment,
		setupKey:      setupKey,
	}
}

// Status reports whether initial setup is still available. This probe is
// advisory only: a transient database error reports setup as available
// so a fresh install is never bricked, but the Create path re-checks
// and fails closed.
// GET /admin/setup
func (h *SetupHandler) Status(w http.ResponseWriter, r *http.Request) {
	count, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
	if err != nil {
		slog.Error("checking setup availability", "error", err)
		writeJSONSuccess(w, map[string]any{"available": true})
		return
	}
	writeJSONSuccess(w, map[string]any{"available": count == 0})
}

type setupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Force    bool   `json:"force"`
}

// Create provisions the admin account. With force set, an existing
// admin is overwritten in place; force is only honored in development
// or when the request carries the configured provisioning key.
// POST /admin/setup
func (h *SetupHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	if msg := ValidateEmail(req.Email); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := ValidatePassword(req.Password); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Name == "" {
		req.Name = "Administrator"
	}

	clientIP := util.ClientIP(r)

	// Unlike Status, creation fails closed: no admin may be written when
	// the existence check cannot complete.
	count, err := h.queries.CountUsersByRole(r.Context(), model.RoleAdmin)
	if err != nil {
		logAndInternalError(w, "checking for existing admin", "error", err)
		return
	}

	if count > 0 {
		if !req.Force {
			slog.Warn("setup attempted with existing admin", "ip", clientIP)
			writeJSONError(w, http.StatusConflict, "Admin account already exists")
			return
		}
		if !h.forceAuthorized(r) {
			slog.Warn("unauthorized force setup attempt", "ip", clientIP)
			writeJSONError(w, http.StatusForbidden, "Force setup is not authorized")
			return
		}
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		logAndInternalError(w, "hashing setup password", "error", err)
		return
	}

	now := time.Now()

	if count > 0 {
		// Force path: re-provision the existing admin in place rather
		// than accumulating admin accounts.
		existing, err := h.queries.GetFirstUserByRole(r.Context(), model.RoleAdmin)
		if err != nil {
			logAndInternalError(w, "loading admin for force setup", "error", err)
			return
		}
		user, err := h.queries.OverwriteUser(r.Context(), store.OverwriteUserParams{
			Email:        req.Email,
			PasswordHash: passwordHash,
			Role:         model.RoleAdmin,
			Name:         req.Name,
			IsActive:     true,
			UpdatedAt:    now,
			ID:           existing.ID,
		})
		if err != nil {
			logAndInternalError(w, "force re-provisioning admin", "error", err)
			return
		}
		slog.Warn("admin account force re-provisioned", "user_id", user.ID, "ip", clientIP)
		writeJSONSuccess(w, map[string]any{"user": user})
		return
	}

	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         req.Name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		// Two racing setup requests are serialized by the unique email
		// index; the loser lands here.
		logAndInternalError(w, "creating admin account", "error", err)
		return
	}

	slog.Info("admin account created via setup", "user_id", user.ID, "ip", clientIP)
	writeJSONCreated(w, map[string]any{"user": user})
}

// forceAuthorized reports whether this request may overwrite an existing
// admin. Development trusts the operator; production requires a
// configured provisioning key presented in the request header.
func (h *SetupHandler) forceAuthorized(r *http.Request) bool {
	if h.isDevelopment {
		return true
	}
	if h.setupKey == "" {
		return false
	}
	provided := r.Header.Get(SetupKeyHeader)
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.setupKey)) == 1
}
