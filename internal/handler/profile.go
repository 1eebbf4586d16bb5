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
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// ProfileHandler serves the public site-owner profile and the admin
// profile management routes.
type ProfileHandler struct {
	queries *store.Queries
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(db *sql.DB) *ProfileHandler {
	return &ProfileHandler{queries: store.New(db)}
}

// publicProfile is the subset of the owner's record shown on the public
// site.
type publicProfile struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
	HasCV       bool   `json:"has_cv"`
}

// Get returns the site owner's public profile.
// GET /api/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, err := h.queries.GetFirstUserByRole(r.Context(), model.RoleAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Profile not available")
			return
		}
		logAndInternalError(w, "loading profile", "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{"profile": publicProfile{
		Name:        owner.Name,
		Bio:         owner.Bio,
		Location:    owner.Location,
		GithubURL:   owner.GithubURL,
		LinkedinURL: owner.LinkedinURL,
		HasCV:       owner.CVPath != "",
	}})
}

type profileUpdateRequest struct {
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Location    string `json:"location"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
}

// Update modifies the authenticated user's profile fields.
// PUT /admin/api/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req profileUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.queries.UpdateUserProfile(r.Context(), store.UpdateUserProfileParams{
		Name:        req.Name,
		Bio:         req.Bio,
		Location:    req.Location,
		GithubURL:   req.GithubURL,
		LinkedinURL: req.LinkedinURL,
		UpdatedAt:   time.Now(),
		ID:          user.ID,
	}); err != nil {
		logAndInternalError(w, "updating profile", "error", err, "user_id", user.ID)
		return
	}

	updated, err := h.queries.GetUserByID(r.Context(), user.ID)
	if err != nil {
		logAndInternalError(w, "loading updated profile", "error", err, "user_id", user.ID)
		return
	}
	writeJSONSuccess(w, map[string]any{"user": updated})
}

type passwordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the authenticated user's password after
// verifying the current one.
// PUT /admin/api/password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req passwordChangeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := ValidatePassword(req.NewPassword); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	valid, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil {
		logAndInternalError(w, "verifying current password", "error", err, "user_id", user.ID)
		return
	}
	if !valid {
		slog.Warn("password change with wrong current password", "user_id", user.ID)
		writeJSONError(w, http.StatusForbidden, "Current password is incorrect")
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		logAndInternalError(w, "hashing new password", "error", err, "user_id", user.ID)
		return
	}
	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		PasswordHash: newHash,
		UpdatedAt:    time.Now(),
		ID:           user.ID,
	}); err != nil {
		logAndInternalError(w, "updating password", "error", err, "user_id", user.ID)
		return
	}

	slog.Info("password changed", "user_id", user.ID)
	writeJSONSuccess(w, nil)
}
