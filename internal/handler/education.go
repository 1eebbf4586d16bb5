// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"portfolio-go/internal/store"
)

// EducationHandler handles education entry routes.
type EducationHandler struct {
	queries *store.Queries
}

// NewEducationHandler creates a new EducationHandler.
func NewEducationHandler(db *sql.DB) *EducationHandler {
	return &EducationHandler{queries: store.New(db)}
}

// List returns all education entries, newest first.
// GET /api/education
func (h *EducationHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.queries.ListEducation(r.Context())
	if err != nil {
		logAndInternalError(w, "listing education", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"education": entries})
}

type educationRequest struct {
	Institution string  `json:"institution"`
	Degree      string  `json:"degree"`
	Field       string  `json:"field"`
	StartDate   string  `json:"start_date"` // YYYY-MM-DD
	EndDate     *string `json:"end_date"`
	Description string  `json:"description"`
	Grade       string  `json:"grade"`
}

func (req *educationRequest) validate() (time.Time, sql.NullTime, string) {
	if req.Institution == "" {
		return time.Time{}, sql.NullTime{}, "Institution is required"
	}
	if req.Degree == "" {
		return time.Time{}, sql.NullTime{}, "Degree is required"
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return time.Time{}, sql.NullTime{}, "Invalid start_date (expected YYYY-MM-DD)"
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, sql.NullTime{}, "Invalid end_date (expected YYYY-MM-DD)"
	}
	return startDate, endDate, ""
}

// Create adds a new education entry.
// POST /admin/api/education
func (h *EducationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req educationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, endDate, msg := req.validate()
	if msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	entry, err := h.queries.CreateEducation(r.Context(), store.CreateEducationParams{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
		Grade:       req.Grade,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logAndInternalError(w, "creating education entry", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"education": entry})
}

// Update modifies an existing education entry.
// PUT /admin/api/education/{id}
func (h *EducationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid education ID")
		return
	}

	if _, err := h.queries.GetEducationByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		logAndInternalError(w, "loading education entry", "error", err, "education_id", id)
		return
	}

	var req educationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, endDate, msg := req.validate()
	if msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	entry, err := h.queries.UpdateEducation(r.Context(), store.UpdateEducationParams{
		Institution: req.Institution,
		Degree:      req.Degree,
		Field:       req.Field,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: req.Description,
		Grade:       req.Grade,
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		logAndInternalError(w, "updating education entry", "error", err, "education_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"education": entry})
}

// Delete removes an education entry.
// DELETE /admin/api/education/{id}
func (h *EducationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid education ID")
		return
	}

	if _, err := h.queries.GetEducationByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Education entry not found")
			return
		}
		logAndInternalError(w, "loading education entry", "error", err, "education_id", id)
		return
	}

	if err := h.queries.DeleteEducation(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting education entry", "error", err, "education_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
