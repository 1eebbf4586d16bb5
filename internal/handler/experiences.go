// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// ExperiencesHandler handles work-experience routes.
type ExperiencesHandler struct {
	db      *sql.DB
	queries *store.Queries
}

// NewExperiencesHandler creates a new ExperiencesHandler.
func NewExperiencesHandler(db *sql.DB) *ExperiencesHandler {
	return &ExperiencesHandler{db: db, queries: store.New(db)}
}

func validEmploymentType(t string) bool {
	switch t {
	case model.EmploymentFullTime, model.EmploymentPartTime, model.EmploymentContract,
		model.EmploymentFreelance, model.EmploymentInternship:
		return true
	}
	return false
}

// List returns all experiences with their achievements, current roles
// first.
// GET /api/experiences
func (h *ExperiencesHandler) List(w http.ResponseWriter, r *http.Request) {
	experiences, err := h.queries.ListExperiences(r.Context())
	if err != nil {
		logAndInternalError(w, "listing experiences", "error", err)
		return
	}
	for i := range experiences {
		achievements, err := h.queries.ListExperienceAchievements(r.Context(), experiences[i].ID)
		if err != nil {
			logAndInternalError(w, "loading achievements", "error", err, "experience_id", experiences[i].ID)
			return
		}
		experiences[i].Achievements = achievements
	}
	writeJSONSuccess(w, map[string]any{"experiences": experiences})
}

type experienceRequest struct {
	Company        string   `json:"company"`
	Role           string   `json:"role"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type"`
	StartDate      string   `json:"start_date"` // YYYY-MM-DD
	EndDate        *string  `json:"end_date"`
	IsCurrent      bool     `json:"is_current"`
	Description    string   `json:"description"`
	Achievements   []string `json:"achievements"`
}

func (req *experienceRequest) validate() (time.Time, sql.NullTime, string) {
	if req.Company == "" {
		return time.Time{}, sql.NullTime{}, "Company is required"
	}
	if req.Role == "" {
		return time.Time{}, sql.NullTime{}, "Role is required"
	}
	if req.EmploymentType == "" {
		req.EmploymentType = model.EmploymentFullTime
	}
	if !validEmploymentType(req.EmploymentType) {
		return time.Time{}, sql.NullTime{}, "Invalid employment type"
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return time.Time{}, sql.NullTime{}, "Invalid start_date (expected YYYY-MM-DD)"
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, sql.NullTime{}, "Invalid end_date (expected YYYY-MM-DD)"
	}
	// A current position has no end date.
	if req.IsCurrent {
		endDate = sql.NullTime{}
	}
	return startDate, endDate, ""
}

// Create adds a new experience.
// POST /admin/api/experiences
func (h *ExperiencesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req experienceRequest
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
	var experience model.Experience
	err := store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		experience, err = q.CreateExperience(r.Context(), store.CreateExperienceParams{
			Company:        req.Company,
			Role:           req.Role,
			Location:       req.Location,
			EmploymentType: req.EmploymentType,
			StartDate:      startDate,
			EndDate:        endDate,
			IsCurrent:      req.IsCurrent,
			Description:    req.Description,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if err != nil {
			return err
		}
		return q.ReplaceExperienceAchievements(r.Context(), experience.ID, req.Achievements)
	})
	if err != nil {
		logAndInternalError(w, "creating experience", "error", err)
		return
	}

	experience.Achievements, err = h.queries.ListExperienceAchievements(r.Context(), experience.ID)
	if err != nil {
		logAndInternalError(w, "loading achievements", "error", err, "experience_id", experience.ID)
		return
	}
	writeJSONCreated(w, map[string]any{"experience": experience})
}

// Update modifies an existing experience.
// PUT /admin/api/experiences/{id}
func (h *ExperiencesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid experience ID")
		return
	}

	if _, err := h.queries.GetExperienceByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Experience not found")
			return
		}
		logAndInternalError(w, "loading experience", "error", err, "experience_id", id)
		return
	}

	var req experienceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	startDate, endDate, msg := req.validate()
	if msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	// Row update and achievement replacement commit together; a failure
	// keeps the previous achievements intact.
	var experience model.Experience
	err = store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		experience, err = q.UpdateExperience(r.Context(), store.UpdateExperienceParams{
			Company:        req.Company,
			Role:           req.Role,
			Location:       req.Location,
			EmploymentType: req.EmploymentType,
			StartDate:      startDate,
			EndDate:        endDate,
			IsCurrent:      req.IsCurrent,
			Description:    req.Description,
			UpdatedAt:      time.Now(),
			ID:             id,
		})
		if err != nil {
			return err
		}
		return q.ReplaceExperienceAchievements(r.Context(), experience.ID, req.Achievements)
	})
	if err != nil {
		logAndInternalError(w, "updating experience", "error", err, "experience_id", id)
		return
	}

	experience.Achievements, err = h.queries.ListExperienceAchievements(r.Context(), experience.ID)
	if err != nil {
		logAndInternalError(w, "loading achievements", "error", err, "experience_id", experience.ID)
		return
	}
	writeJSONSuccess(w, map[string]any{"experience": experience})
}

// Delete removes an experience.
// DELETE /admin/api/experiences/{id}
func (h *ExperiencesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid experience ID")
		return
	}

	if _, err := h.queries.GetExperienceByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Experience not found")
			return
		}
		logAndInternalError(w, "loading experience", "error", err, "experience_id", id)
		return
	}

	if err := h.queries.DeleteExperience(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting experience", "error", err, "experience_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
