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

// SkillsHandler handles skill routes.
type SkillsHandler struct {
	queries *store.Queries
}

// NewSkillsHandler creates a new SkillsHandler.
func NewSkillsHandler(db *sql.DB) *SkillsHandler {
	return &SkillsHandler{queries: store.New(db)}
}

func validSkillCategory(c string) bool {
	switch c {
	case model.SkillCategoryLanguage, model.SkillCategoryFramework,
		model.SkillCategoryDatabase, model.SkillCategoryTool, model.SkillCategorySoft:
		return true
	}
	return false
}

// List returns skills grouped by category order.
// GET /api/skills?category=language
func (h *SkillsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category != "" && !validSkillCategory(category) {
		writeJSONError(w, http.StatusBadRequest, "Invalid skill category")
		return
	}

	skills, err := h.queries.ListSkills(r.Context(), store.ListSkillsParams{Category: category})
	if err != nil {
		logAndInternalError(w, "listing skills", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"skills": skills})
}

type skillRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int64  `json:"proficiency_level"`
	Years       int64  `json:"years_of_experience"`
	Icon        string `json:"icon"`
	OrderIndex  int64  `json:"order_index"`
}

func (req *skillRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if !validSkillCategory(req.Category) {
		return "Invalid skill category"
	}
	if req.Proficiency < 1 || req.Proficiency > 5 {
		return "Proficiency level must be between 1 and 5"
	}
	if req.Years < 0 {
		return "Years of experience must not be negative"
	}
	return ""
}

// Create adds a new skill.
// POST /admin/api/skills
func (h *SkillsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req skillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	skill, err := h.queries.CreateSkill(r.Context(), store.CreateSkillParams{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Years:       req.Years,
		Icon:        req.Icon,
		OrderIndex:  req.OrderIndex,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		logAndInternalError(w, "creating skill", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"skill": skill})
}

// Update modifies an existing skill.
// PUT /admin/api/skills/{id}
func (h *SkillsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid skill ID")
		return
	}

	if _, err := h.queries.GetSkillByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Skill not found")
			return
		}
		logAndInternalError(w, "loading skill", "error", err, "skill_id", id)
		return
	}

	var req skillRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	skill, err := h.queries.UpdateSkill(r.Context(), store.UpdateSkillParams{
		Name:        req.Name,
		Category:    req.Category,
		Proficiency: req.Proficiency,
		Years:       req.Years,
		Icon:        req.Icon,
		OrderIndex:  req.OrderIndex,
		UpdatedAt:   time.Now(),
		ID:          id,
	})
	if err != nil {
		logAndInternalError(w, "updating skill", "error", err, "skill_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"skill": skill})
}

// Delete removes a skill.
// DELETE /admin/api/skills/{id}
func (h *SkillsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid skill ID")
		return
	}

	if _, err := h.queries.GetSkillByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Skill not found")
			return
		}
		logAndInternalError(w, "loading skill", "error", err, "skill_id", id)
		return
	}

	if err := h.queries.DeleteSkill(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting skill", "error", err, "skill_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
