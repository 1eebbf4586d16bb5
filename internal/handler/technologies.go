// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// TechnologiesHandler handles the technology tag routes.
type TechnologiesHandler struct {
	queries *store.Queries
}

// NewTechnologiesHandler creates a new TechnologiesHandler.
func NewTechnologiesHandler(db *sql.DB) *TechnologiesHandler {
	return &TechnologiesHandler{queries: store.New(db)}
}

func validTechCategory(c string) bool {
	switch c {
	case model.TechCategoryBackend, model.TechCategoryFrontend,
		model.TechCategoryDatabase, model.TechCategoryDevops, model.TechCategoryOther:
		return true
	}
	return false
}

// List returns all technologies.
// GET /api/technologies
func (h *TechnologiesHandler) List(w http.ResponseWriter, r *http.Request) {
	techs, err := h.queries.ListTechnologies(r.Context())
	if err != nil {
		logAndInternalError(w, "listing technologies", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"technologies": techs})
}

type technologyRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

func (req *technologyRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if req.Category == "" {
		req.Category = model.TechCategoryOther
	}
	if !validTechCategory(req.Category) {
		return "Invalid technology category"
	}
	return ""
}

// Create adds a new technology.
// POST /admin/api/technologies
func (h *TechnologiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req technologyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	// Names are unique; surface a conflict instead of a 500.
	if _, err := h.queries.GetTechnologyByName(r.Context(), req.Name); err == nil {
		writeJSONError(w, http.StatusConflict, "Technology already exists")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		logAndInternalError(w, "checking technology name", "error", err)
		return
	}

	tech, err := h.queries.CreateTechnology(r.Context(), store.CreateTechnologyParams{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
	})
	if err != nil {
		logAndInternalError(w, "creating technology", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"technology": tech})
}

// Update modifies an existing technology.
// PUT /admin/api/technologies/{id}
func (h *TechnologiesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid technology ID")
		return
	}

	if _, err := h.queries.GetTechnologyByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Technology not found")
			return
		}
		logAndInternalError(w, "loading technology", "error", err, "technology_id", id)
		return
	}

	var req technologyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.queries.UpdateTechnology(r.Context(), store.UpdateTechnologyParams{
		Name:     req.Name,
		Category: req.Category,
		Color:    req.Color,
		ID:       id,
	}); err != nil {
		logAndInternalError(w, "updating technology", "error", err, "technology_id", id)
		return
	}

	tech, err := h.queries.GetTechnologyByID(r.Context(), id)
	if err != nil {
		logAndInternalError(w, "loading technology", "error", err, "technology_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"technology": tech})
}

// Delete removes a technology and its project links.
// DELETE /admin/api/technologies/{id}
func (h *TechnologiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid technology ID")
		return
	}

	if _, err := h.queries.GetTechnologyByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Technology not found")
			return
		}
		logAndInternalError(w, "loading technology", "error", err, "technology_id", id)
		return
	}

	if err := h.queries.DeleteTechnology(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting technology", "error", err, "technology_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
