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

// TestimonialsHandler handles testimonial routes. The public list only
// shows approved entries.
type TestimonialsHandler struct {
	queries *store.Queries
}

// NewTestimonialsHandler creates a new TestimonialsHandler.
func NewTestimonialsHandler(db *sql.DB) *TestimonialsHandler {
	return &TestimonialsHandler{queries: store.New(db)}
}

// ListApproved returns approved testimonials.
// GET /api/testimonials
func (h *TestimonialsHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonials(r.Context(), true)
	if err != nil {
		logAndInternalError(w, "listing testimonials", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"testimonials": testimonials})
}

// ListAll returns all testimonials including unapproved ones.
// GET /admin/api/testimonials
func (h *TestimonialsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.queries.ListTestimonials(r.Context(), false)
	if err != nil {
		logAndInternalError(w, "listing testimonials", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"testimonials": testimonials})
}

type testimonialRequest struct {
	AuthorName    string `json:"author_name"`
	AuthorTitle   string `json:"author_title"`
	AuthorCompany string `json:"author_company"`
	Quote         string `json:"quote"`
	AvatarURL     string `json:"avatar_url"`
	Approved      bool   `json:"approved"`
	OrderIndex    int64  `json:"order_index"`
}

func (req *testimonialRequest) validate() string {
	if req.AuthorName == "" {
		return "Author name is required"
	}
	if req.Quote == "" {
		return "Quote is required"
	}
	return ""
}

// Create adds a new testimonial.
// POST /admin/api/testimonials
func (h *TestimonialsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req testimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	testimonial, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		AuthorName:    req.AuthorName,
		AuthorTitle:   req.AuthorTitle,
		AuthorCompany: req.AuthorCompany,
		Quote:         req.Quote,
		AvatarURL:     req.AvatarURL,
		Approved:      req.Approved,
		OrderIndex:    req.OrderIndex,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		logAndInternalError(w, "creating testimonial", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"testimonial": testimonial})
}

// Update modifies an existing testimonial, including its approval flag.
// PUT /admin/api/testimonials/{id}
func (h *TestimonialsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	if _, err := h.queries.GetTestimonialByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		logAndInternalError(w, "loading testimonial", "error", err, "testimonial_id", id)
		return
	}

	var req testimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	testimonial, err := h.queries.UpdateTestimonial(r.Context(), store.UpdateTestimonialParams{
		AuthorName:    req.AuthorName,
		AuthorTitle:   req.AuthorTitle,
		AuthorCompany: req.AuthorCompany,
		Quote:         req.Quote,
		AvatarURL:     req.AvatarURL,
		Approved:      req.Approved,
		OrderIndex:    req.OrderIndex,
		UpdatedAt:     time.Now(),
		ID:            id,
	})
	if err != nil {
		logAndInternalError(w, "updating testimonial", "error", err, "testimonial_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"testimonial": testimonial})
}

// Delete removes a testimonial.
// DELETE /admin/api/testimonials/{id}
func (h *TestimonialsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid testimonial ID")
		return
	}

	if _, err := h.queries.GetTestimonialByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Testimonial not found")
			return
		}
		logAndInternalError(w, "loading testimonial", "error", err, "testimonial_id", id)
		return
	}

	if err := h.queries.DeleteTestimonial(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting testimonial", "error", err, "testimonial_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
