// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// BlogTaxonomyHandler handles blog category and tag routes. Listings
// are public; mutations sit behind the admin surface.
type BlogTaxonomyHandler struct {
	queries *store.Queries
}

// NewBlogTaxonomyHandler creates a new BlogTaxonomyHandler.
func NewBlogTaxonomyHandler(db *sql.DB) *BlogTaxonomyHandler {
	return &BlogTaxonomyHandler{queries: store.New(db)}
}

// ListCategories returns all categories with their post counts.
// GET /api/blog/categories
func (h *BlogTaxonomyHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.queries.ListCategories(r.Context())
	if err != nil {
		logAndInternalError(w, "listing categories", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"categories": categories})
}

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// CreateCategory adds a new blog category.
// POST /admin/api/blog/categories
func (h *BlogTaxonomyHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	}
	if !util.IsValidSlug(req.Slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	// Name and slug are both unique; surface a conflict instead of a 500.
	n, err := h.queries.CountCategoriesByNameOrSlug(r.Context(), req.Name, req.Slug, 0)
	if err != nil {
		logAndInternalError(w, "checking category name", "error", err)
		return
	}
	if n > 0 {
		writeJSONError(w, http.StatusConflict, "Category already exists")
		return
	}

	category, err := h.queries.CreateCategory(r.Context(), store.CreateCategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
	})
	if err != nil {
		logAndInternalError(w, "creating category", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"category": category})
}

// UpdateCategory modifies an existing blog category.
// PUT /admin/api/blog/categories/{id}
func (h *BlogTaxonomyHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	existing, err := h.queries.GetCategoryByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Category not found")
			return
		}
		logAndInternalError(w, "loading category", "error", err, "category_id", id)
		return
	}

	var req categoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = existing.Slug
	}
	if !util.IsValidSlug(req.Slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	n, err := h.queries.CountCategoriesByNameOrSlug(r.Context(), req.Name, req.Slug, id)
	if err != nil {
		logAndInternalError(w, "checking category name", "error", err)
		return
	}
	if n > 0 {
		writeJSONError(w, http.StatusConflict, "Category already exists")
		return
	}

	if err := h.queries.UpdateCategory(r.Context(), store.UpdateCategoryParams{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ID:          id,
	}); err != nil {
		logAndInternalError(w, "updating category", "error", err, "category_id", id)
		return
	}

	category, err := h.queries.GetCategoryByID(r.Context(), id)
	if err != nil {
		logAndInternalError(w, "loading category", "error", err, "category_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"category": category})
}

// DeleteCategory removes a blog category and its post links.
// DELETE /admin/api/blog/categories/{id}
func (h *BlogTaxonomyHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if _, err := h.queries.GetCategoryByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Category not found")
			return
		}
		logAndInternalError(w, "loading category", "error", err, "category_id", id)
		return
	}

	if err := h.queries.DeleteCategory(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting category", "error", err, "category_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}

// ListTags returns all tags with their post counts.
// GET /api/blog/tags
func (h *BlogTaxonomyHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.queries.ListTags(r.Context())
	if err != nil {
		logAndInternalError(w, "listing tags", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"tags": tags})
}

type tagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CreateTag adds a new blog tag.
// POST /admin/api/blog/tags
func (h *BlogTaxonomyHandler) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Name)
	}
	if !util.IsValidSlug(req.Slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	n, err := h.queries.CountTagsByNameOrSlug(r.Context(), req.Name, req.Slug, 0)
	if err != nil {
		logAndInternalError(w, "checking tag name", "error", err)
		return
	}
	if n > 0 {
		writeJSONError(w, http.StatusConflict, "Tag already exists")
		return
	}

	tag, err := h.queries.CreateTag(r.Context(), store.CreateTagParams{
		Name: req.Name,
		Slug: req.Slug,
	})
	if err != nil {
		logAndInternalError(w, "creating tag", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"tag": tag})
}

// UpdateTag modifies an existing blog tag.
// PUT /admin/api/blog/tags/{id}
func (h *BlogTaxonomyHandler) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid tag ID")
		return
	}

	existing, err := h.queries.GetTagByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Tag not found")
			return
		}
		logAndInternalError(w, "loading tag", "error", err, "tag_id", id)
		return
	}

	var req tagRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeJSONError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Slug == "" {
		req.Slug = existing.Slug
	}
	if !util.IsValidSlug(req.Slug) {
		writeJSONError(w, http.StatusBadRequest, "Invalid slug")
		return
	}

	n, err := h.queries.CountTagsByNameOrSlug(r.Context(), req.Name, req.Slug, id)
	if err != nil {
		logAndInternalError(w, "checking tag name", "error", err)
		return
	}
	if n > 0 {
		writeJSONError(w, http.StatusConflict, "Tag already exists")
		return
	}

	if err := h.queries.UpdateTag(r.Context(), store.UpdateTagParams{
		Name: req.Name,
		Slug: req.Slug,
		ID:   id,
	}); err != nil {
		logAndInternalError(w, "updating tag", "error", err, "tag_id", id)
		return
	}

	tag, err := h.queries.GetTagByID(r.Context(), id)
	if err != nil {
		logAndInternalError(w, "loading tag", "error", err, "tag_id", id)
		return
	}
	writeJSONSuccess(w, map[string]any{"tag": tag})
}

// DeleteTag removes a blog tag and its post links.
// DELETE /admin/api/blog/tags/{id}
func (h *BlogTaxonomyHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid tag ID")
		return
	}

	if _, err := h.queries.GetTagByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Tag not found")
			return
		}
		logAndInternalError(w, "loading tag", "error", err, "tag_id", id)
		return
	}

	if err := h.queries.DeleteTag(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting tag", "error", err, "tag_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
