// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"portfolio-go/internal/middleware"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// ProjectsHandler handles portfolio project routes.
type ProjectsHandler struct {
	db      *sql.DB
	queries *store.Queries
}

// NewProjectsHandler creates a new ProjectsHandler.
func NewProjectsHandler(db *sql.DB) *ProjectsHandler {
	return &ProjectsHandler{db: db, queries: store.New(db)}
}

// loadRelations attaches highlights, technologies and gallery images to
// a project.
func (h *ProjectsHandler) loadRelations(r *http.Request, p *model.Project) error {
	highlights, err := h.queries.ListProjectHighlights(r.Context(), p.ID)
	if err != nil {
		return err
	}
	techs, err := h.queries.ListProjectTechnologies(r.Context(), p.ID)
	if err != nil {
		return err
	}
	images, err := h.queries.ListProjectImages(r.Context(), p.ID)
	if err != nil {
		return err
	}
	p.Highlights = highlights
	p.Technologies = techs
	p.Images = images
	return nil
}

// List returns projects, optionally filtered.
// GET /api/projects?featured=true&status=active
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	params := store.ListProjectsParams{
		FeaturedOnly: r.URL.Query().Get("featured") == "true",
		Status:       r.URL.Query().Get("status"),
	}
	if params.Status != "" && !model.ValidProjectStatus(params.Status) {
		writeJSONError(w, http.StatusBadRequest, "Invalid project status")
		return
	}

	projects, err := h.queries.ListProjects(r.Context(), params)
	if err != nil {
		logAndInternalError(w, "listing projects", "error", err)
		return
	}
	for i := range projects {
		if err := h.loadRelations(r, &projects[i]); err != nil {
			logAndInternalError(w, "loading project relations", "error", err, "project_id", projects[i].ID)
			return
		}
	}
	writeJSONSuccess(w, map[string]any{"projects": projects})
}

// Get returns a single project by slug.
// GET /api/projects/{slug}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	project, err := h.queries.GetProjectBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		logAndInternalError(w, "loading project", "error", err, "slug", slug)
		return
	}
	if err := h.loadRelations(r, &project); err != nil {
		logAndInternalError(w, "loading project relations", "error", err, "project_id", project.ID)
		return
	}
	writeJSONSuccess(w, map[string]any{"project": project})
}

type projectRequest struct {
	Title         string                `json:"title"`
	Slug          string                `json:"slug"`
	Description   string                `json:"description"`
	DetailedDesc  string                `json:"detailed_description"`
	Thumbnail     string                `json:"thumbnail"`
	GithubURL     string                `json:"github_url"`
	LiveURL       string                `json:"live_url"`
	Status        string                `json:"status"`
	Featured      bool                  `json:"featured"`
	OrderIndex    int64                 `json:"order_index"`
	StartDate     *string               `json:"start_date"` // YYYY-MM-DD
	EndDate       *string               `json:"end_date"`
	Highlights    []string              `json:"highlights"`
	TechnologyIDs []int64               `json:"technology_ids"`
	Images        []projectImageRequest `json:"images"`
}

type projectImageRequest struct {
	URL     string `json:"url"`
	AltText string `json:"alt_text"`
}

func (req *projectRequest) validate() string {
	if req.Title == "" {
		return "Title is required"
	}
	if req.Description == "" {
		return "Description is required"
	}
	if req.Status == "" {
		req.Status = model.ProjectStatusActive
	}
	if !model.ValidProjectStatus(req.Status) {
		return "Invalid project status"
	}
	return ""
}

// parseDate parses an optional YYYY-MM-DD value.
func parseDate(s *string) (sql.NullTime, error) {
	if s == nil || *s == "" {
		return sql.NullTime{}, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t, Valid: true}, nil
}

// Create adds a new project.
// POST /admin/api/projects
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if msg := ValidateSlugWithChecker(req.Slug, func() (int64, error) {
		return h.queries.CountProjectsBySlug(r.Context(), req.Slug)
	}); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)")
		return
	}

	// The project row and its replaced relations land atomically, so a
	// bad technology ID cannot leave a half-written project behind.
	now := time.Now()
	var project model.Project
	err = store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		project, err = q.CreateProject(r.Context(), store.CreateProjectParams{
			Title:        req.Title,
			Slug:         req.Slug,
			Description:  req.Description,
			DetailedDesc: req.DetailedDesc,
			Thumbnail:    req.Thumbnail,
			GithubURL:    req.GithubURL,
			LiveURL:      req.LiveURL,
			Status:       req.Status,
			Featured:     req.Featured,
			OrderIndex:   req.OrderIndex,
			StartDate:    startDate,
			EndDate:      endDate,
			CreatedBy:    sql.NullInt64{Int64: middleware.GetUserID(r), Valid: middleware.GetUserID(r) > 0},
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return err
		}
		return saveProjectRelations(r.Context(), q, project.ID, req)
	})
	if err != nil {
		logAndInternalError(w, "creating project", "error", err)
		return
	}

	if err := h.loadRelations(r, &project); err != nil {
		logAndInternalError(w, "loading project relations", "error", err, "project_id", project.ID)
		return
	}
	writeJSONCreated(w, map[string]any{"project": project})
}

// Update modifies an existing project.
// PUT /admin/api/projects/{id}
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	existing, err := h.queries.GetProjectByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		logAndInternalError(w, "loading project", "error", err, "project_id", id)
		return
	}

	var req projectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	if req.Slug == "" {
		req.Slug = existing.Slug
	}
	if msg := ValidateSlugForUpdate(req.Slug, existing.Slug, func() (int64, error) {
		return h.queries.CountProjectsBySlug(r.Context(), req.Slug)
	}); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid start_date (expected YYYY-MM-DD)")
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid end_date (expected YYYY-MM-DD)")
		return
	}

	// Update and relation replacement share a transaction; a failed
	// replace rolls everything back instead of wiping the old relations.
	var project model.Project
	err = store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		project, err = q.UpdateProject(r.Context(), store.UpdateProjectParams{
			Title:        req.Title,
			Slug:         req.Slug,
			Description:  req.Description,
			DetailedDesc: req.DetailedDesc,
			Thumbnail:    req.Thumbnail,
			GithubURL:    req.GithubURL,
			LiveURL:      req.LiveURL,
			Status:       req.Status,
			Featured:     req.Featured,
			OrderIndex:   req.OrderIndex,
			StartDate:    startDate,
			EndDate:      endDate,
			UpdatedAt:    time.Now(),
			ID:           id,
		})
		if err != nil {
			return err
		}
		return saveProjectRelations(r.Context(), q, project.ID, req)
	})
	if err != nil {
		logAndInternalError(w, "updating project", "error", err, "project_id", id)
		return
	}

	if err := h.loadRelations(r, &project); err != nil {
		logAndInternalError(w, "loading project relations", "error", err, "project_id", project.ID)
		return
	}
	writeJSONSuccess(w, map[string]any{"project": project})
}

// Delete removes a project.
// DELETE /admin/api/projects/{id}
func (h *ProjectsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if _, err := h.queries.GetProjectByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Project not found")
			return
		}
		logAndInternalError(w, "loading project", "error", err, "project_id", id)
		return
	}

	if err := h.queries.DeleteProject(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting project", "error", err, "project_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}

// saveProjectRelations replaces a project's highlights, technology
// links and gallery images. Runs inside the caller's transaction.
func saveProjectRelations(ctx context.Context, q *store.Queries, projectID int64, req projectRequest) error {
	if err := q.ReplaceProjectHighlights(ctx, projectID, req.Highlights); err != nil {
		return err
	}
	if err := q.SetProjectTechnologies(ctx, projectID, req.TechnologyIDs); err != nil {
		return err
	}
	images := make([]store.ProjectImageParams, 0, len(req.Images))
	for _, img := range req.Images {
		images = append(images, store.ProjectImageParams{URL: img.URL, AltText: img.AltText})
	}
	return q.ReplaceProjectImages(ctx, projectID, images)
}
