// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
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

// PostsHandler handles blog post routes. Public routes only expose
// published posts; the admin surface sees everything.
type PostsHandler struct {
	db      *sql.DB
	queries *store.Queries
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB) *PostsHandler {
	return &PostsHandler{db: db, queries: store.New(db)}
}

// loadTaxonomy attaches categories and tags to a post.
func (h *PostsHandler) loadTaxonomy(r *http.Request, p *model.Post) error {
	categories, err := h.queries.ListPostCategories(r.Context(), p.ID)
	if err != nil {
		return err
	}
	tags, err := h.queries.ListPostTags(r.Context(), p.ID)
	if err != nil {
		return err
	}
	p.Categories = categories
	p.Tags = tags
	return nil
}

// ListPublished returns published posts without rendered bodies.
// GET /api/posts?category={slug}&tag={slug}
func (h *PostsHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context(), store.ListPostsParams{
		Status:       model.PostStatusPublished,
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
	})
	if err != nil {
		logAndInternalError(w, "listing posts", "error", err)
		return
	}
	// Listing responses carry the excerpt only.
	for i := range posts {
		posts[i].Content = ""
		if err := h.loadTaxonomy(r, &posts[i]); err != nil {
			logAndInternalError(w, "loading post taxonomy", "error", err, "post_id", posts[i].ID)
			return
		}
	}
	writeJSONSuccess(w, map[string]any{"posts": posts})
}

// GetPublished returns a published post by slug with its markdown
// rendered to sanitized HTML.
// GET /api/posts/{slug}
func (h *PostsHandler) GetPublished(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPostBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "loading post", "error", err, "slug", slug)
		return
	}
	// Drafts are invisible on the public site, indistinguishable from
	// missing posts.
	if !post.IsPublished() {
		writeJSONError(w, http.StatusNotFound, "Post not found")
		return
	}

	if err := h.loadTaxonomy(r, &post); err != nil {
		logAndInternalError(w, "loading post taxonomy", "error", err, "post_id", post.ID)
		return
	}

	post.HTML = renderMarkdown(post.Content)
	writeJSONSuccess(w, map[string]any{"post": post})
}

// ListAll returns all posts including drafts.
// GET /admin/api/posts
func (h *PostsHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPosts(r.Context(), store.ListPostsParams{
		Status:       r.URL.Query().Get("status"),
		CategorySlug: r.URL.Query().Get("category"),
		TagSlug:      r.URL.Query().Get("tag"),
	})
	if err != nil {
		logAndInternalError(w, "listing posts", "error", err)
		return
	}
	for i := range posts {
		if err := h.loadTaxonomy(r, &posts[i]); err != nil {
			logAndInternalError(w, "loading post taxonomy", "error", err, "post_id", posts[i].ID)
			return
		}
	}
	writeJSONSuccess(w, map[string]any{"posts": posts})
}

type postRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Excerpt     string  `json:"excerpt"`
	Content     string  `json:"content"`
	Status      string  `json:"status"`
	CategoryIDs []int64 `json:"category_ids"`
	TagIDs      []int64 `json:"tag_ids"`
}

func (req *postRequest) validate() string {
	if req.Title == "" {
		return "Title is required"
	}
	if req.Content == "" {
		return "Content is required"
	}
	if req.Status == "" {
		req.Status = model.PostStatusDraft
	}
	if req.Status != model.PostStatusDraft && req.Status != model.PostStatusPublished {
		return "Invalid post status"
	}
	return ""
}

// Create adds a new post. Publishing stamps published_at once; the
// timestamp survives later edits.
// POST /admin/api/posts
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
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
		return h.queries.CountPostsBySlug(r.Context(), req.Slug)
	}); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	var publishedAt sql.NullTime
	if req.Status == model.PostStatusPublished {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}

	var post model.Post
	err := store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		post, err = q.CreatePost(r.Context(), store.CreatePostParams{
			Title:       req.Title,
			Slug:        req.Slug,
			Excerpt:     req.Excerpt,
			Content:     req.Content,
			Status:      req.Status,
			AuthorID:    sql.NullInt64{Int64: middleware.GetUserID(r), Valid: middleware.GetUserID(r) > 0},
			PublishedAt: publishedAt,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return err
		}
		if err := q.SetPostCategories(r.Context(), post.ID, req.CategoryIDs); err != nil {
			return err
		}
		return q.SetPostTags(r.Context(), post.ID, req.TagIDs)
	})
	if err != nil {
		logAndInternalError(w, "creating post", "error", err)
		return
	}
	if err := h.loadTaxonomy(r, &post); err != nil {
		logAndInternalError(w, "loading post taxonomy", "error", err, "post_id", post.ID)
		return
	}
	writeJSONCreated(w, map[string]any{"post": post})
}

// Update modifies an existing post.
// PUT /admin/api/posts/{id}
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	existing, err := h.queries.GetPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "loading post", "error", err, "post_id", id)
		return
	}

	var req postRequest
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
		return h.queries.CountPostsBySlug(r.Context(), req.Slug)
	}); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	publishedAt := existing.PublishedAt
	switch {
	case req.Status == model.PostStatusPublished && !publishedAt.Valid:
		publishedAt = sql.NullTime{Time: now, Valid: true}
	case req.Status == model.PostStatusDraft:
		// Unpublishing clears the timestamp so a later re-publish stamps
		// the new date.
		publishedAt = sql.NullTime{}
	}

	// Post row and taxonomy links change atomically so a bad category or
	// tag ID cannot strip the existing links.
	var post model.Post
	err = store.ExecTx(r.Context(), h.db, func(q *store.Queries) error {
		var err error
		post, err = q.UpdatePost(r.Context(), store.UpdatePostParams{
			Title:       req.Title,
			Slug:        req.Slug,
			Excerpt:     req.Excerpt,
			Content:     req.Content,
			Status:      req.Status,
			PublishedAt: publishedAt,
			UpdatedAt:   now,
			ID:          id,
		})
		if err != nil {
			return err
		}
		if err := q.SetPostCategories(r.Context(), post.ID, req.CategoryIDs); err != nil {
			return err
		}
		return q.SetPostTags(r.Context(), post.ID, req.TagIDs)
	})
	if err != nil {
		logAndInternalError(w, "updating post", "error", err, "post_id", id)
		return
	}
	if err := h.loadTaxonomy(r, &post); err != nil {
		logAndInternalError(w, "loading post taxonomy", "error", err, "post_id", post.ID)
		return
	}
	writeJSONSuccess(w, map[string]any{"post": post})
}

// Delete removes a post.
// DELETE /admin/api/posts/{id}
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	if _, err := h.queries.GetPostByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Post not found")
			return
		}
		logAndInternalError(w, "loading post", "error", err, "post_id", id)
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting post", "error", err, "post_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
