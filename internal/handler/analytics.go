// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"
	"time"

	"portfolio-go/internal/analytics"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// AnalyticsHandler handles visit tracking and the admin stats dashboard.
type AnalyticsHandler struct {
	queries *store.Queries
	tracker *analytics.Tracker
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(db *sql.DB, tracker *analytics.Tracker) *AnalyticsHandler {
	return &AnalyticsHandler{queries: store.New(db), tracker: tracker}
}

type trackRequest struct {
	Path string `json:"path"`
}

// Track records a page view reported by the public frontend. The
// response never exposes whether the view was actually stored.
// POST /api/analytics/track
func (h *AnalyticsHandler) Track(w http.ResponseWriter, r *http.Request) {
	var req trackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" || !strings.HasPrefix(req.Path, "/") || len(req.Path) > 512 {
		writeJSONError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	h.tracker.TrackPageView(r.Context(), r, req.Path)
	writeJSONSuccess(w, nil)
}

type downloadRequest struct {
	FileType string `json:"file_type"`
}

// TrackDownload records a file download reported by the public
// frontend, for files served outside this backend.
// POST /api/analytics/download
func (h *AnalyticsHandler) TrackDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	req.FileType = strings.ToLower(strings.TrimSpace(req.FileType))
	if !model.ValidDownloadType(req.FileType) {
		writeJSONError(w, http.StatusBadRequest, "Invalid file type")
		return
	}

	h.tracker.TrackDownload(r.Context(), r, req.FileType)
	writeJSONSuccess(w, nil)
}

// Stats returns the aggregated analytics dashboard.
// GET /admin/api/stats?days=30
func (h *AnalyticsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	days := 30
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 365 {
			writeJSONError(w, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}
	since := time.Now().AddDate(0, 0, -days)

	ctx := r.Context()

	totalViews, err := h.queries.CountPageViews(ctx)
	if err != nil {
		logAndInternalError(w, "counting page views", "error", err)
		return
	}
	totalDownloads, err := h.queries.CountDownloads(ctx)
	if err != nil {
		logAndInternalError(w, "counting downloads", "error", err)
		return
	}
	topPages, err := h.queries.TopPages(ctx, 10)
	if err != nil {
		logAndInternalError(w, "loading top pages", "error", err)
		return
	}
	perDay, err := h.queries.PageViewsPerDay(ctx, since)
	if err != nil {
		logAndInternalError(w, "loading daily views", "error", err)
		return
	}
	byBrowser, err := h.queries.PageViewsByBrowser(ctx)
	if err != nil {
		logAndInternalError(w, "loading browser stats", "error", err)
		return
	}
	byDevice, err := h.queries.PageViewsByDevice(ctx)
	if err != nil {
		logAndInternalError(w, "loading device stats", "error", err)
		return
	}
	byCountry, err := h.queries.PageViewsByCountry(ctx)
	if err != nil {
		logAndInternalError(w, "loading country stats", "error", err)
		return
	}
	downloadsByType, err := h.queries.DownloadsByType(ctx)
	if err != nil {
		logAndInternalError(w, "loading download stats", "error", err)
		return
	}
	recent, err := h.queries.RecentPageViews(ctx, 20)
	if err != nil {
		logAndInternalError(w, "loading recent views", "error", err)
		return
	}

	writeJSONSuccess(w, map[string]any{
		"totals": map[string]any{
			"page_views": totalViews,
			"downloads":  totalDownloads,
		},
		"top_pages":         topPages,
		"views_per_day":     perDay,
		"views_by_browser":  byBrowser,
		"views_by_device":   byDevice,
		"views_by_country":  byCountry,
		"downloads_by_type": downloadsByType,
		"recent_views":      recent,
		"days":              days,
	})
}

// Events returns the most recent audit-log entries.
// GET /admin/api/events?limit=50
func (h *AnalyticsHandler) Events(w http.ResponseWriter, r *http.Request) {
	limit := int64(50)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 || n > 500 {
			writeJSONError(w, http.StatusBadRequest, "limit must be between 1 and 500")
			return
		}
		limit = n
	}

	events, err := h.queries.ListEvents(r.Context(), limit)
	if err != nil {
		logAndInternalError(w, "listing events", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"events": events})
}
