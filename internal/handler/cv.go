// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-go/internal/analytics"
	"portfolio-go/internal/middleware"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
)

// pdfMagic is the file signature every PDF starts with.
var pdfMagic = []byte("%PDF")

// CVHandler handles CV upload, download and removal. Only PDF files are
// accepted and stored under server-generated names.
type CVHandler struct {
	queries    *store.Queries
	uploadsDir string
	maxSize    int64
	tracker    *analytics.Tracker
}

// NewCVHandler creates a new CVHandler.
func NewCVHandler(db *sql.DB, uploadsDir string, maxSize int64, tracker *analytics.Tracker) *CVHandler {
	return &CVHandler{
		queries:    store.New(db),
		uploadsDir: uploadsDir,
		maxSize:    maxSize,
		tracker:    tracker,
	}
}

// Download serves the current CV and records the download.
// GET /api/cv
func (h *CVHandler) Download(w http.ResponseWriter, r *http.Request) {
	owner, err := h.queries.GetFirstUserByRole(r.Context(), model.RoleAdmin)
	if err != nil || owner.CVPath == "" {
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			slog.Error("loading CV owner", "error", err)
		}
		writeJSONError(w, http.StatusNotFound, "CV not available")
		return
	}

	// CVPath is a server-generated filename; joining keeps reads inside
	// the uploads directory.
	filePath := filepath.Join(h.uploadsDir, filepath.Base(owner.CVPath))
	f, err := os.Open(filePath)
	if err != nil {
		slog.Error("opening CV file", "error", err, "path", filePath)
		writeJSONError(w, http.StatusNotFound, "CV not available")
		return
	}
	defer f.Close()

	h.tracker.TrackDownload(r.Context(), r, model.DownloadTypeCV)

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="cv.pdf"`)
	if _, err := io.Copy(w, f); err != nil {
		slog.Error("streaming CV file", "error", err)
	}
}

// Upload replaces the stored CV with an uploaded PDF.
// POST /admin/api/cv
func (h *CVHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxSize+4096)
	if err := r.ParseMultipartForm(h.maxSize); err != nil {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	if header.Size > h.maxSize {
		writeJSONError(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeJSONError(w, http.StatusBadRequest, "Only PDF files are accepted")
		return
	}

	// Content check: extension alone is not trusted.
	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(file, head); err != nil || !bytes.Equal(head, pdfMagic) {
		writeJSONError(w, http.StatusBadRequest, "File is not a valid PDF")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		logAndInternalError(w, "rewinding upload", "error", err)
		return
	}

	if err := os.MkdirAll(h.uploadsDir, 0o750); err != nil {
		logAndInternalError(w, "creating uploads directory", "error", err)
		return
	}

	filename := uuid.NewString() + ".pdf"
	destPath := filepath.Join(h.uploadsDir, filename)
	dest, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		logAndInternalError(w, "creating CV file", "error", err)
		return
	}
	if _, err := io.Copy(dest, file); err != nil {
		_ = dest.Close()
		_ = os.Remove(destPath)
		logAndInternalError(w, "writing CV file", "error", err)
		return
	}
	if err := dest.Close(); err != nil {
		_ = os.Remove(destPath)
		logAndInternalError(w, "closing CV file", "error", err)
		return
	}

	oldPath := user.CVPath
	if err := h.queries.UpdateUserCV(r.Context(), store.UpdateUserCVParams{
		CVPath:    filename,
		UpdatedAt: time.Now(),
		ID:        user.ID,
	}); err != nil {
		_ = os.Remove(destPath)
		logAndInternalError(w, "recording CV path", "error", err, "user_id", user.ID)
		return
	}

	if oldPath != "" && oldPath != filename {
		if err := os.Remove(filepath.Join(h.uploadsDir, filepath.Base(oldPath))); err != nil && !os.IsNotExist(err) {
			slog.Warn("removing previous CV file", "error", err)
		}
	}

	slog.Info("cv uploaded", "user_id", user.ID, "size", header.Size)
	writeJSONSuccess(w, map[string]any{"filename": filename})
}

// Delete removes the stored CV.
// DELETE /admin/api/cv
func (h *CVHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		writeJSONError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if user.CVPath == "" {
		writeJSONError(w, http.StatusNotFound, "No CV on file")
		return
	}

	if err := h.queries.UpdateUserCV(r.Context(), store.UpdateUserCVParams{
		CVPath:    "",
		UpdatedAt: time.Now(),
		ID:        user.ID,
	}); err != nil {
		logAndInternalError(w, "clearing CV path", "error", err, "user_id", user.ID)
		return
	}
	if err := os.Remove(filepath.Join(h.uploadsDir, filepath.Base(user.CVPath))); err != nil && !os.IsNotExist(err) {
		slog.Warn("removing CV file", "error", err)
	}

	slog.Info("cv removed", "user_id", user.ID)
	writeJSONSuccess(w, nil)
}
