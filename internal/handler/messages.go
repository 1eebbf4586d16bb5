// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/util"
)

// Contact form field limits.
const (
	maxContactNameLen    = 100
	maxContactSubjectLen = 200
	maxContactMessageLen = 5000
)

// MessagesHandler handles the public contact form and admin message
// triage.
type MessagesHandler struct {
	queries *store.Queries
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(db *sql.DB) *MessagesHandler {
	return &MessagesHandler{queries: store.New(db)}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (req *contactRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" {
		return "Name is required"
	}
	if len(req.Name) > maxContactNameLen {
		return "Name is too long"
	}
	if msg := ValidateEmail(req.Email); msg != "" {
		return msg
	}
	if len(req.Subject) > maxContactSubjectLen {
		return "Subject is too long"
	}
	if req.Message == "" {
		return "Message is required"
	}
	if len(req.Message) > maxContactMessageLen {
		return "Message is too long"
	}
	return ""
}

// Submit accepts a contact form submission from the public site.
// POST /api/contact
func (h *MessagesHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		writeJSONError(w, http.StatusBadRequest, msg)
		return
	}

	now := time.Now()
	message, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		Name:      req.Name,
		Email:     req.Email,
		Subject:   req.Subject,
		Message:   req.Message,
		Status:    model.MessageStatusNew,
		IPAddress: util.ClientIP(r),
		UserAgent: r.UserAgent(),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		logAndInternalError(w, "storing contact message", "error", err)
		return
	}
	writeJSONCreated(w, map[string]any{"id": message.ID})
}

// List returns contact messages for triage, newest first.
// GET /admin/api/messages?status=new
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidMessageStatus(status) {
		writeJSONError(w, http.StatusBadRequest, "Invalid message status")
		return
	}

	messages, err := h.queries.ListMessages(r.Context(), store.ListMessagesParams{Status: status})
	if err != nil {
		logAndInternalError(w, "listing messages", "error", err)
		return
	}

	unread, err := h.queries.CountMessagesByStatus(r.Context(), model.MessageStatusNew)
	if err != nil {
		logAndInternalError(w, "counting unread messages", "error", err)
		return
	}
	writeJSONSuccess(w, map[string]any{"messages": messages, "unread": unread})
}

// Get returns a single message and marks a new message as read.
// GET /admin/api/messages/{id}
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	message, err := h.queries.GetMessageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Message not found")
			return
		}
		logAndInternalError(w, "loading message", "error", err, "message_id", id)
		return
	}

	if message.Status == model.MessageStatusNew {
		if err := h.queries.UpdateMessageStatus(r.Context(), store.UpdateMessageStatusParams{
			Status:    model.MessageStatusRead,
			UpdatedAt: time.Now(),
			ID:        message.ID,
		}); err != nil {
			logAndInternalError(w, "marking message read", "error", err, "message_id", id)
			return
		}
		message.Status = model.MessageStatusRead
	}
	writeJSONSuccess(w, map[string]any{"message": message})
}

type messageStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves a message to a new triage status.
// PUT /admin/api/messages/{id}/status
func (h *MessagesHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	var req messageStatusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !model.ValidMessageStatus(req.Status) {
		writeJSONError(w, http.StatusBadRequest, "Invalid message status")
		return
	}

	message, err := h.queries.GetMessageByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Message not found")
			return
		}
		logAndInternalError(w, "loading message", "error", err, "message_id", id)
		return
	}

	if err := h.queries.UpdateMessageStatus(r.Context(), store.UpdateMessageStatusParams{
		Status:    req.Status,
		UpdatedAt: time.Now(),
		ID:        message.ID,
	}); err != nil {
		logAndInternalError(w, "updating message status", "error", err, "message_id", id)
		return
	}
	message.Status = req.Status
	writeJSONSuccess(w, map[string]any{"message": message})
}

// Delete removes a message.
// DELETE /admin/api/messages/{id}
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if _, err := h.queries.GetMessageByID(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeJSONError(w, http.StatusNotFound, "Message not found")
			return
		}
		logAndInternalError(w, "loading message", "error", err, "message_id", id)
		return
	}

	if err := h.queries.DeleteMessage(r.Context(), id); err != nil {
		logAndInternalError(w, "deleting message", "error", err, "message_id", id)
		return
	}
	writeJSONSuccess(w, nil)
}
