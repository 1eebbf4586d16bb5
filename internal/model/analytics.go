// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Download file types.
const (
	DownloadTypeCV        = "cv"
	DownloadTypeResume    = "resume"
	DownloadTypePortfolio = "portfolio"
	DownloadTypeOther     = "other"
)

// ValidDownloadType reports whether t is a known download file type.
func ValidDownloadType(t string) bool {
	switch t {
	case DownloadTypeCV, DownloadTypeResume, DownloadTypePortfolio, DownloadTypeOther:
		return true
	}
	return false
}

// PageView records a single visit to a public page.
type PageView struct {
	ID         int64     `json:"id"`
	PagePath   string    `json:"page_path"`
	Referrer   string    `json:"referrer,omitempty"`
	UserAgent  string    `json:"user_agent,omitempty"`
	Browser    string    `json:"browser,omitempty"`
	OS         string    `json:"os,omitempty"`
	DeviceType string    `json:"device_type,omitempty"`
	Country    string    `json:"country,omitempty"`
	IPAddress  string    `json:"-"`
	VisitorID  string    `json:"visitor_id,omitempty"`
	VisitedAt  time.Time `json:"visited_at"`
}

// Download records a single file download.
type Download struct {
	ID           int64     `json:"id"`
	FileType     string    `json:"file_type"`
	IPAddress    string    `json:"-"`
	UserAgent    string    `json:"user_agent,omitempty"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// Event log levels.
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event log categories.
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategoryUser    = "user"
	EventCategorySystem  = "system"
)

// Event is an audit-log entry persisted to the events table.
type Event struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	UserID    *int64    `json:"user_id,omitempty"`
	Metadata  string    `json:"metadata"`
	CreatedAt time.Time `json:"created_at"`
}
