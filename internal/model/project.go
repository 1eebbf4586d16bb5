// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Project statuses.
const (
	ProjectStatusActive     = "active"
	ProjectStatusCompleted  = "completed"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusArchived   = "archived"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s string) bool {
	switch s {
	case ProjectStatusActive, ProjectStatusCompleted, ProjectStatusInProgress, ProjectStatusArchived:
		return true
	}
	return false
}

// Project represents a portfolio project.
type Project struct {
	ID            int64        `json:"id"`
	Title         string       `json:"title"`
	Slug          string       `json:"slug"`
	Description   string       `json:"description"`
	DetailedDesc  string       `json:"detailed_description"`
	Thumbnail     string       `json:"thumbnail"`
	GithubURL     string       `json:"github_url"`
	LiveURL       string       `json:"live_url"`
	Status        string       `json:"status"`
	Featured      bool         `json:"featured"`
	OrderIndex    int64        `json:"order_index"`
	StartDate     sql.NullTime `json:"start_date,omitempty"`
	EndDate       sql.NullTime `json:"end_date,omitempty"`
	CreatedBy     sql.NullInt64 `json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Loaded separately; not columns on the projects table.
	Highlights   []ProjectHighlight `json:"highlights,omitempty"`
	Technologies []Technology       `json:"technologies,omitempty"`
	Images       []ProjectImage     `json:"images,omitempty"`
}

// ProjectHighlight is a single ordered bullet point on a project.
type ProjectHighlight struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"-"`
	Highlight  string `json:"highlight"`
	OrderIndex int64  `json:"order_index"`
}

// ProjectImage is an entry in a project's ordered image gallery. Images
// are stored as URLs; the files themselves live elsewhere.
type ProjectImage struct {
	ID         int64  `json:"id"`
	ProjectID  int64  `json:"-"`
	URL        string `json:"url"`
	AltText    string `json:"alt_text,omitempty"`
	OrderIndex int64  `json:"order_index"`
}

// Technology categories.
const (
	TechCategoryBackend  = "backend"
	TechCategoryFrontend = "frontend"
	TechCategoryDatabase = "database"
	TechCategoryDevops   = "devops"
	TechCategoryOther    = "other"
)

// Technology is a tool or language projects can be tagged with.
type Technology struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}
