// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Post statuses.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

// Post represents a blog post. Content is stored as markdown; the
// rendered, sanitized HTML is produced at read time.
type Post struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Slug        string       `json:"slug"`
	Excerpt     string       `json:"excerpt"`
	Content     string       `json:"content"`
	HTML        string       `json:"html,omitempty"`
	Status      string       `json:"status"`
	AuthorID    sql.NullInt64 `json:"-"`
	PublishedAt sql.NullTime `json:"published_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Loaded separately; not columns on the posts table.
	Categories []BlogCategory `json:"categories,omitempty"`
	Tags       []BlogTag      `json:"tags,omitempty"`
}

// BlogCategory groups posts by topic. PostCount is filled on listings.
type BlogCategory struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	PostCount   int64  `json:"post_count,omitempty"`
}

// BlogTag is a free-form label posts can carry.
type BlogTag struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int64  `json:"post_count,omitempty"`
}

// IsPublished returns true if the post is visible on the public site.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
