// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Skill categories.
const (
	SkillCategoryLanguage  = "language"
	SkillCategoryFramework = "framework"
	SkillCategoryDatabase  = "database"
	SkillCategoryTool      = "tool"
	SkillCategorySoft      = "soft"
)

// Skill represents a skill entry with a 1-5 proficiency level.
type Skill struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Proficiency int64     `json:"proficiency_level"`
	Years       int64     `json:"years_of_experience"`
	Icon        string    `json:"icon"`
	OrderIndex  int64     `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Testimonial represents a testimonial shown on the public site once approved.
type Testimonial struct {
	ID            int64     `json:"id"`
	AuthorName    string    `json:"author_name"`
	AuthorTitle   string    `json:"author_title"`
	AuthorCompany string    `json:"author_company"`
	Quote         string    `json:"quote"`
	AvatarURL     string    `json:"avatar_url"`
	Approved      bool      `json:"approved"`
	OrderIndex    int64     `json:"order_index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
