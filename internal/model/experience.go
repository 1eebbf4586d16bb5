// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Employment types.
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentFreelance  = "freelance"
	EmploymentInternship = "internship"
)

// Experience represents a work-experience entry.
type Experience struct {
	ID             int64        `json:"id"`
	Company        string       `json:"company"`
	Role           string       `json:"role"`
	Location       string       `json:"location"`
	EmploymentType string       `json:"employment_type"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        sql.NullTime `json:"end_date,omitempty"`
	IsCurrent      bool         `json:"is_current"`
	Description    string       `json:"description"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	Achievements []Achievement `json:"achievements,omitempty"`
}

// Achievement is a single ordered bullet point on an experience.
type Achievement struct {
	ID           int64  `json:"id"`
	ExperienceID int64  `json:"-"`
	Achievement  string `json:"achievement"`
	OrderIndex   int64  `json:"order_index"`
}

// Education represents an education entry.
type Education struct {
	ID          int64        `json:"id"`
	Institution string       `json:"institution"`
	Degree      string       `json:"degree"`
	Field       string       `json:"field"`
	StartDate   time.Time    `json:"start_date"`
	EndDate     sql.NullTime `json:"end_date,omitempty"`
	Description string       `json:"description"`
	Grade       string       `json:"grade"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
