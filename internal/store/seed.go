package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/model"
)

// Default admin credentials for development seeding.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates initial data in the database: a default admin account and
// a small set of demo portfolio content. Safe to call repeatedly.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		Name:         DefaultAdminName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)

	if err := seedContent(ctx, queries, user.ID, now); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	return nil
}

// seedContent creates demo technologies, a project, skills and an
// experience so a fresh install renders something.
func seedContent(ctx context.Context, queries *Queries, adminID int64, now time.Time) error {
	techs := []CreateTechnologyParams{
		{Name: "Go", Category: model.TechCategoryBackend, Color: "#00ADD8"},
		{Name: "SQLite", Category: model.TechCategoryDatabase, Color: "#003B57"},
		{Name: "TypeScript", Category: model.TechCategoryFrontend, Color: "#3178C6"},
		{Name: "Docker", Category: model.TechCategoryDevops, Color: "#2496ED"},
	}
	var techIDs []int64
	for _, t := range techs {
		created, err := queries.CreateTechnology(ctx, t)
		if err != nil {
			return fmt.Errorf("creating technology %q: %w", t.Name, err)
		}
		techIDs = append(techIDs, created.ID)
	}

	project, err := queries.CreateProject(ctx, CreateProjectParams{
		Title:        "Portfolio Backend",
		Slug:         "portfolio-backend",
		Description:  "The service powering this site: content API, admin panel backend, and analytics.",
		DetailedDesc: "A single-binary Go backend with an embedded SQLite database, JWT admin authentication, and pageview analytics.",
		Status:       model.ProjectStatusActive,
		Featured:     true,
		OrderIndex:   1,
		StartDate:    sql.NullTime{Time: now.AddDate(0, -3, 0), Valid: true},
		CreatedBy:    sql.NullInt64{Int64: adminID, Valid: true},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating demo project: %w", err)
	}

	if err := queries.ReplaceProjectHighlights(ctx, project.ID, []string{
		"Single binary deployment with embedded migrations",
		"Stateless cookie authentication for the admin area",
	}); err != nil {
		return fmt.Errorf("creating demo highlights: %w", err)
	}
	if err := queries.SetProjectTechnologies(ctx, project.ID, techIDs[:2]); err != nil {
		return fmt.Errorf("linking demo technologies: %w", err)
	}

	skills := []CreateSkillParams{
		{Name: "Go", Category: model.SkillCategoryLanguage, Proficiency: 4, Years: 3, OrderIndex: 0, CreatedAt: now, UpdatedAt: now},
		{Name: "SQL", Category: model.SkillCategoryDatabase, Proficiency: 4, Years: 5, OrderIndex: 1, CreatedAt: now, UpdatedAt: now},
	}
	for _, s := range skills {
		if _, err := queries.CreateSkill(ctx, s); err != nil {
			return fmt.Errorf("creating skill %q: %w", s.Name, err)
		}
	}

	if _, err := queries.CreateExperience(ctx, CreateExperienceParams{
		Company:        "Example Labs",
		Role:           "Software Engineer",
		Location:       "Remote",
		EmploymentType: model.EmploymentFullTime,
		StartDate:      now.AddDate(-1, 0, 0),
		IsCurrent:      true,
		Description:    "Building backend services.",
		CreatedAt:      now,
		UpdatedAt:      now,
	}); err != nil {
		return fmt.Errorf("creating demo experience: %w", err)
	}

	slog.Info("seeded demo content")
	return nil
}
