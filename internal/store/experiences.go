package store

import (
	"context"
	"database/sql"
	"time"

	"portfolio-go/internal/model"
)

const experienceColumns = `id, company, role, location, employment_type, start_date,
	end_date, is_current, description, created_at, updated_at`

func scanExperience(row interface{ Scan(...any) error }) (model.Experience, error) {
	var e model.Experience
	err := row.Scan(
		&e.ID, &e.Company, &e.Role, &e.Location, &e.EmploymentType,
		&e.StartDate, &e.EndDate, &e.IsCurrent, &e.Description,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateExperienceParams holds the fields for creating a work experience.
type CreateExperienceParams struct {
	Company        string
	Role           string
	Location       string
	EmploymentType string
	StartDate      time.Time
	EndDate        sql.NullTime
	IsCurrent      bool
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateExperience inserts a new experience and returns the stored record.
func (q *Queries) CreateExperience(ctx context.Context, arg CreateExperienceParams) (model.Experience, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO experiences (company, role, location, employment_type, start_date,
			end_date, is_current, description, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+experienceColumns,
		arg.Company, arg.Role, arg.Location, arg.EmploymentType, arg.StartDate,
		arg.EndDate, arg.IsCurrent, arg.Description, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanExperience(row)
}

// GetExperienceByID returns the experience with the given ID.
func (q *Queries) GetExperienceByID(ctx context.Context, id int64) (model.Experience, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+experienceColumns+` FROM experiences WHERE id = ?`, id)
	return scanExperience(row)
}

// ListExperiences returns experiences with current roles first, then
// newest start date first.
func (q *Queries) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+experienceColumns+` FROM experiences ORDER BY is_current DESC, start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var experiences []model.Experience
	for rows.Next() {
		e, err := scanExperience(rows)
		if err != nil {
			return nil, err
		}
		experiences = append(experiences, e)
	}
	return experiences, rows.Err()
}

// UpdateExperienceParams holds the updatable experience fields.
type UpdateExperienceParams struct {
	Company        string
	Role           string
	Location       string
	EmploymentType string
	StartDate      time.Time
	EndDate        sql.NullTime
	IsCurrent      bool
	Description    string
	UpdatedAt      time.Time
	ID             int64
}

// UpdateExperience updates an experience and returns the stored record.
func (q *Queries) UpdateExperience(ctx context.Context, arg UpdateExperienceParams) (model.Experience, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE experiences SET company = ?, role = ?, location = ?, employment_type = ?,
			start_date = ?, end_date = ?, is_current = ?, description = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+experienceColumns,
		arg.Company, arg.Role, arg.Location, arg.EmploymentType,
		arg.StartDate, arg.EndDate, arg.IsCurrent, arg.Description, arg.UpdatedAt, arg.ID,
	)
	return scanExperience(row)
}

// DeleteExperience removes an experience. Achievements cascade away with it.
func (q *Queries) DeleteExperience(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM experiences WHERE id = ?`, id)
	return err
}

// ReplaceExperienceAchievements replaces all achievements of an
// experience with the given ordered list.
func (q *Queries) ReplaceExperienceAchievements(ctx context.Context, experienceID int64, achievements []string) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM experience_achievements WHERE experience_id = ?`, experienceID); err != nil {
		return err
	}
	for i, a := range achievements {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO experience_achievements (experience_id, achievement, order_index) VALUES (?, ?, ?)`,
			experienceID, a, i); err != nil {
			return err
		}
	}
	return nil
}

// ListExperienceAchievements returns an experience's achievements in order.
func (q *Queries) ListExperienceAchievements(ctx context.Context, experienceID int64) ([]model.Achievement, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, experience_id, achievement, order_index
		FROM experience_achievements WHERE experience_id = ? ORDER BY order_index ASC`, experienceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var achievements []model.Achievement
	for rows.Next() {
		var a model.Achievement
		if err := rows.Scan(&a.ID, &a.ExperienceID, &a.Achievement, &a.OrderIndex); err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}
