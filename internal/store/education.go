package store

import (
	"context"
	"database/sql"
	"time"

	"portfolio-go/internal/model"
)

const educationColumns = `id, institution, degree, field, start_date, end_date,
	description, grade, created_at, updated_at`

func scanEducation(row interface{ Scan(...any) error }) (model.Education, error) {
	var e model.Education
	err := row.Scan(
		&e.ID, &e.Institution, &e.Degree, &e.Field, &e.StartDate, &e.EndDate,
		&e.Description, &e.Grade, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

// CreateEducationParams holds the fields for creating an education entry.
type CreateEducationParams struct {
	Institution string
	Degree      string
	Field       string
	StartDate   time.Time
	EndDate     sql.NullTime
	Description string
	Grade       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateEducation inserts a new education entry and returns the stored record.
func (q *Queries) CreateEducation(ctx context.Context, arg CreateEducationParams) (model.Education, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO education (institution, degree, field, start_date, end_date,
			description, grade, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+educationColumns,
		arg.Institution, arg.Degree, arg.Field, arg.StartDate, arg.EndDate,
		arg.Description, arg.Grade, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanEducation(row)
}

// GetEducationByID returns the education entry with the given ID.
func (q *Queries) GetEducationByID(ctx context.Context, id int64) (model.Education, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+educationColumns+` FROM education WHERE id = ?`, id)
	return scanEducation(row)
}

// ListEducation returns education entries, newest start date first.
func (q *Queries) ListEducation(ctx context.Context) ([]model.Education, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+educationColumns+` FROM education ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []model.Education
	for rows.Next() {
		e, err := scanEducation(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UpdateEducationParams holds the updatable education fields.
type UpdateEducationParams struct {
	Institution string
	Degree      string
	Field       string
	StartDate   time.Time
	EndDate     sql.NullTime
	Description string
	Grade       string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateEducation updates an education entry and returns the stored record.
func (q *Queries) UpdateEducation(ctx context.Context, arg UpdateEducationParams) (model.Education, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE education SET institution = ?, degree = ?, field = ?, start_date = ?,
			end_date = ?, description = ?, grade = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+educationColumns,
		arg.Institution, arg.Degree, arg.Field, arg.StartDate, arg.EndDate,
		arg.Description, arg.Grade, arg.UpdatedAt, arg.ID,
	)
	return scanEducation(row)
}

// DeleteEducation removes an education entry.
func (q *Queries) DeleteEducation(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM education WHERE id = ?`, id)
	return err
}
