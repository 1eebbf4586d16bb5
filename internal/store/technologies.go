package store

import (
	"context"

	"portfolio-go/internal/model"
)

// CreateTechnologyParams holds the fields for creating a technology.
type CreateTechnologyParams struct {
	Name     string
	Category string
	Color    string
}

// CreateTechnology inserts a new technology and returns the stored record.
func (q *Queries) CreateTechnology(ctx context.Context, arg CreateTechnologyParams) (model.Technology, error) {
	var t model.Technology
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO technologies (name, category, color) VALUES (?, ?, ?)
		RETURNING id, name, category, color`,
		arg.Name, arg.Category, arg.Color,
	).Scan(&t.ID, &t.Name, &t.Category, &t.Color)
	return t, err
}

// GetTechnologyByID returns the technology with the given ID.
func (q *Queries) GetTechnologyByID(ctx context.Context, id int64) (model.Technology, error) {
	var t model.Technology
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, category, color FROM technologies WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Category, &t.Color)
	return t, err
}

// GetTechnologyByName returns the technology with the given name.
func (q *Queries) GetTechnologyByName(ctx context.Context, name string) (model.Technology, error) {
	var t model.Technology
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, category, color FROM technologies WHERE name = ?`, name,
	).Scan(&t.ID, &t.Name, &t.Category, &t.Color)
	return t, err
}

// ListTechnologies returns all technologies ordered by category, then name.
func (q *Queries) ListTechnologies(ctx context.Context) ([]model.Technology, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, category, color FROM technologies ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var techs []model.Technology
	for rows.Next() {
		var t model.Technology
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.Color); err != nil {
			return nil, err
		}
		techs = append(techs, t)
	}
	return techs, rows.Err()
}

// UpdateTechnologyParams holds the updatable technology fields.
type UpdateTechnologyParams struct {
	Name     string
	Category string
	Color    string
	ID       int64
}

// UpdateTechnology updates a technology.
func (q *Queries) UpdateTechnology(ctx context.Context, arg UpdateTechnologyParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE technologies SET name = ?, category = ?, color = ? WHERE id = ?`,
		arg.Name, arg.Category, arg.Color, arg.ID)
	return err
}

// DeleteTechnology removes a technology and its project links.
func (q *Queries) DeleteTechnology(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM technologies WHERE id = ?`, id)
	return err
}
