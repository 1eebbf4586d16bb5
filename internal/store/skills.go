package store

import (
	"context"
	"strings"
	"time"

	"portfolio-go/internal/model"
)

const skillColumns = `id, name, category, proficiency, years, icon, order_index, created_at, updated_at`

func scanSkill(row interface{ Scan(...any) error }) (model.Skill, error) {
	var s model.Skill
	err := row.Scan(
		&s.ID, &s.Name, &s.Category, &s.Proficiency, &s.Years, &s.Icon,
		&s.OrderIndex, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// CreateSkillParams holds the fields for creating a skill.
type CreateSkillParams struct {
	Name        string
	Category    string
	Proficiency int64
	Years       int64
	Icon        string
	OrderIndex  int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateSkill inserts a new skill and returns the stored record.
func (q *Queries) CreateSkill(ctx context.Context, arg CreateSkillParams) (model.Skill, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO skills (name, category, proficiency, years, icon, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+skillColumns,
		arg.Name, arg.Category, arg.Proficiency, arg.Years, arg.Icon,
		arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanSkill(row)
}

// GetSkillByID returns the skill with the given ID.
func (q *Queries) GetSkillByID(ctx context.Context, id int64) (model.Skill, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+skillColumns+` FROM skills WHERE id = ?`, id)
	return scanSkill(row)
}

// ListSkillsParams filters skill listings. Zero values mean "no filter".
type ListSkillsParams struct {
	Category string
}

// ListSkills returns skills ordered by category, then order index.
func (q *Queries) ListSkills(ctx context.Context, arg ListSkillsParams) ([]model.Skill, error) {
	var (
		where []string
		args  []any
	)
	if arg.Category != "" {
		where = append(where, "category = ?")
		args = append(args, arg.Category)
	}

	query := `SELECT ` + skillColumns + ` FROM skills`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY category ASC, order_index ASC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []model.Skill
	for rows.Next() {
		s, err := scanSkill(rows)
		if err != nil {
			return nil, err
		}
		skills = append(skills, s)
	}
	return skills, rows.Err()
}

// UpdateSkillParams holds the updatable skill fields.
type UpdateSkillParams struct {
	Name        string
	Category    string
	Proficiency int64
	Years       int64
	Icon        string
	OrderIndex  int64
	UpdatedAt   time.Time
	ID          int64
}

// UpdateSkill updates a skill and returns the stored record.
func (q *Queries) UpdateSkill(ctx context.Context, arg UpdateSkillParams) (model.Skill, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE skills SET name = ?, category = ?, proficiency = ?, years = ?, icon = ?,
			order_index = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+skillColumns,
		arg.Name, arg.Category, arg.Proficiency, arg.Years, arg.Icon,
		arg.OrderIndex, arg.UpdatedAt, arg.ID,
	)
	return scanSkill(row)
}

// DeleteSkill removes a skill.
func (q *Queries) DeleteSkill(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM skills WHERE id = ?`, id)
	return err
}
