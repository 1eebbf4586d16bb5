package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"portfolio-go/internal/model"
)

const projectColumns = `id, title, slug, description, detailed_description, thumbnail,
	github_url, live_url, status, featured, order_index, start_date, end_date,
	created_by, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (model.Project, error) {
	var p model.Project
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.DetailedDesc, &p.Thumbnail,
		&p.GithubURL, &p.LiveURL, &p.Status, &p.Featured, &p.OrderIndex,
		&p.StartDate, &p.EndDate, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreateProjectParams holds the fields for creating a project.
type CreateProjectParams struct {
	Title        string
	Slug         string
	Description  string
	DetailedDesc string
	Thumbnail    string
	GithubURL    string
	LiveURL      string
	Status       string
	Featured     bool
	OrderIndex   int64
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	CreatedBy    sql.NullInt64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateProject inserts a new project and returns the stored record.
func (q *Queries) CreateProject(ctx context.Context, arg CreateProjectParams) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO projects (title, slug, description, detailed_description, thumbnail,
			github_url, live_url, status, featured, order_index, start_date, end_date,
			created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+projectColumns,
		arg.Title, arg.Slug, arg.Description, arg.DetailedDesc, arg.Thumbnail,
		arg.GithubURL, arg.LiveURL, arg.Status, arg.Featured, arg.OrderIndex,
		arg.StartDate, arg.EndDate, arg.CreatedBy, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanProject(row)
}

// GetProjectByID returns the project with the given ID.
func (q *Queries) GetProjectByID(ctx context.Context, id int64) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	return scanProject(row)
}

// GetProjectBySlug returns the project with the given slug.
func (q *Queries) GetProjectBySlug(ctx context.Context, slug string) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE slug = ?`, slug)
	return scanProject(row)
}

// CountProjectsBySlug returns how many projects use the given slug.
func (q *Queries) CountProjectsBySlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// ListProjectsParams filters project listings. Zero values mean "no filter".
type ListProjectsParams struct {
	FeaturedOnly bool
	Status       string
	Limit        int64
}

// ListProjects returns projects ordered featured-first, then by order
// index, then newest-first, optionally filtered.
func (q *Queries) ListProjects(ctx context.Context, arg ListProjectsParams) ([]model.Project, error) {
	var (
		where []string
		args  []any
	)
	if arg.FeaturedOnly {
		where = append(where, "featured = 1")
	}
	if arg.Status != "" {
		where = append(where, "status = ?")
		args = append(args, arg.Status)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY featured DESC, order_index ASC, created_at DESC"
	if arg.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, arg.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProjectParams holds the updatable project fields.
type UpdateProjectParams struct {
	Title        string
	Slug         string
	Description  string
	DetailedDesc string
	Thumbnail    string
	GithubURL    string
	LiveURL      string
	Status       string
	Featured     bool
	OrderIndex   int64
	StartDate    sql.NullTime
	EndDate      sql.NullTime
	UpdatedAt    time.Time
	ID           int64
}

// UpdateProject updates a project and returns the stored record.
func (q *Queries) UpdateProject(ctx context.Context, arg UpdateProjectParams) (model.Project, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE projects SET title = ?, slug = ?, description = ?, detailed_description = ?,
			thumbnail = ?, github_url = ?, live_url = ?, status = ?, featured = ?,
			order_index = ?, start_date = ?, end_date = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+projectColumns,
		arg.Title, arg.Slug, arg.Description, arg.DetailedDesc, arg.Thumbnail,
		arg.GithubURL, arg.LiveURL, arg.Status, arg.Featured, arg.OrderIndex,
		arg.StartDate, arg.EndDate, arg.UpdatedAt, arg.ID,
	)
	return scanProject(row)
}

// DeleteProject removes a project. Highlights, technology links and
// gallery images cascade away with it.
func (q *Queries) DeleteProject(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	return err
}

// ReplaceProjectHighlights replaces all highlights of a project with the
// given ordered list.
func (q *Queries) ReplaceProjectHighlights(ctx context.Context, projectID int64, highlights []string) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM project_highlights WHERE project_id = ?`, projectID); err != nil {
		return err
	}
	for i, h := range highlights {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO project_highlights (project_id, highlight, order_index) VALUES (?, ?, ?)`,
			projectID, h, i); err != nil {
			return err
		}
	}
	return nil
}

// ListProjectHighlights returns a project's highlights in order.
func (q *Queries) ListProjectHighlights(ctx context.Context, projectID int64) ([]model.ProjectHighlight, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, project_id, highlight, order_index
		FROM project_highlights WHERE project_id = ? ORDER BY order_index ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var highlights []model.ProjectHighlight
	for rows.Next() {
		var h model.ProjectHighlight
		if err := rows.Scan(&h.ID, &h.ProjectID, &h.Highlight, &h.OrderIndex); err != nil {
			return nil, err
		}
		highlights = append(highlights, h)
	}
	return highlights, rows.Err()
}

// ProjectImageParams is one gallery entry in a replace operation.
type ProjectImageParams struct {
	URL     string
	AltText string
}

// ReplaceProjectImages replaces a project's image gallery with the
// given ordered list.
func (q *Queries) ReplaceProjectImages(ctx context.Context, projectID int64, images []ProjectImageParams) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM project_images WHERE project_id = ?`, projectID); err != nil {
		return err
	}
	for i, img := range images {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO project_images (project_id, url, alt_text, order_index) VALUES (?, ?, ?, ?)`,
			projectID, img.URL, img.AltText, i); err != nil {
			return err
		}
	}
	return nil
}

// ListProjectImages returns a project's image gallery in order.
func (q *Queries) ListProjectImages(ctx context.Context, projectID int64) ([]model.ProjectImage, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, project_id, url, alt_text, order_index
		FROM project_images WHERE project_id = ? ORDER BY order_index ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []model.ProjectImage
	for rows.Next() {
		var img model.ProjectImage
		if err := rows.Scan(&img.ID, &img.ProjectID, &img.URL, &img.AltText, &img.OrderIndex); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// SetProjectTechnologies replaces the set of technologies linked to a project.
func (q *Queries) SetProjectTechnologies(ctx context.Context, projectID int64, technologyIDs []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM project_technologies WHERE project_id = ?`, projectID); err != nil {
		return err
	}
	for _, techID := range technologyIDs {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO project_technologies (project_id, technology_id) VALUES (?, ?)`,
			projectID, techID); err != nil {
			return err
		}
	}
	return nil
}

// ListProjectTechnologies returns the technologies linked to a project.
func (q *Queries) ListProjectTechnologies(ctx context.Context, projectID int64) ([]model.Technology, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.category, t.color
		FROM technologies t
		JOIN project_technologies pt ON pt.technology_id = t.id
		WHERE pt.project_id = ?
		ORDER BY t.name ASC`, projectID)
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
