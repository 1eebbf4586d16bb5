package store

import (
	"context"
	"time"

	"portfolio-go/internal/model"
)

const testimonialColumns = `id, author_name, author_title, author_company, quote,
	avatar_url, approved, order_index, created_at, updated_at`

func scanTestimonial(row interface{ Scan(...any) error }) (model.Testimonial, error) {
	var t model.Testimonial
	err := row.Scan(
		&t.ID, &t.AuthorName, &t.AuthorTitle, &t.AuthorCompany, &t.Quote,
		&t.AvatarURL, &t.Approved, &t.OrderIndex, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// CreateTestimonialParams holds the fields for creating a testimonial.
type CreateTestimonialParams struct {
	AuthorName    string
	AuthorTitle   string
	AuthorCompany string
	Quote         string
	AvatarURL     string
	Approved      bool
	OrderIndex    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateTestimonial inserts a new testimonial and returns the stored record.
func (q *Queries) CreateTestimonial(ctx context.Context, arg CreateTestimonialParams) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO testimonials (author_name, author_title, author_company, quote,
			avatar_url, approved, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+testimonialColumns,
		arg.AuthorName, arg.AuthorTitle, arg.AuthorCompany, arg.Quote,
		arg.AvatarURL, arg.Approved, arg.OrderIndex, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanTestimonial(row)
}

// GetTestimonialByID returns the testimonial with the given ID.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+testimonialColumns+` FROM testimonials WHERE id = ?`, id)
	return scanTestimonial(row)
}

// ListTestimonials returns testimonials by order index. When
// approvedOnly is set, unapproved entries are excluded.
func (q *Queries) ListTestimonials(ctx context.Context, approvedOnly bool) ([]model.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`
	if approvedOnly {
		query += ` WHERE approved = 1`
	}
	query += ` ORDER BY order_index ASC, created_at DESC`

	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var testimonials []model.Testimonial
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

// UpdateTestimonialParams holds the updatable testimonial fields.
type UpdateTestimonialParams struct {
	AuthorName    string
	AuthorTitle   string
	AuthorCompany string
	Quote         string
	AvatarURL     string
	Approved      bool
	OrderIndex    int64
	UpdatedAt     time.Time
	ID            int64
}

// UpdateTestimonial updates a testimonial and returns the stored record.
func (q *Queries) UpdateTestimonial(ctx context.Context, arg UpdateTestimonialParams) (model.Testimonial, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE testimonials SET author_name = ?, author_title = ?, author_company = ?,
			quote = ?, avatar_url = ?, approved = ?, order_index = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+testimonialColumns,
		arg.AuthorName, arg.AuthorTitle, arg.AuthorCompany, arg.Quote,
		arg.AvatarURL, arg.Approved, arg.OrderIndex, arg.UpdatedAt, arg.ID,
	)
	return scanTestimonial(row)
}

// DeleteTestimonial removes a testimonial.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = ?`, id)
	return err
}
