package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"portfolio-go/internal/model"
)

const postColumns = `id, title, slug, excerpt, content, status, author_id,
	published_at, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.Status,
		&p.AuthorID, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// CreatePostParams holds the fields for creating a blog post.
type CreatePostParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Status      string
	AuthorID    sql.NullInt64
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePost inserts a new post and returns the stored record.
func (q *Queries) CreatePost(ctx context.Context, arg CreatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, slug, excerpt, content, status, author_id, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+postColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Status,
		arg.AuthorID, arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPost(row)
}

// GetPostByID returns the post with the given ID.
func (q *Queries) GetPostByID(ctx context.Context, id int64) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	return scanPost(row)
}

// GetPostBySlug returns the post with the given slug.
func (q *Queries) GetPostBySlug(ctx context.Context, slug string) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	return scanPost(row)
}

// CountPostsBySlug returns how many posts use the given slug.
func (q *Queries) CountPostsBySlug(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE slug = ?`, slug).Scan(&n)
	return n, err
}

// ListPostsParams filters post listings. Zero values mean "no filter".
type ListPostsParams struct {
	Status       string
	CategorySlug string
	TagSlug      string
	Limit        int64
}

// ListPosts returns posts newest-first, optionally filtered by status,
// category slug, or tag slug.
func (q *Queries) ListPosts(ctx context.Context, arg ListPostsParams) ([]model.Post, error) {
	var (
		where []string
		args  []any
	)
	if arg.Status != "" {
		where = append(where, "status = ?")
		args = append(args, arg.Status)
	}
	if arg.CategorySlug != "" {
		where = append(where, `id IN (
			SELECT pc.post_id FROM post_categories pc
			JOIN blog_categories c ON c.id = pc.category_id
			WHERE c.slug = ?)`)
		args = append(args, arg.CategorySlug)
	}
	if arg.TagSlug != "" {
		where = append(where, `id IN (
			SELECT pt.post_id FROM post_tags pt
			JOIN blog_tags t ON t.id = pt.tag_id
			WHERE t.slug = ?)`)
		args = append(args, arg.TagSlug)
	}

	query := `SELECT ` + postColumns + ` FROM posts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY COALESCE(published_at, created_at) DESC"
	if arg.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, arg.Limit)
	}

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// UpdatePostParams holds the updatable post fields.
type UpdatePostParams struct {
	Title       string
	Slug        string
	Excerpt     string
	Content     string
	Status      string
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
	ID          int64
}

// UpdatePost updates a post and returns the stored record.
func (q *Queries) UpdatePost(ctx context.Context, arg UpdatePostParams) (model.Post, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE posts SET title = ?, slug = ?, excerpt = ?, content = ?, status = ?,
			published_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+postColumns,
		arg.Title, arg.Slug, arg.Excerpt, arg.Content, arg.Status,
		arg.PublishedAt, arg.UpdatedAt, arg.ID,
	)
	return scanPost(row)
}

// DeletePost removes a post.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}
