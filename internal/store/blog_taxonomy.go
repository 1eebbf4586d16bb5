package store

import (
	"context"

	"portfolio-go/internal/model"
)

// CreateCategoryParams holds the fields for creating a blog category.
type CreateCategoryParams struct {
	Name        string
	Slug        string
	Description string
}

// CreateCategory inserts a new blog category and returns the stored record.
func (q *Queries) CreateCategory(ctx context.Context, arg CreateCategoryParams) (model.BlogCategory, error) {
	var c model.BlogCategory
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_categories (name, slug, description) VALUES (?, ?, ?)
		RETURNING id, name, slug, description`,
		arg.Name, arg.Slug, arg.Description,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	return c, err
}

// GetCategoryByID returns the blog category with the given ID.
func (q *Queries) GetCategoryByID(ctx context.Context, id int64) (model.BlogCategory, error) {
	var c model.BlogCategory
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug, description FROM blog_categories WHERE id = ?`, id,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description)
	return c, err
}

// CountCategoriesByNameOrSlug returns how many categories collide with
// the given name or slug, excluding the given ID (0 excludes nothing).
func (q *Queries) CountCategoriesByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_categories WHERE (name = ? OR slug = ?) AND id != ?`,
		name, slug, excludeID).Scan(&n)
	return n, err
}

// ListCategories returns all blog categories ordered by name with
// their post counts.
func (q *Queries) ListCategories(ctx context.Context) ([]model.BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description, COUNT(pc.post_id)
		FROM blog_categories c
		LEFT JOIN post_categories pc ON pc.category_id = c.id
		GROUP BY c.id ORDER BY c.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.BlogCategory
	for rows.Next() {
		var c model.BlogCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PostCount); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// UpdateCategoryParams holds the updatable category fields.
type UpdateCategoryParams struct {
	Name        string
	Slug        string
	Description string
	ID          int64
}

// UpdateCategory updates a blog category.
func (q *Queries) UpdateCategory(ctx context.Context, arg UpdateCategoryParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE blog_categories SET name = ?, slug = ?, description = ? WHERE id = ?`,
		arg.Name, arg.Slug, arg.Description, arg.ID)
	return err
}

// DeleteCategory removes a blog category and its post links.
func (q *Queries) DeleteCategory(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = ?`, id)
	return err
}

// CreateTagParams holds the fields for creating a blog tag.
type CreateTagParams struct {
	Name string
	Slug string
}

// CreateTag inserts a new blog tag and returns the stored record.
func (q *Queries) CreateTag(ctx context.Context, arg CreateTagParams) (model.BlogTag, error) {
	var t model.BlogTag
	err := q.db.QueryRowContext(ctx, `
		INSERT INTO blog_tags (name, slug) VALUES (?, ?)
		RETURNING id, name, slug`,
		arg.Name, arg.Slug,
	).Scan(&t.ID, &t.Name, &t.Slug)
	return t, err
}

// GetTagByID returns the blog tag with the given ID.
func (q *Queries) GetTagByID(ctx context.Context, id int64) (model.BlogTag, error) {
	var t model.BlogTag
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, slug FROM blog_tags WHERE id = ?`, id,
	).Scan(&t.ID, &t.Name, &t.Slug)
	return t, err
}

// CountTagsByNameOrSlug returns how many tags collide with the given
// name or slug, excluding the given ID (0 excludes nothing).
func (q *Queries) CountTagsByNameOrSlug(ctx context.Context, name, slug string, excludeID int64) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_tags WHERE (name = ? OR slug = ?) AND id != ?`,
		name, slug, excludeID).Scan(&n)
	return n, err
}

// ListTags returns all blog tags by name with their post counts.
func (q *Queries) ListTags(ctx context.Context) ([]model.BlogTag, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug, COUNT(pt.post_id)
		FROM blog_tags t
		LEFT JOIN post_tags pt ON pt.tag_id = t.id
		GROUP BY t.id ORDER BY t.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.BlogTag
	for rows.Next() {
		var t model.BlogTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.PostCount); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// UpdateTagParams holds the updatable tag fields.
type UpdateTagParams struct {
	Name string
	Slug string
	ID   int64
}

// UpdateTag updates a blog tag.
func (q *Queries) UpdateTag(ctx context.Context, arg UpdateTagParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE blog_tags SET name = ?, slug = ? WHERE id = ?`,
		arg.Name, arg.Slug, arg.ID)
	return err
}

// DeleteTag removes a blog tag and its post links.
func (q *Queries) DeleteTag(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM blog_tags WHERE id = ?`, id)
	return err
}

// SetPostCategories replaces the set of categories linked to a post.
func (q *Queries) SetPostCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM post_categories WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, catID := range categoryIDs {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO post_categories (post_id, category_id) VALUES (?, ?)`,
			postID, catID); err != nil {
			return err
		}
	}
	return nil
}

// ListPostCategories returns the categories linked to a post.
func (q *Queries) ListPostCategories(ctx context.Context, postID int64) ([]model.BlogCategory, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.slug, c.description
		FROM blog_categories c
		JOIN post_categories pc ON pc.category_id = c.id
		WHERE pc.post_id = ?
		ORDER BY c.name ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []model.BlogCategory
	for rows.Next() {
		var c model.BlogCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// SetPostTags replaces the set of tags linked to a post.
func (q *Queries) SetPostTags(ctx context.Context, postID int64, tagIDs []int64) error {
	if _, err := q.db.ExecContext(ctx,
		`DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		if _, err := q.db.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)`,
			postID, tagID); err != nil {
			return err
		}
	}
	return nil
}

// ListPostTags returns the tags linked to a post.
func (q *Queries) ListPostTags(ctx context.Context, postID int64) ([]model.BlogTag, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.slug
		FROM blog_tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = ?
		ORDER BY t.name ASC`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []model.BlogTag
	for rows.Next() {
		var t model.BlogTag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
