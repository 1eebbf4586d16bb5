package store

import (
	"context"
	"database/sql"
	"time"

	"portfolio-go/internal/model"
)

const userColumns = `id, email, password_hash, role, name, bio, location,
	github_url, linkedin_url, cv_path, is_active, created_at, updated_at, last_login_at`

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Name, &u.Bio, &u.Location,
		&u.GithubURL, &u.LinkedinURL, &u.CVPath, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt,
	)
	return u, err
}

// CreateUserParams holds the fields for creating a user.
type CreateUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateUser inserts a new user and returns the stored record.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, role, name, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING `+userColumns,
		arg.Email, arg.PasswordHash, arg.Role, arg.Name, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanUser(row)
}

// GetUserByID returns the user with the given ID.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// GetUserByEmail returns the user with the given email. Comparison is
// case-insensitive (NOCASE collation on the column).
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

// GetFirstUserByRole returns the oldest user holding the given role.
func (q *Queries) GetFirstUserByRole(ctx context.Context, role string) (model.User, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY id LIMIT 1`, role)
	return scanUser(row)
}

// CountUsersByRole returns how many users hold the given role.
func (q *Queries) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = ?`, role).Scan(&n)
	return n, err
}

// UpdateUserProfileParams holds the updatable profile fields.
type UpdateUserProfileParams struct {
	Name        string
	Bio         string
	Location    string
	GithubURL   string
	LinkedinURL string
	UpdatedAt   time.Time
	ID          int64
}

// UpdateUserProfile updates the public profile fields of a user.
func (q *Queries) UpdateUserProfile(ctx context.Context, arg UpdateUserProfileParams) error {
	_, err := q.db.ExecContext(ctx, `
		UPDATE users SET name = ?, bio = ?, location = ?, github_url = ?, linkedin_url = ?, updated_at = ?
		WHERE id = ?`,
		arg.Name, arg.Bio, arg.Location, arg.GithubURL, arg.LinkedinURL, arg.UpdatedAt, arg.ID,
	)
	return err
}

// UpdateUserPasswordParams holds a password change.
type UpdateUserPasswordParams struct {
	PasswordHash string
	UpdatedAt    time.Time
	ID           int64
}

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, arg UpdateUserPasswordParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		arg.PasswordHash, arg.UpdatedAt, arg.ID,
	)
	return err
}

// UpdateUserLastLoginParams records a successful login time.
type UpdateUserLastLoginParams struct {
	LastLoginAt sql.NullTime
	ID          int64
}

// UpdateUserLastLogin records the last successful login time.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, arg UpdateUserLastLoginParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET last_login_at = ? WHERE id = ?`, arg.LastLoginAt, arg.ID)
	return err
}

// UpdateUserCVParams records the stored CV file path.
type UpdateUserCVParams struct {
	CVPath    string
	UpdatedAt time.Time
	ID        int64
}

// UpdateUserCV updates the stored CV file path for a user.
func (q *Queries) UpdateUserCV(ctx context.Context, arg UpdateUserCVParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE users SET cv_path = ?, updated_at = ? WHERE id = ?`,
		arg.CVPath, arg.UpdatedAt, arg.ID,
	)
	return err
}

// OverwriteUserParams holds the fields for force re-provisioning an
// existing account in place.
type OverwriteUserParams struct {
	Email        string
	PasswordHash string
	Role         string
	Name         string
	IsActive     bool
	UpdatedAt    time.Time
	ID           int64
}

// OverwriteUser replaces the credentials and identity of an existing
// user. Used only by the setup gate's force path.
func (q *Queries) OverwriteUser(ctx context.Context, arg OverwriteUserParams) (model.User, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE users SET email = ?, password_hash = ?, role = ?, name = ?, is_active = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+userColumns,
		arg.Email, arg.PasswordHash, arg.Role, arg.Name, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
	return scanUser(row)
}
