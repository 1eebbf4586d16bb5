package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func createTestUser(t *testing.T, q *store.Queries, email, role string) model.User {
	t.Helper()
	now := time.Now()
	u, err := q.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: "$argon2id$fake",
		Role:         role,
		Name:         "Test User",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	created := createTestUser(t, q, "admin@example.com", model.RoleAdmin)
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	byID, err := q.GetUserByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, byID.Email)

	byEmail, err := q.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestGetUserByEmail_CaseInsensitive(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	created := createTestUser(t, q, "Admin@Example.com", model.RoleAdmin)

	u, err := q.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	createTestUser(t, q, "admin@example.com", model.RoleAdmin)

	now := time.Now()
	_, err := q.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "ADMIN@example.com",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
		Name:         "Duplicate",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	assert.Error(t, err)
}

func TestCountUsersByRole(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	n, err := q.CountUsersByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, n)

	createTestUser(t, q, "a@example.com", model.RoleAdmin)
	createTestUser(t, q, "b@example.com", model.RoleUser)

	n, err = q.CountUsersByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestGetFirstUserByRole(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	first := createTestUser(t, q, "first@example.com", model.RoleAdmin)
	createTestUser(t, q, "second@example.com", model.RoleAdmin)

	u, err := q.GetFirstUserByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.ID, u.ID)

	_, err = q.GetFirstUserByRole(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestOverwriteUser(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	u := createTestUser(t, q, "old@example.com", model.RoleAdmin)

	updated, err := q.OverwriteUser(context.Background(), store.OverwriteUserParams{
		Email:        "new@example.com",
		PasswordHash: "$argon2id$new",
		Role:         model.RoleAdmin,
		Name:         "New Admin",
		IsActive:     true,
		UpdatedAt:    time.Now(),
		ID:           u.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "$argon2id$new", updated.PasswordHash)

	// Only one account exists afterwards.
	n, err := q.CountUsersByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestUpdateUserProfileAndCV(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	u := createTestUser(t, q, "admin@example.com", model.RoleAdmin)

	err := q.UpdateUserProfile(context.Background(), store.UpdateUserProfileParams{
		Name:        "Jane Dev",
		Bio:         "Backend engineer",
		Location:    "Berlin",
		GithubURL:   "https://github.com/janedev",
		LinkedinURL: "https://linkedin.com/in/janedev",
		UpdatedAt:   time.Now(),
		ID:          u.ID,
	})
	require.NoError(t, err)

	err = q.UpdateUserCV(context.Background(), store.UpdateUserCVParams{
		CVPath:    "abc123.pdf",
		UpdatedAt: time.Now(),
		ID:        u.ID,
	})
	require.NoError(t, err)

	got, err := q.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Dev", got.Name)
	assert.Equal(t, "Berlin", got.Location)
	assert.Equal(t, "abc123.pdf", got.CVPath)
}

func TestUpdateUserLastLogin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	u := createTestUser(t, q, "admin@example.com", model.RoleAdmin)
	assert.False(t, u.LastLoginAt.Valid)

	loginAt := time.Now().Truncate(time.Second)
	err := q.UpdateUserLastLogin(context.Background(), store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: loginAt, Valid: true},
		ID:          u.ID,
	})
	require.NoError(t, err)

	got, err := q.GetUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, got.LastLoginAt.Valid)
}
