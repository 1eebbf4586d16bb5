package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func TestSeed(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	require.NoError(t, store.Seed(context.Background(), db))

	admin, err := q.GetUserByEmail(context.Background(), store.DefaultAdminEmail)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)

	techs, err := q.ListTechnologies(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, techs)

	projects, err := q.ListProjects(context.Background(), store.ListProjectsParams{})
	require.NoError(t, err)
	assert.NotEmpty(t, projects)
}

func TestSeed_Idempotent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	require.NoError(t, store.Seed(context.Background(), db))
	require.NoError(t, store.Seed(context.Background(), db))

	n, err := q.CountUsersByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	projects, err := q.ListProjects(context.Background(), store.ListProjectsParams{})
	require.NoError(t, err)
	assert.Len(t, projects, 1)
}
