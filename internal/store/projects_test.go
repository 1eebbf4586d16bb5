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

func createTestProject(t *testing.T, q *store.Queries, title, slug string, featured bool) model.Project {
	t.Helper()
	now := time.Now()
	p, err := q.CreateProject(context.Background(), store.CreateProjectParams{
		Title:       title,
		Slug:        slug,
		Description: "A test project",
		Status:      model.ProjectStatusActive,
		Featured:    featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return p
}

func TestCreateAndGetProject(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	created := createTestProject(t, q, "My Project", "my-project", false)
	assert.NotZero(t, created.ID)

	got, err := q.GetProjectBySlug(context.Background(), "my-project")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "My Project", got.Title)

	_, err = q.GetProjectBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestCountProjectsBySlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	n, err := q.CountProjectsBySlug(context.Background(), "my-project")
	require.NoError(t, err)
	assert.Zero(t, n)

	createTestProject(t, q, "My Project", "my-project", false)

	n, err = q.CountProjectsBySlug(context.Background(), "my-project")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListProjects_Filters(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	createTestProject(t, q, "Plain", "plain", false)
	featured := createTestProject(t, q, "Featured", "featured", true)

	all, err := q.ListProjects(context.Background(), store.ListProjectsParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	// Featured projects sort first.
	assert.Equal(t, featured.ID, all[0].ID)

	onlyFeatured, err := q.ListProjects(context.Background(), store.ListProjectsParams{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, onlyFeatured, 1)
	assert.Equal(t, featured.ID, onlyFeatured[0].ID)
}

func TestReplaceProjectHighlights(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	p := createTestProject(t, q, "My Project", "my-project", false)

	err := q.ReplaceProjectHighlights(context.Background(), p.ID, []string{"first", "second"})
	require.NoError(t, err)

	highlights, err := q.ListProjectHighlights(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, highlights, 2)
	assert.Equal(t, "first", highlights[0].Highlight)
	assert.Equal(t, "second", highlights[1].Highlight)

	// Replacing drops the old set entirely.
	err = q.ReplaceProjectHighlights(context.Background(), p.ID, []string{"only"})
	require.NoError(t, err)

	highlights, err = q.ListProjectHighlights(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, highlights, 1)
	assert.Equal(t, "only", highlights[0].Highlight)
}

func TestSetProjectTechnologies(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	p := createTestProject(t, q, "My Project", "my-project", false)

	goTech, err := q.CreateTechnology(context.Background(), store.CreateTechnologyParams{
		Name: "Go", Category: "language",
	})
	require.NoError(t, err)
	sqlite, err := q.CreateTechnology(context.Background(), store.CreateTechnologyParams{
		Name: "SQLite", Category: "database",
	})
	require.NoError(t, err)

	err = q.SetProjectTechnologies(context.Background(), p.ID, []int64{goTech.ID, sqlite.ID})
	require.NoError(t, err)

	techs, err := q.ListProjectTechnologies(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, techs, 2)
	assert.Equal(t, "Go", techs[0].Name)

	err = q.SetProjectTechnologies(context.Background(), p.ID, []int64{sqlite.ID})
	require.NoError(t, err)

	techs, err = q.ListProjectTechnologies(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, techs, 1)
	assert.Equal(t, "SQLite", techs[0].Name)
}

func TestDeleteProject_CascadesRelations(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	p := createTestProject(t, q, "My Project", "my-project", false)
	require.NoError(t, q.ReplaceProjectHighlights(context.Background(), p.ID, []string{"gone soon"}))

	require.NoError(t, q.DeleteProject(context.Background(), p.ID))

	_, err := q.GetProjectByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	highlights, err := q.ListProjectHighlights(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Empty(t, highlights)
}
