package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func createTestPost(t *testing.T, q *store.Queries, title, slug string) model.Post {
	t.Helper()
	now := time.Now()
	p, err := q.CreatePost(context.Background(), store.CreatePostParams{
		Title:     title,
		Slug:      slug,
		Content:   "body",
		Status:    model.PostStatusDraft,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return p
}

func TestListCategories_PostCounts(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	popular, err := q.CreateCategory(context.Background(), store.CreateCategoryParams{
		Name: "Articles", Slug: "articles",
	})
	require.NoError(t, err)
	_, err = q.CreateCategory(context.Background(), store.CreateCategoryParams{
		Name: "Empty", Slug: "empty",
	})
	require.NoError(t, err)

	post := createTestPost(t, q, "One", "one")
	require.NoError(t, q.SetPostCategories(context.Background(), post.ID, []int64{popular.ID}))

	categories, err := q.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Articles", categories[0].Name)
	assert.Equal(t, int64(1), categories[0].PostCount)
	assert.Equal(t, int64(0), categories[1].PostCount)
}

func TestSetPostTags_Replaces(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	first, err := q.CreateTag(context.Background(), store.CreateTagParams{Name: "a", Slug: "a"})
	require.NoError(t, err)
	second, err := q.CreateTag(context.Background(), store.CreateTagParams{Name: "b", Slug: "b"})
	require.NoError(t, err)

	post := createTestPost(t, q, "Tagged", "tagged")
	require.NoError(t, q.SetPostTags(context.Background(), post.ID, []int64{first.ID}))
	require.NoError(t, q.SetPostTags(context.Background(), post.ID, []int64{second.ID}))

	tags, err := q.ListPostTags(context.Background(), post.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "b", tags[0].Name)
}

func TestCountTagsByNameOrSlug_ExcludesSelf(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	tag, err := q.CreateTag(context.Background(), store.CreateTagParams{Name: "go", Slug: "go"})
	require.NoError(t, err)

	// Renaming a tag to its own current name is not a collision.
	n, err := q.CountTagsByNameOrSlug(context.Background(), "go", "go", tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = q.CountTagsByNameOrSlug(context.Background(), "go", "go", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestDeleteCategory_CascadesLinks(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	category, err := q.CreateCategory(context.Background(), store.CreateCategoryParams{
		Name: "Doomed", Slug: "doomed",
	})
	require.NoError(t, err)

	post := createTestPost(t, q, "Survivor", "survivor")
	require.NoError(t, q.SetPostCategories(context.Background(), post.ID, []int64{category.ID}))

	require.NoError(t, q.DeleteCategory(context.Background(), category.ID))

	linked, err := q.ListPostCategories(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, linked)

	// The post itself is untouched.
	_, err = q.GetPostByID(context.Background(), post.ID)
	assert.NoError(t, err)
}
