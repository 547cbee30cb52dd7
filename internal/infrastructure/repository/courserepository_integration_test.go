package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studia/internal/domain/course"
	"studia/internal/shared/logger"
)

func seedPublishedCourse(t *testing.T, repo course.Repository, authorID uint, title, description string) *course.Course {
	t.Helper()
	c, err := course.NewCourse(authorID, title, description, 1999, "EUR", "https://cdn.test/v.mp4", "https://cdn.test/s.pdf")
	require.NoError(t, err)
	require.NoError(t, c.Publish())
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestCourseRepository_SearchIgnoresAccents(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCourseRepository(db, logger.NewLogger())
	ctx := context.Background()

	brulee := seedPublishedCourse(t, repo, 1, "Crème Brûlée au Chalumeau", "Desserts flambés pour débutants")
	seedPublishedCourse(t, repo, 1, "Sourdough Basics", "Bread from scratch")

	t.Run("unaccented query matches accented title", func(t *testing.T) {
		found, total, err := repo.Search(ctx, course.SearchFilter{Query: "creme brulee"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, brulee.SID(), found[0].SID())
	})

	t.Run("accented query matches the same course", func(t *testing.T) {
		found, total, err := repo.Search(ctx, course.SearchFilter{Query: "CRÈME"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, brulee.SID(), found[0].SID())
	})

	t.Run("description is searchable without accents", func(t *testing.T) {
		found, total, err := repo.Search(ctx, course.SearchFilter{Query: "flambes"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, found, 1)
		assert.Equal(t, brulee.SID(), found[0].SID())
	})

	t.Run("no match returns empty", func(t *testing.T) {
		found, total, err := repo.Search(ctx, course.SearchFilter{Query: "macarons"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, found)
	})
}

func TestCourseRepository_UpdateRefreshesSearchText(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCourseRepository(db, logger.NewLogger())
	ctx := context.Background()

	c := seedPublishedCourse(t, repo, 1, "Crème Brûlée au Chalumeau", "Desserts")
	require.NoError(t, c.UpdateDetails("Pâtisserie Élémentaire", "Desserts", 1999, "https://cdn.test/v.mp4", "https://cdn.test/s.pdf"))
	require.NoError(t, repo.Update(ctx, c))

	found, total, err := repo.Search(ctx, course.SearchFilter{Query: "patisserie elementaire"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, c.SID(), found[0].SID())

	_, total, err = repo.Search(ctx, course.SearchFilter{Query: "creme brulee"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total, "stale search text must not match after rename")
}
