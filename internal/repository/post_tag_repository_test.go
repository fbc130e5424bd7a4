package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogcms/internal/apperrors"
)

func TestPostTagRepository_ReplaceTags(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces links with de-duplicated ids in order", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		mock.ExpectExec(`DELETE FROM post_tags WHERE post_id = \$1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`INSERT INTO post_tags \(post_id, tag_id\) VALUES \(\$1, \$2\), \(\$1, \$3\)$`).
			WithArgs(int64(10), int64(2), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.ReplaceTags(ctx, 10, []int64{2, 1, 2})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set only clears", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		mock.ExpectExec(`DELETE FROM post_tags WHERE post_id = \$1`).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.ReplaceTags(ctx, 10, []int64{})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown tag is a validation error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		mock.ExpectExec(`DELETE FROM post_tags`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO post_tags`).
			WithArgs(int64(10), int64(99)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "post_tags_tag_id_fkey"})

		err := repo.ReplaceTags(ctx, 10, []int64{99})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("delete failure", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		mock.ExpectExec(`DELETE FROM post_tags`).WillReturnError(errors.New("broken pipe"))

		err := repo.ReplaceTags(ctx, 10, []int64{1})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to clear post tags")
	})
}

func TestPostTagRepository_TagsFor(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostTagRepository(db)

	mock.ExpectQuery(`FROM post_tags pt INNER JOIN tags t ON t.id = pt.tag_id WHERE pt.post_id = \$1 ORDER BY pt.created_at, t.id`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(tagColumns).
			AddRow(3, "zeta", fixedNow, fixedNow).
			AddRow(1, "alpha", fixedNow, fixedNow))

	tags, err := repo.TagsFor(context.Background(), 4)

	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "zeta", tags[0].Name)
	assert.Equal(t, "alpha", tags[1].Name)
}

func TestPostTagRepository_TagsForMany(t *testing.T) {
	ctx := context.Background()

	t.Run("groups tags by post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		mock.ExpectQuery(`WHERE pt.post_id IN \(\$1, \$2, \$3\)`).
			WithArgs(int64(1), int64(2), int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"post_id", "id", "name", "created_at", "updated_at"}).
				AddRow(1, 7, "go", fixedNow, fixedNow).
				AddRow(1, 8, "sql", fixedNow, fixedNow).
				AddRow(3, 7, "go", fixedNow, fixedNow))

		byPost, err := repo.TagsForMany(ctx, []int64{1, 2, 3})

		require.NoError(t, err)
		require.Len(t, byPost[1], 2)
		assert.Equal(t, "go", byPost[1][0].Name)
		assert.Equal(t, "sql", byPost[1][1].Name)
		assert.Empty(t, byPost[2])
		require.Len(t, byPost[3], 1)
		assert.Equal(t, int64(7), byPost[3][0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no posts means no query", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostTagRepository(db)

		byPost, err := repo.TagsForMany(ctx, nil)

		require.NoError(t, err)
		assert.Empty(t, byPost)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUniqueIDs(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, uniqueIDs([]int64{3, 1, 3, 2, 1}))
	assert.Equal(t, []int64{}, uniqueIDs(nil))
}
