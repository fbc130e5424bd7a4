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
	"blogcms/internal/models"
)

func TestUserRepository_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and fills generated fields", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users \(email, password_hash\)`).
			WithArgs("test@example.com", "hashed").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, fixedNow))

		user := &models.User{Email: "test@example.com", PasswordHash: "hashed"}
		err := repo.CreateUser(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, fixedNow, user.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs("test@example.com", "hashed").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

		err := repo.CreateUser(ctx, &models.User{Email: "test@example.com", PasswordHash: "hashed"})

		assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`INSERT INTO users`).WillReturnError(errors.New("connection reset"))

		err := repo.CreateUser(ctx, &models.User{Email: "a@b.co", PasswordHash: "x"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create user")
		assert.Equal(t, apperrors.CodeInternal, apperrors.CodeOf(err))
	})
}

func TestUserRepository_GetUserByID(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "email", "password_hash", "created_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at FROM users WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(columns).AddRow(3, "test@example.com", "hash", fixedNow))

		user, err := repo.GetUserByID(ctx, 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), user.ID)
		assert.Equal(t, "test@example.com", user.Email)
		assert.Equal(t, "hash", user.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(columns))

		user, err := repo.GetUserByID(ctx, 3)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE id = \$1`).WillReturnError(errors.New("connection failed"))

		user, err := repo.GetUserByID(ctx, 3)

		assert.Nil(t, user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get user")
	})
}

func TestUserRepository_GetUserByEmail(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "email", "password_hash", "created_at"}

	t.Run("found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("test@example.com").
			WillReturnRows(sqlmock.NewRows(columns).AddRow(1, "test@example.com", "hash", fixedNow))

		user, err := repo.GetUserByEmail(ctx, "test@example.com")

		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewUserRepository(db)

		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.GetUserByEmail(ctx, "missing@example.com")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
