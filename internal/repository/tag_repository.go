package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
)

type tagRepository struct {
	db sqlx.ExtContext
}

func NewTagRepository(db sqlx.ExtContext) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	query := `SELECT id, name, created_at, updated_at FROM tags ORDER BY name`

	tags := []models.Tag{}
	if err := sqlx.SelectContext(ctx, r.db, &tags, query); err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	return tags, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	query := `SELECT id, name, created_at, updated_at FROM tags WHERE name = $1`

	var tag models.Tag
	err := sqlx.GetContext(ctx, r.db, &tag, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("tag not found")
		}
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

// CreateOrGet returns the tag named name, inserting it when missing. The bool
// reports whether this call created it. The unique constraint on tags.name is the
// real guard: when a concurrent caller wins the insert, the winner's row is
// fetched and returned.
func (r *tagRepository) CreateOrGet(ctx context.Context, name string) (*models.Tag, bool, error) {
	existing, err := r.GetByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, err
	}

	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var tag models.Tag
	err = sqlx.GetContext(ctx, r.db, &tag, query, name)
	if err != nil {
		if isUniqueViolation(err) {
			existing, getErr := r.GetByName(ctx, name)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to fetch concurrently created tag: %w", getErr)
			}
			return existing, false, nil
		}
		return nil, false, fmt.Errorf("failed to create tag: %w", err)
	}

	return &tag, true, nil
}
