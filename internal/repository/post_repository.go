package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
)

const postColumns = `p.id, p.user_id, u.email AS user_email, p.title, p.slug, p.excerpt, p.content,
		p.featured_image, p.status, p.published_at, p.created_at, p.updated_at`

type postRepository struct {
	db sqlx.ExtContext
}

func NewPostRepository(db sqlx.ExtContext) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts
		(user_id, title, slug, excerpt, content, featured_image, status, published_at, created_at, updated_at)
		VALUES
		($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	err := r.db.QueryRowxContext(ctx, query,
		post.UserID,
		post.Title,
		post.Slug,
		post.Excerpt,
		post.Content,
		post.FeaturedImage,
		string(post.Status),
		post.PublishedAt,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slug already exists")
		}
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *postRepository) GetByID(ctx context.Context, userID, postID int64) (*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts p
		INNER JOIN users u ON u.id = p.user_id
		WHERE p.id = $1 AND p.user_id = $2
	`

	var post models.Post
	err := sqlx.GetContext(ctx, r.db, &post, query, postID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("post not found")
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return &post, nil
}

// SlugExists reports whether any post other than excludePostID uses slug.
// Pass 0 to check against every post.
func (r *postRepository) SlugExists(ctx context.Context, slug string, excludePostID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1 AND id <> $2)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.db, &exists, query, slug, excludePostID); err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return exists, nil
}

// Update applies the fields present in upd. published_at is only filled the
// first time the post becomes published.
func (r *postRepository) Update(ctx context.Context, userID, postID int64, upd models.PostUpdate, now time.Time) error {
	var (
		sets []string
		args []any
	)
	set := func(expr string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf(expr, len(args)))
	}

	if upd.Title != nil {
		set("title = $%d", *upd.Title)
	}
	if upd.Slug != nil {
		set("slug = $%d", *upd.Slug)
	}
	if upd.Excerpt.Set {
		set("excerpt = $%d", upd.Excerpt.Value)
	}
	if upd.Content != nil {
		set("content = $%d", upd.Content)
	}
	if upd.FeaturedImage.Set {
		set("featured_image = $%d", upd.FeaturedImage.Value)
	}
	if upd.Status != nil {
		set("status = $%d", string(*upd.Status))
		if *upd.Status == models.StatusPublished {
			set("published_at = COALESCE(published_at, $%d)", now)
		}
	}
	set("updated_at = $%d", now)

	args = append(args, postID, userID)
	query := fmt.Sprintf(
		"UPDATE posts SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(sets, ", "), len(args)-1, len(args),
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("slug already exists")
		}
		return fmt.Errorf("failed to update post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check updated rows: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("post not found")
	}

	return nil
}

func (r *postRepository) Delete(ctx context.Context, userID, postID int64) error {
	query := `DELETE FROM posts WHERE id = $1 AND user_id = $2`

	result, err := r.db.ExecContext(ctx, query, postID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}

	if rowsAffected == 0 {
		return apperrors.NotFound("post not found")
	}

	return nil
}
