package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
)

type postTagRepository struct {
	db sqlx.ExtContext
}

func NewPostTagRepository(db sqlx.ExtContext) PostTagRepository {
	return &postTagRepository{db: db}
}

// ReplaceTags makes tagIDs the complete tag set of the post. It must run inside the
// same transaction as the post write so the delete and insert are seen together.
func (r *postTagRepository) ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("failed to clear post tags: %w", err)
	}

	tagIDs = uniqueIDs(tagIDs)
	if len(tagIDs) == 0 {
		return nil
	}

	values := make([]string, 0, len(tagIDs))
	args := make([]any, 0, len(tagIDs)+1)
	args = append(args, postID)
	for _, tagID := range tagIDs {
		args = append(args, tagID)
		values = append(values, fmt.Sprintf("($1, $%d)", len(args)))
	}

	query := `INSERT INTO post_tags (post_id, tag_id) VALUES ` + strings.Join(values, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.Validation("unknown tag id")
		}
		return fmt.Errorf("failed to link post tags: %w", err)
	}

	return nil
}

func (r *postTagRepository) TagsFor(ctx context.Context, postID int64) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM post_tags pt
		INNER JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = $1
		ORDER BY pt.created_at, t.id
	`

	tags := []models.Tag{}
	if err := sqlx.SelectContext(ctx, r.db, &tags, query, postID); err != nil {
		return nil, fmt.Errorf("failed to get post tags: %w", err)
	}

	return tags, nil
}

type postTagRow struct {
	PostID int64 `db:"post_id"`
	models.Tag
}

// TagsForMany loads the tags of every post in postIDs with one query and groups
// them by post. Posts without tags are absent from the map.
func (r *postTagRepository) TagsForMany(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error) {
	result := make(map[int64][]models.Tag, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(`
		SELECT pt.post_id, t.id, t.name, t.created_at, t.updated_at
		FROM post_tags pt
		INNER JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id IN (?)
		ORDER BY pt.post_id, pt.created_at, t.id
	`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build post tags query: %w", err)
	}

	var rows []postTagRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to get tags for posts: %w", err)
	}

	for _, row := range rows {
		result[row.PostID] = append(result[row.PostID], row.Tag)
	}

	return result, nil
}

// uniqueIDs drops duplicates, keeping first-seen order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
