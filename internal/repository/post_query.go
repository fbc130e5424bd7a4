package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// postFilter renders the WHERE clause shared by the page query and the fallback
// count. Placeholders start at $1.
func postFilter(q models.PostQuery) (string, []any) {
	conds := []string{"p.user_id = $1"}
	args := []any{q.UserID}

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		conds = append(conds, fmt.Sprintf(`p.title ILIKE $%d ESCAPE '\'`, len(args)))
	}

	if q.TagID != nil {
		args = append(args, *q.TagID)
		conds = append(conds, fmt.Sprintf("p.id IN (SELECT post_id FROM post_tags WHERE tag_id = $%d)", len(args)))
	}

	return strings.Join(conds, " AND "), args
}

type postRow struct {
	models.Post
	TotalCount int `db:"total_count"`
}

// List returns one page of the owner's posts, newest first, and the number of
// posts matching the filter. The total comes from a window aggregate on the page
// query; an empty page past the first falls back to a COUNT so the caller still
// learns the real total.
func (r *postRepository) List(ctx context.Context, q models.PostQuery) ([]models.Post, int, error) {
	where, args := postFilter(q)
	args = append(args, q.Limit, q.Offset())

	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM posts p
		INNER JOIN users u ON u.id = p.user_id
		WHERE %s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $%d OFFSET $%d
	`, postColumns, where, len(args)-1, len(args))

	var rows []postRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	if len(rows) == 0 {
		if q.Offset() == 0 {
			return posts, 0, nil
		}
		total, err := r.count(ctx, q)
		if err != nil {
			return nil, 0, err
		}
		return posts, total, nil
	}

	for _, row := range rows {
		posts = append(posts, row.Post)
	}

	return posts, rows[0].TotalCount, nil
}

func (r *postRepository) count(ctx context.Context, q models.PostQuery) (int, error) {
	where, args := postFilter(q)

	var total int
	if err := sqlx.GetContext(ctx, r.db, &total, `SELECT COUNT(*) FROM posts p WHERE `+where, args...); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return total, nil
}
