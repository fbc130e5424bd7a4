package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SchemaTables are the tables created by the blog migrations.
var SchemaTables = []string{"users", "posts", "tags", "post_tags"}

type tablesRepository struct {
	db sqlx.ExtContext
}

func NewTablesRepository(db sqlx.ExtContext) TablesRepository {
	return &tablesRepository{db: db}
}

// CountSchemaTables reports how many of SchemaTables exist in the current
// schema. A fully migrated database returns len(SchemaTables).
func (r *tablesRepository) CountSchemaTables(ctx context.Context) (int, error) {
	query, args, err := sqlx.In(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_name IN (?)`, SchemaTables)
	if err != nil {
		return 0, fmt.Errorf("failed to build schema tables query: %w", err)
	}

	var count int
	if err := sqlx.GetContext(ctx, r.db, &count, r.db.Rebind(query), args...); err != nil {
		return 0, fmt.Errorf("failed to count schema tables: %w", err)
	}
	return count, nil
}
