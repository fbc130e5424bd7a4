package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"blogcms/internal/models"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TagRepository is the tag store: a flat set of uniquely named labels.
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	CreateOrGet(ctx context.Context, name string) (*models.Tag, bool, error)
}

// PostRepository is the post store. Every lookup and mutation is scoped to the
// owning user; a post owned by someone else is reported as not found.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, userID, postID int64) (*models.Post, error)
	SlugExists(ctx context.Context, slug string, excludePostID int64) (bool, error)
	Update(ctx context.Context, userID, postID int64, upd models.PostUpdate, now time.Time) error
	Delete(ctx context.Context, userID, postID int64) error
	List(ctx context.Context, q models.PostQuery) ([]models.Post, int, error)
}

// PostTagRepository maintains the post <-> tag links.
type PostTagRepository interface {
	ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error
	TagsFor(ctx context.Context, postID int64) ([]models.Tag, error)
	TagsForMany(ctx context.Context, postIDs []int64) (map[int64][]models.Tag, error)
}

type TablesRepository interface {
	CountSchemaTables(ctx context.Context) (int, error)
}

// Transactor runs fn against repositories bound to a single transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *Repository) error) error
}

type Repository struct {
	User    UserRepository
	Post    PostRepository
	Tag     TagRepository
	PostTag PostTagRepository
	Tables  TablesRepository

	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	repo := bind(db)
	repo.db = db
	return repo
}

func bind(q sqlx.ExtContext) *Repository {
	return &Repository{
		User:    NewUserRepository(q),
		Post:    NewPostRepository(q),
		Tag:     NewTagRepository(q),
		PostTag: NewPostTagRepository(q),
		Tables:  NewTablesRepository(q),
	}
}

func (r *Repository) WithinTx(ctx context.Context, fn func(tx *Repository) error) (err error) {
	if r.db == nil {
		return fmt.Errorf("repository is not bound to a database")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(bind(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
