package service

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
	"blogcms/internal/repository"
	"blogcms/internal/storage"
	"blogcms/internal/validation"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPageOffset bounds (page-1)*limit so the OFFSET cannot overflow.
	MaxPageOffset = math.MaxInt32
)

var emptyDocument = models.Document(`{}`)

type PostService interface {
	ListPosts(ctx context.Context, q models.PostQuery) (*models.PostPage, error)
	GetPost(ctx context.Context, userID, postID int64) (*models.Post, error)
	CreatePost(ctx context.Context, userID int64, in models.CreatePostInput) (*models.Post, error)
	UpdatePost(ctx context.Context, userID, postID int64, upd models.PostUpdate) (*models.Post, error)
	DeletePost(ctx context.Context, userID, postID int64) error
	SetFeaturedImage(ctx context.Context, userID, postID int64, fileName string, file io.Reader, size int64) (*models.Post, error)
}

type postService struct {
	postRepo    repository.PostRepository
	postTagRepo repository.PostTagRepository
	tx          repository.Transactor
	storage     storage.Storage
	validator   *validation.Validator
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewPostService builds the post service. store may be nil, in which case image
// uploads are rejected.
func NewPostService(
	postRepo repository.PostRepository,
	postTagRepo repository.PostTagRepository,
	tx repository.Transactor,
	store storage.Storage,
	v *validation.Validator,
	log logrus.FieldLogger,
) PostService {
	return &postService{
		postRepo:    postRepo,
		postTagRepo: postTagRepo,
		tx:          tx,
		storage:     store,
		validator:   v,
		log:         log,
		now:         time.Now,
	}
}

// NormalizePostQuery applies the paging defaults: page < 1 becomes 1, limit < 1
// becomes DefaultPageLimit, limit is capped at MaxPageLimit and page is capped
// so its offset stays within MaxPageOffset.
func NormalizePostQuery(q models.PostQuery) models.PostQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	if maxPage := MaxPageOffset/q.Limit + 1; q.Page > maxPage {
		q.Page = maxPage
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (s *postService) ListPosts(ctx context.Context, q models.PostQuery) (*models.PostPage, error) {
	q = NormalizePostQuery(q)

	posts, total, err := s.postRepo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}

	tagsByPost, err := s.postTagRepo.TagsForMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Tags = tagsByPost[posts[i].ID]
		if posts[i].Tags == nil {
			posts[i].Tags = []models.Tag{}
		}
	}

	return &models.PostPage{
		Items:      posts,
		Page:       q.Page,
		Limit:      q.Limit,
		Total:      total,
		TotalPages: models.TotalPages(total, q.Limit),
	}, nil
}

// GetPost loads the post and its tags concurrently. Tags of a post the caller
// does not own are discarded along with the NotFound from the post lookup.
func (s *postService) GetPost(ctx context.Context, userID, postID int64) (*models.Post, error) {
	var (
		post *models.Post
		tags []models.Tag
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		post, err = s.postRepo.GetByID(gctx, userID, postID)
		return err
	})

	g.Go(func() error {
		var err error
		tags, err = s.postTagRepo.TagsFor(gctx, postID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	post.Tags = tags
	if post.Tags == nil {
		post.Tags = []models.Tag{}
	}

	return post, nil
}

func (s *postService) CreatePost(ctx context.Context, userID int64, in models.CreatePostInput) (*models.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	in.Excerpt = trimToNil(in.Excerpt)
	in.FeaturedImage = trimToNil(in.FeaturedImage)

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	exists, err := s.postRepo.SlugExists(ctx, in.Slug, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Conflict("slug already exists")
	}

	content := in.Content
	if content.IsNull() {
		content = emptyDocument
	}

	now := s.now().UTC()
	post := &models.Post{
		UserID:        userID,
		Title:         in.Title,
		Slug:          in.Slug,
		Excerpt:       in.Excerpt,
		Content:       content,
		FeaturedImage: in.FeaturedImage,
		Status:        in.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if post.Status == models.StatusPublished {
		post.PublishedAt = &now
	}

	err = s.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Post.Create(ctx, post); err != nil {
			return err
		}
		if len(in.TagIDs) == 0 {
			return nil
		}
		return tx.PostTag.ReplaceTags(ctx, post.ID, in.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, userID, post.ID)
}

// UpdatePost applies a partial update. The post row and its tag links change in
// one transaction, and tag links are only touched when TagIDs is non-nil.
func (s *postService) UpdatePost(ctx context.Context, userID, postID int64, upd models.PostUpdate) (*models.Post, error) {
	upd.Title = trimPtr(upd.Title)
	upd.Slug = trimPtr(upd.Slug)
	if upd.Excerpt.Set {
		upd.Excerpt.Value = trimToNil(upd.Excerpt.Value)
	}
	if upd.FeaturedImage.Set {
		upd.FeaturedImage.Value = trimToNil(upd.FeaturedImage.Value)
	}

	if err := s.validator.Validate(upd); err != nil {
		return nil, err
	}

	if upd.Content != nil && upd.Content.IsNull() {
		return nil, apperrors.ValidationWithDetails("validation failed", map[string]string{"content": "must not be null"})
	}

	err := s.tx.WithinTx(ctx, func(tx *repository.Repository) error {
		if err := tx.Post.Update(ctx, userID, postID, upd, s.now().UTC()); err != nil {
			return err
		}
		if upd.TagIDs == nil {
			return nil
		}
		return tx.PostTag.ReplaceTags(ctx, postID, upd.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.GetPost(ctx, userID, postID)
}

func (s *postService) DeletePost(ctx context.Context, userID, postID int64) error {
	return s.postRepo.Delete(ctx, userID, postID)
}

// SetFeaturedImage stores the image and points the post at it. The uploaded
// object is removed again if the post cannot be updated, and an image
// previously uploaded for the post is removed once it is replaced.
func (s *postService) SetFeaturedImage(ctx context.Context, userID, postID int64, fileName string, file io.Reader, size int64) (*models.Post, error) {
	if s.storage == nil {
		return nil, apperrors.Internal("image storage is not configured", nil)
	}

	if _, ok := storage.ImageContentType(fileName); !ok {
		return nil, apperrors.ValidationWithDetails("validation failed",
			map[string]string{"image": "must be a jpeg, png, gif or webp image"})
	}

	current, err := s.postRepo.GetByID(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	objectName, url, err := s.storage.UploadImage(ctx, postID, fileName, file, size)
	if err != nil {
		return nil, apperrors.Internal("failed to store image", err)
	}

	upd := models.PostUpdate{FeaturedImage: models.Some(url)}
	if err := s.postRepo.Update(ctx, userID, postID, upd, s.now().UTC()); err != nil {
		if delErr := s.storage.DeleteImage(ctx, objectName); delErr != nil {
			s.log.WithError(delErr).WithField("object", objectName).Warn("failed to remove orphaned image")
		}
		return nil, err
	}

	if current.FeaturedImage != nil {
		if previous, ok := s.storage.ObjectNameFromURL(*current.FeaturedImage); ok {
			if err := s.storage.DeleteImage(ctx, previous); err != nil {
				s.log.WithError(err).WithField("object", previous).Warn("failed to remove replaced image")
			}
		}
	}

	return s.GetPost(ctx, userID, postID)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	return &trimmed
}

// trimToNil trims s and turns an empty result into nil.
func trimToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
