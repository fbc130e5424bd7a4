package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"blogcms/internal/apperrors"
	"blogcms/internal/models"
	"blogcms/internal/repository"
)

const maxTagNameLength = 64

type TagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateOrGetTag(ctx context.Context, name string) (*models.Tag, bool, error)
}

type tagService struct {
	tagRepo repository.TagRepository
}

func NewTagService(tagRepo repository.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tagRepo.List(ctx)
}

// CreateOrGetTag matches on the exact trimmed name, so "Go" and "go" are
// different tags. The bool reports whether the tag was created by this call.
func (s *tagService) CreateOrGetTag(ctx context.Context, name string) (*models.Tag, bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false, apperrors.ValidationWithDetails("validation failed", map[string]string{"name": "is required"})
	}
	if utf8.RuneCountInString(name) > maxTagNameLength {
		return nil, false, apperrors.ValidationWithDetails("validation failed", map[string]string{"name": "must not exceed 64 characters"})
	}

	return s.tagRepo.CreateOrGet(ctx, name)
}
