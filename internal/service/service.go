package service

import (
	"github.com/sirupsen/logrus"

	"blogcms/internal/config"
	"blogcms/internal/repository"
	"blogcms/internal/storage"
	"blogcms/internal/validation"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Post   PostService
	Tag    TagService
	Tables TablesService
}

// NewService wires every service to rep. store may be nil when object storage
// is disabled.
func NewService(rep *repository.Repository, cfg *config.Config, store storage.Storage, log *logrus.Logger) *Service {
	v := validation.New()

	return &Service{
		Auth:   NewAuthService(rep.User, v, cfg),
		User:   NewUserService(rep.User),
		Post:   NewPostService(rep.Post, rep.PostTag, rep, store, v, log),
		Tag:    NewTagService(rep.Tag),
		Tables: NewTablesService(rep.Tables),
	}
}
