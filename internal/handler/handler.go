package handlers

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"blogcms/internal/config"
	"blogcms/internal/middleware"
	"blogcms/internal/service"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	PostService   service.PostService
	TagService    service.TagService
	TablesService service.TablesService
	Cfg           *config.Config
	Log           *logrus.Logger
}

func NewHandlers(service *service.Service, config *config.Config, log *logrus.Logger) *Handlers {
	return &Handlers{
		AuthService:   service.Auth,
		UserService:   service.User,
		PostService:   service.Post,
		TagService:    service.Tag,
		TablesService: service.Tables,
		Cfg:           config,
		Log:           log,
	}
}

func (h *Handlers) logger(r *http.Request) logrus.FieldLogger {
	return middleware.LoggerFrom(r.Context(), h.Log)
}
