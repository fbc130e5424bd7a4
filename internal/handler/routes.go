package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"blogcms/internal/middleware"
	"blogcms/internal/response"
)

// Routes builds the API router. The featured image route is only registered when
// image uploads are enabled.
func (h *Handlers) Routes(authLimiter *middleware.KeyedLimiter, imageUploads bool) *mux.Router {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	limit := middleware.RateLimit(authLimiter)
	api.Handle("/auth/signup", limit(http.HandlerFunc(h.SignUp))).Methods(http.MethodPost)
	api.Handle("/auth/login", limit(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(mux.MiddlewareFunc(middleware.Auth(h.AuthService, h.Cfg.Session.CookieName)))

	protected.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)

	protected.HandleFunc("/posts", h.ListPosts).Methods(http.MethodGet)
	protected.HandleFunc("/posts", h.CreatePost).Methods(http.MethodPost)
	protected.HandleFunc("/posts/{id}", h.GetPost).Methods(http.MethodGet)
	protected.HandleFunc("/posts/{id}", h.UpdatePost).Methods(http.MethodPatch)
	protected.HandleFunc("/posts/{id}", h.DeletePost).Methods(http.MethodDelete)
	if imageUploads {
		protected.HandleFunc("/posts/{id}/featured-image", h.UploadFeaturedImage).Methods(http.MethodPost)
	}

	protected.HandleFunc("/tags", h.ListTags).Methods(http.MethodGet)
	protected.HandleFunc("/tags", h.CreateTag).Methods(http.MethodPost)

	return router
}
