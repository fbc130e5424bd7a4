package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"blogcms/internal/apperrors"
	"blogcms/internal/middleware"
	"blogcms/internal/models"
	"blogcms/internal/response"
)

const maxJSONBodySize = 1 << 20

var errUnauthenticated = apperrors.Unauthorized("unauthorized")

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.AppError(w, h.logger(r), err)
}

// decodeJSON reads a single JSON value from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperrors.Validation(fmt.Sprintf("request body must not exceed %d bytes", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return apperrors.Validation("request body is empty")
		default:
			return apperrors.Validation("invalid request body")
		}
	}

	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid post id")
	}
	return id, nil
}

func principalFrom(r *http.Request) (*models.Principal, error) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return nil, errUnauthenticated
	}
	return p, nil
}
