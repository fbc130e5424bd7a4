// Package response writes the JSON bodies shared by handlers and middleware.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"blogcms/internal/apperrors"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

func Success(w http.ResponseWriter) {
	JSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// AppError maps err to its status. Server-side failures are logged in full and
// reported to the client with a generic message.
func AppError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	status := apperrors.CodeOf(err).HTTPStatus()

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		Error(w, status, apperrors.ErrInternal.Message)
		return
	}

	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		Error(w, status, err.Error())
		return
	}

	JSON(w, status, ErrorResponse{Error: appErr.Message, Details: appErr.Details})
}
