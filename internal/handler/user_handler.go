package handlers

import (
	"net/http"

	"blogcms/internal/response"
)

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Me returns the account behind the current session.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFrom(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), principal.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, UserResponse{ID: user.ID, Email: user.Email})
}
