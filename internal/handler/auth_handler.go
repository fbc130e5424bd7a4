package handlers

import (
	"net/http"
	"time"

	"blogcms/internal/models"
	"blogcms/internal/response"
)

func (h *Handlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, token, err := h.AuthService.SignUp(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger(r).WithField("user_id", user.ID).Info("account created")

	h.setSessionCookie(w, token)
	response.JSON(w, http.StatusCreated, response.SuccessResponse{Success: true})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		h.writeError(w, r, err)
		return
	}

	_, token, err := h.AuthService.Login(r.Context(), creds)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.setSessionCookie(w, token)
	response.Success(w)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.Cfg.Session.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	response.Success(w)
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.Cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.Session.Duration.Seconds()),
		HttpOnly: true,
		Secure:   h.Cfg.Session.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
