package handler

import (
	"net/http"
	"time"
)

type credentials struct {
	Username string `validate:"required" json:"username"`
	Password string `validate:"required" json:"password"`
	Bio      string `json:"bio"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := loadAndValidateRequestBody(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	_, err := h.user.Register(creds.Username, creds.Password, creds.Bio)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Created. You can login now"))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := loadAndValidateRequestBody(r, &creds); err != nil {
		writeError(w, r, err)
		return
	}

	accessToken, err := h.user.Login(creds.Username, creds.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    accessToken,
		MaxAge:   int((h.cfg.JwtTTL() * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	}
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("You logged in"))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie := &http.Cookie{
		Path:     "/",
		Name:     "accessToken",
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.Public.SecureCookies,
	}
	http.SetCookie(w, cookie)

	w.WriteHeader(http.StatusOK)
}
