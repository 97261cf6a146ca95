package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	refreshTTL  time.Duration
}

func NewAuthHandler(authService ports.AuthService, refreshTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		refreshTTL:  refreshTTL,
	}
}

type signUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}

	user, pair, err := h.authService.SignUp(r.Context(), ports.SignUpInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.Refresh)
	writeToken(w, http.StatusCreated, pair.Access, map[string]any{"user": user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, domain.NewValidation("invalid request body"))
		return
	}

	user, pair, err := h.authService.Login(r.Context(), ports.Credentials{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.Refresh)
	writeToken(w, http.StatusOK, pair.Access, map[string]any{"user": user})
}

// Refresh rotates the access token using the refresh cookie. Called by
// clients reactively after a 401.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil || cookie.Value == "" {
		writeError(w, domain.NewUnauthenticated("you are not logged in, please log in"))
		return
	}

	pair, err := h.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		h.expireCookies(w)
		writeError(w, err)
		return
	}

	h.setRefreshCookie(w, pair.Refresh)
	writeSuccess(w, http.StatusOK, map[string]any{"accessToken": pair.Access})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.expireCookies(w)
	writeSuccess(w, http.StatusOK, nil)
}

func (h *AuthHandler) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   int(h.refreshTTL / time.Second),
	})
}

func (h *AuthHandler) expireCookies(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: accessCookieName, MaxAge: -1, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: refreshCookieName, MaxAge: -1, Path: "/"})
}
