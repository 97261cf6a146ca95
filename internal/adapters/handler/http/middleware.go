package http

import (
	"net/http"
	"strings"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

const (
	accessCookieName  = "access_token"
	refreshCookieName = "refresh_token"
)

// RequireAuth guards protected routes. It extracts a bearer access
// token from the Authorization header, falling back to the access
// cookie, verifies it and resolves it to a live account before
// attaching the user to the request context. It never refreshes; the
// client reacts to the 401 by calling the refresh endpoint.
func RequireAuth(authService ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeError(w, domain.NewUnauthenticated("you are not logged in, please log in"))
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				writeError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), *user)))
		})
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie(accessCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
