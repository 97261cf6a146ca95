package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

// fakeAuthService accepts exactly one token and resolves it to a fixed
// user.
type fakeAuthService struct {
	validToken string
	user       domain.User

	refreshErr error
	pair       ports.TokenPair
}

func (f *fakeAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == f.validToken {
		user := f.user
		return &user, nil
	}
	return nil, domain.NewUnauthenticated("you are not logged in, please log in")
}

func (f *fakeAuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, ports.TokenPair, error) {
	user := f.user
	return &user, f.pair, nil
}

func (f *fakeAuthService) Login(ctx context.Context, creds ports.Credentials) (*domain.User, ports.TokenPair, error) {
	user := f.user
	return &user, f.pair, nil
}

func (f *fakeAuthService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	if f.refreshErr != nil {
		return ports.TokenPair{}, f.refreshErr
	}
	return f.pair, nil
}

func newAuthedMux(t *testing.T, svc ports.AuthService) http.Handler {
	t.Helper()
	mux := http.NewServeMux()
	mux.Handle("/protected", RequireAuth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		require.True(t, ok)
		writeSuccess(w, http.StatusOK, map[string]any{"id": user.ID})
	})))
	return mux
}

func TestRequireAuthMissingToken(t *testing.T) {
	svc := &fakeAuthService{validToken: "good", user: domain.User{ID: 5}}
	mux := newAuthedMux(t, svc)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/protected", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "error", body.Status)
	assert.NotEmpty(t, body.Message)
}

func TestRequireAuthInvalidToken(t *testing.T) {
	svc := &fakeAuthService{validToken: "good", user: domain.User{ID: 5}}
	mux := newAuthedMux(t, svc)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthBearerToken(t *testing.T) {
	svc := &fakeAuthService{validToken: "good", user: domain.User{ID: 5}}
	mux := newAuthedMux(t, svc)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthCookieFallback(t *testing.T) {
	svc := &fakeAuthService{validToken: "good", user: domain.User{ID: 5}}
	mux := newAuthedMux(t, svc)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: "good"})
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
