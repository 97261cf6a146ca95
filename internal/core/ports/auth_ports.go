package ports

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
)

// TokenClaims is the identity carried inside an access or refresh
// token.
type TokenClaims struct {
	UserID int64
	Email  string
}

// TokenService signs and verifies the two token classes. Access and
// refresh tokens use independent secrets and expiries, so an access
// token expires on its own without ending the session.
type TokenService interface {
	IssueAccessToken(user *domain.User) (string, error)
	IssueRefreshToken(user *domain.User) (string, error)
	// VerifyAccess and VerifyRefresh collapse tampering and expiry into
	// a single Unauthenticated error.
	VerifyAccess(token string) (TokenClaims, error)
	VerifyRefresh(token string) (TokenClaims, error)
}

type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

type Credentials struct {
	Email    string
	Password string
}

type TokenPair struct {
	Access  string
	Refresh string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, TokenPair, error)
	Login(ctx context.Context, creds Credentials) (*domain.User, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)
	// Authenticate verifies an access token and resolves it to a live
	// account. Used by the auth middleware on protected routes.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}
