package http

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user attached by the auth
// middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}

func withUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
