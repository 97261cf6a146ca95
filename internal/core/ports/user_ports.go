package ports

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
)

type UserRepository interface {
	// Create inserts the user and fills in ID and CreatedAt. A duplicate
	// email yields a Conflict domain error.
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Profile(ctx context.Context, id int64) (*domain.Profile, error)
	ListVotes(ctx context.Context, userID int64) ([]domain.Vote, error)
}

type UserService interface {
	Profile(ctx context.Context, userID int64) (*domain.Profile, error)
	VotedPolls(ctx context.Context, userID int64) ([]domain.Vote, error)
}
