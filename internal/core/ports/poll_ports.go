package ports

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
)

type PollRepository interface {
	// Save inserts the poll and its options in a single transaction.
	Save(ctx context.Context, poll *domain.Poll) error
	GetByID(ctx context.Context, id int64) (*domain.Poll, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Poll, error)
	GetOption(ctx context.Context, pollID, optionID int64) (*domain.Option, error)
	CountVotes(ctx context.Context, pollID int64) ([]domain.OptionTally, error)
}

type CreatePollInput struct {
	CreatorID int64
	Question  string
	Options   []string
}

type ListPollsInput struct {
	Limit  int
	Offset int
}

type PollService interface {
	Create(ctx context.Context, input CreatePollInput) (*domain.Poll, error)
	ListPolls(ctx context.Context, input ListPollsInput) ([]*domain.Poll, error)
	CountVotes(ctx context.Context, pollID int64) (*domain.PollTally, error)
}
