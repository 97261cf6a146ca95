package ports

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
)

type VoteRepository interface {
	// Save inserts the vote and fills in ID and VotedAt. A concurrent
	// first vote losing the race on the (poll_id, user_id) unique
	// constraint yields a Conflict domain error.
	Save(ctx context.Context, vote *domain.Vote) error
	UpdateOption(ctx context.Context, pollID, voterID, optionID int64) (*domain.Vote, error)
	FindByPollAndVoter(ctx context.Context, pollID, voterID int64) (*domain.Vote, error)
	// VotedOption returns the option the voter chose on the poll, or
	// domain.NoVote if they have not voted.
	VotedOption(ctx context.Context, voterID, pollID int64) (int64, error)
}

type CastVoteInput struct {
	VoterID  int64
	PollID   int64
	OptionID int64
}

type VoteService interface {
	// CastVote creates or changes the voter's vote on a poll. The bool
	// result is true when a new vote row was created, false when an
	// existing vote was moved to another option.
	CastVote(ctx context.Context, input CastVoteInput) (*domain.Vote, bool, error)
	VotedOption(ctx context.Context, voterID, pollID int64) (int64, error)
}
