package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type voteRepository struct {
	db *sql.DB
}

func NewVoteRepository(db *sql.DB) ports.VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	query := `
		INSERT INTO votes (user_id, poll_id, option_id)
		VALUES ($1, $2, $3)
		RETURNING id, voted_at
	`
	err := r.db.QueryRowContext(ctx, query, vote.VoterID, vote.PollID, vote.OptionID).
		Scan(&vote.ID, &vote.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			// Loser of a concurrent first-vote race on the
			// (poll_id, user_id) constraint.
			return domain.NewConflict("you can't vote on the same poll twice")
		}
		return fmt.Errorf("failed to save vote: %w", err)
	}
	return nil
}

func (r *voteRepository) UpdateOption(ctx context.Context, pollID, voterID, optionID int64) (*domain.Vote, error) {
	query := `
		UPDATE votes SET option_id = $1
		WHERE poll_id = $2 AND user_id = $3
		RETURNING id, user_id, poll_id, option_id, voted_at
	`
	vote := &domain.Vote{}
	err := r.db.QueryRowContext(ctx, query, optionID, pollID, voterID).
		Scan(&vote.ID, &vote.VoterID, &vote.PollID, &vote.OptionID, &vote.VotedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update vote: %w", err)
	}
	return vote, nil
}

func (r *voteRepository) FindByPollAndVoter(ctx context.Context, pollID, voterID int64) (*domain.Vote, error) {
	query := `
		SELECT id, user_id, poll_id, option_id, voted_at
		FROM votes
		WHERE poll_id = $1 AND user_id = $2
	`
	vote := &domain.Vote{}
	err := r.db.QueryRowContext(ctx, query, pollID, voterID).
		Scan(&vote.ID, &vote.VoterID, &vote.PollID, &vote.OptionID, &vote.VotedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find vote: %w", err)
	}
	return vote, nil
}

func (r *voteRepository) VotedOption(ctx context.Context, voterID, pollID int64) (int64, error) {
	query := `SELECT option_id FROM votes WHERE user_id = $1 AND poll_id = $2`
	var optionID int64
	err := r.db.QueryRowContext(ctx, query, voterID, pollID).Scan(&optionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NoVote, nil
		}
		return domain.NoVote, fmt.Errorf("failed to get voted option: %w", err)
	}
	return optionID, nil
}
