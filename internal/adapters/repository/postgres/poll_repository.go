package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type pollRepository struct {
	db *sql.DB
}

func NewPollRepository(db *sql.DB) ports.PollRepository {
	return &pollRepository{db: db}
}

// Save inserts the poll row and all option rows in one transaction, so
// a poll without options is never observable.
func (r *pollRepository) Save(ctx context.Context, poll *domain.Poll) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	queryPoll := `
		INSERT INTO polls (question, user_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err = tx.QueryRowContext(ctx, queryPoll, poll.Question, poll.CreatorID).
		Scan(&poll.ID, &poll.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	queryOption := `
		INSERT INTO options (poll_id, text)
		VALUES ($1, $2)
		RETURNING id
	`
	stmt, err := tx.PrepareContext(ctx, queryOption)
	if err != nil {
		return fmt.Errorf("failed to prepare option statement: %w", err)
	}
	defer stmt.Close()

	for i := range poll.Options {
		poll.Options[i].PollID = poll.ID
		err = stmt.QueryRowContext(ctx, poll.ID, poll.Options[i].Text).
			Scan(&poll.Options[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert option: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *pollRepository) GetByID(ctx context.Context, id int64) (*domain.Poll, error) {
	query := `
		SELECT p.id, p.question, p.user_id, p.created_at, u.email
		FROM polls p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`
	poll := &domain.Poll{Creator: &domain.PollOwner{}}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&poll.ID, &poll.Question, &poll.CreatorID, &poll.CreatedAt, &poll.Creator.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get poll: %w", err)
	}
	poll.Creator.ID = poll.CreatorID

	options, err := r.fetchOptions(ctx, poll.ID)
	if err != nil {
		return nil, err
	}
	poll.Options = options
	return poll, nil
}

func (r *pollRepository) List(ctx context.Context, limit, offset int) ([]*domain.Poll, error) {
	query := `
		SELECT p.id, p.question, p.user_id, p.created_at, u.email
		FROM polls p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}
	defer rows.Close()

	polls := []*domain.Poll{}
	for rows.Next() {
		poll := &domain.Poll{Creator: &domain.PollOwner{}}
		if err := rows.Scan(&poll.ID, &poll.Question, &poll.CreatorID, &poll.CreatedAt, &poll.Creator.Email); err != nil {
			return nil, fmt.Errorf("failed to scan poll: %w", err)
		}
		poll.Creator.ID = poll.CreatorID
		polls = append(polls, poll)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating polls: %w", err)
	}

	for _, poll := range polls {
		options, err := r.fetchOptions(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		poll.Options = options
	}
	return polls, nil
}

func (r *pollRepository) GetOption(ctx context.Context, pollID, optionID int64) (*domain.Option, error) {
	query := `SELECT id, poll_id, text FROM options WHERE id = $1 AND poll_id = $2`
	opt := &domain.Option{}
	err := r.db.QueryRowContext(ctx, query, optionID, pollID).
		Scan(&opt.ID, &opt.PollID, &opt.Text)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get option: %w", err)
	}
	return opt, nil
}

// CountVotes aggregates votes per option in one query. A LEFT JOIN
// keeps options with no votes in the result at count zero.
func (r *pollRepository) CountVotes(ctx context.Context, pollID int64) ([]domain.OptionTally, error) {
	query := `
		SELECT o.id, o.text, COUNT(v.id)
		FROM options o
		LEFT JOIN votes v ON v.option_id = o.id
		WHERE o.poll_id = $1
		GROUP BY o.id
		ORDER BY o.id
	`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to count votes: %w", err)
	}
	defer rows.Close()

	tallies := []domain.OptionTally{}
	for rows.Next() {
		var t domain.OptionTally
		if err := rows.Scan(&t.OptionID, &t.OptionText, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tallies: %w", err)
	}
	return tallies, nil
}

func (r *pollRepository) fetchOptions(ctx context.Context, pollID int64) ([]domain.Option, error) {
	query := `SELECT id, poll_id, text FROM options WHERE poll_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to get poll options: %w", err)
	}
	defer rows.Close()

	var options []domain.Option
	for rows.Next() {
		var opt domain.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating options: %w", err)
	}
	return options, nil
}
