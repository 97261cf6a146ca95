package services

import (
	"context"
	"strings"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

const defaultListLimit = 50

type pollService struct {
	pollRepo ports.PollRepository
	userRepo ports.UserRepository
}

func NewPollService(pollRepo ports.PollRepository, userRepo ports.UserRepository) ports.PollService {
	return &pollService{
		pollRepo: pollRepo,
		userRepo: userRepo,
	}
}

func (s *pollService) Create(ctx context.Context, input ports.CreatePollInput) (*domain.Poll, error) {
	if strings.TrimSpace(input.Question) == "" {
		return nil, domain.NewValidation("please enter a valid question")
	}

	options := make([]domain.Option, 0, len(input.Options))
	for _, text := range input.Options {
		if strings.TrimSpace(text) == "" {
			continue
		}
		options = append(options, domain.Option{Text: text})
	}
	if len(options) < 2 {
		return nil, domain.NewValidation("please give more than one option")
	}

	creator, err := s.userRepo.GetByID(ctx, input.CreatorID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.NewNotFound("no user found with this ID")
	}

	poll := &domain.Poll{
		Question:  input.Question,
		CreatorID: input.CreatorID,
		Options:   options,
	}
	if err := s.pollRepo.Save(ctx, poll); err != nil {
		return nil, err
	}
	poll.Creator = &domain.PollOwner{ID: creator.ID, Email: creator.Email}
	return poll, nil
}

func (s *pollService) ListPolls(ctx context.Context, input ports.ListPollsInput) ([]*domain.Poll, error) {
	limit := input.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}
	return s.pollRepo.List(ctx, limit, offset)
}

func (s *pollService) CountVotes(ctx context.Context, pollID int64) (*domain.PollTally, error) {
	tallies, err := s.pollRepo.CountVotes(ctx, pollID)
	if err != nil {
		return nil, err
	}

	// An empty result means either a poll with no options or no poll at
	// all; only the latter is an error.
	if len(tallies) == 0 {
		poll, err := s.pollRepo.GetByID(ctx, pollID)
		if err != nil {
			return nil, err
		}
		if poll == nil {
			return nil, domain.NewNotFound("no poll found with this ID")
		}
	}

	return &domain.PollTally{PollID: pollID, Options: tallies}, nil
}
