package services

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
	"github.com/sirupsen/logrus"
)

type voteService struct {
	pollRepo ports.PollRepository
	voteRepo ports.VoteRepository
	userRepo ports.UserRepository
	broker   ports.Broker
}

func NewVoteService(pollRepo ports.PollRepository, voteRepo ports.VoteRepository, userRepo ports.UserRepository, broker ports.Broker) ports.VoteService {
	return &voteService{
		pollRepo: pollRepo,
		voteRepo: voteRepo,
		userRepo: userRepo,
		broker:   broker,
	}
}

func (s *voteService) CastVote(ctx context.Context, input ports.CastVoteInput) (*domain.Vote, bool, error) {
	voter, err := s.userRepo.GetByID(ctx, input.VoterID)
	if err != nil {
		return nil, false, err
	}
	if voter == nil {
		return nil, false, domain.NewNotFound("no user found with this ID")
	}

	poll, err := s.pollRepo.GetByID(ctx, input.PollID)
	if err != nil {
		return nil, false, err
	}
	if poll == nil {
		return nil, false, domain.NewNotFound("no poll found with this ID")
	}

	if poll.CreatorID == input.VoterID {
		return nil, false, domain.NewForbidden("you can't vote on your own poll")
	}

	option, err := s.pollRepo.GetOption(ctx, input.PollID, input.OptionID)
	if err != nil {
		return nil, false, err
	}
	if option == nil {
		return nil, false, domain.NewNotFound("this option does not belong to the specified poll")
	}

	existing, err := s.voteRepo.FindByPollAndVoter(ctx, input.PollID, input.VoterID)
	if err != nil {
		return nil, false, err
	}

	// Vote change: move the existing row to the new option.
	if existing != nil {
		vote, err := s.voteRepo.UpdateOption(ctx, input.PollID, input.VoterID, input.OptionID)
		if err != nil {
			return nil, false, err
		}
		if vote == nil {
			// Row vanished between the read and the update; treat as a
			// fresh first vote below.
			existing = nil
		} else {
			s.notifyTallyChanged(input.PollID)
			return vote, false, nil
		}
	}

	vote := &domain.Vote{
		VoterID:  input.VoterID,
		PollID:   input.PollID,
		OptionID: input.OptionID,
	}
	// Concurrent first votes race on the unique constraint; the
	// repository turns the loser's error into a Conflict.
	if err := s.voteRepo.Save(ctx, vote); err != nil {
		return nil, false, err
	}

	s.notifyTallyChanged(input.PollID)
	return vote, true, nil
}

func (s *voteService) VotedOption(ctx context.Context, voterID, pollID int64) (int64, error) {
	voter, err := s.userRepo.GetByID(ctx, voterID)
	if err != nil {
		return domain.NoVote, err
	}
	if voter == nil {
		return domain.NoVote, domain.NewNotFound("no user found with this ID")
	}

	return s.voteRepo.VotedOption(ctx, voterID, pollID)
}

// notifyTallyChanged is fire-and-forget: delivery is not guaranteed and
// clients self-heal by refetching on view.
func (s *voteService) notifyTallyChanged(pollID int64) {
	logrus.WithField("poll_id", pollID).Debug("broadcasting tally change")
	s.broker.Publish(domain.TallyEvent{PollID: pollID})
}
