package services

import (
	"context"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) ports.UserService {
	return &userService{repo: repo}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*domain.Profile, error) {
	profile, err := s.repo.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.NewNotFound("no user found with this ID")
	}
	return profile, nil
}

func (s *userService) VotedPolls(ctx context.Context, userID int64) ([]domain.Vote, error) {
	return s.repo.ListVotes(ctx, userID)
}
