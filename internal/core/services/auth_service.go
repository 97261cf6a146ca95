package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type authService struct {
	userRepo ports.UserRepository
	tokens   ports.TokenService
}

func NewAuthService(userRepo ports.UserRepository, tokens ports.TokenService) ports.AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, ports.TokenPair, error) {
	if input.Name == "" {
		return nil, ports.TokenPair{}, domain.NewValidation("please provide a name")
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, ports.TokenPair{}, domain.NewValidation("email is invalid")
	}
	if input.Password == "" {
		return nil, ports.TokenPair{}, domain.NewValidation("please provide a password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ports.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, ports.TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	return user, pair, nil
}

func (s *authService) Login(ctx context.Context, creds ports.Credentials) (*domain.User, ports.TokenPair, error) {
	if creds.Email == "" {
		return nil, ports.TokenPair{}, domain.NewValidation("please provide an email")
	}
	if creds.Password == "" {
		return nil, ports.TokenPair{}, domain.NewValidation("please provide a password")
	}
	if !emailPattern.MatchString(creds.Email) {
		return nil, ports.TokenPair{}, domain.NewValidation("email is invalid")
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	// Same message for unknown email and wrong password.
	if user == nil {
		return nil, ports.TokenPair{}, domain.NewUnauthenticated("incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, ports.TokenPair{}, domain.NewUnauthenticated("incorrect email or password")
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, ports.TokenPair{}, err
	}
	return user, pair, nil
}

// Refresh rotates the token pair: the refresh token proves the session,
// the user is re-read to catch deleted accounts, and both tokens are
// reissued.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (ports.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return ports.TokenPair{}, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return ports.TokenPair{}, err
	}
	if user == nil {
		return ports.TokenPair{}, domain.NewUnauthenticated("something went wrong, please login again")
	}

	return s.issuePair(user)
}

func (s *authService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUnauthenticated("something went wrong, please login again")
	}
	return user, nil
}

func (s *authService) issuePair(user *domain.User) (ports.TokenPair, error) {
	access, err := s.tokens.IssueAccessToken(user)
	if err != nil {
		return ports.TokenPair{}, err
	}
	refresh, err := s.tokens.IssueRefreshToken(user)
	if err != nil {
		return ports.TokenPair{}, err
	}
	return ports.TokenPair{Access: access, Refresh: refresh}, nil
}
