package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lively-votes/api/internal/core/domain"
	"github.com/lively-votes/api/internal/core/ports"
)

type tokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) ports.TokenService {
	return &tokenService{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (s *tokenService) IssueAccessToken(user *domain.User) (string, error) {
	return s.sign(user, s.accessSecret, s.accessTTL)
}

func (s *tokenService) IssueRefreshToken(user *domain.User) (string, error) {
	return s.sign(user, s.refreshSecret, s.refreshTTL)
}

func (s *tokenService) VerifyAccess(token string) (ports.TokenClaims, error) {
	return s.verify(token, s.accessSecret)
}

func (s *tokenService) VerifyRefresh(token string) (ports.TokenClaims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *tokenService) sign(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprintf("%d", user.ID),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// verify collapses every failure mode, tampering and expiry alike, into
// one Unauthenticated outcome.
func (s *tokenService) verify(tokenStr string, secret []byte) (ports.TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return ports.TokenClaims{}, domain.NewUnauthenticated("you are not logged in, please log in")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ports.TokenClaims{}, domain.NewUnauthenticated("you are not logged in, please log in")
	}

	sub, _ := mapClaims["sub"].(string)
	var userID int64
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID <= 0 {
		return ports.TokenClaims{}, domain.NewUnauthenticated("you are not logged in, please log in")
	}
	email, _ := mapClaims["email"].(string)

	return ports.TokenClaims{UserID: userID, Email: email}, nil
}
