package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/concierge-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

var ErrAuthDisabled = errors.New("token auth is disabled")

// AuthService issues access tokens carrying the caller's email. There are
// no passwords: identity is the email the concierge is acting for.
type AuthService struct {
	users *UserService
	cfg   *config.Config
}

func NewAuthService(users *UserService, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

func (s *AuthService) IssueToken(ctx context.Context, email string) (*dto.TokenResponse, error) {
	if !s.cfg.AuthEnabled() {
		return nil, ErrAuthDisabled
	}
	user, err := s.users.ResolveOrCreate(ctx, email)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiry)
	token, err := s.generateAccessToken(user, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return &dto.TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
		User:        dto.UserResponse{ID: user.ID, Email: user.Email},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(user.ID), 10),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
