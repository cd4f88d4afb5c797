package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"contactbook/internal/auth"
	apperrors "contactbook/internal/errors"
	"contactbook/internal/model"
	"contactbook/internal/repository"
)

// TokenIssuer signs tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *model.User) (string, time.Time, error)
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService handles authentication operations.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*LoginResult, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	verify   func(hash, password string) bool
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		verify:   auth.VerifyPassword,
	}
}

// Authenticate checks the credentials and issues a signed token.
// Unknown usernames and wrong passwords yield the same ErrInvalidCredentials.
func (s *authService) Authenticate(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, apperrors.ErrInvalidRequest
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Pay the same bcrypt cost as a wrong password.
			s.verify(auth.DummyPasswordHash(), password)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.verify(user.PasswordHash, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}
