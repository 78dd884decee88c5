package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spec-kit/ticketing-api/internal/auth"
	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/repository"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int

	dummyOnce sync.Once
	dummyHash string
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return NewAuthServiceWithTokens(users, auth.NewTokenManager(cfg.Auth), cfg.Auth.BcryptCost)
}

// NewAuthServiceWithTokens builds the service around an existing token manager.
func NewAuthServiceWithTokens(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   tokens,
		bcryptCost: bcryptCost,
	}
}

// Login authenticates a username/password pair and issues a token. Unknown
// usernames and wrong passwords produce the same error after the same amount
// of hashing work.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.IssuedToken, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return domain.IssuedToken{}, apperrors.NewValidationError("username and password required", nil)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			_ = auth.ComparePassword(s.placeholderHash(), password)
			return domain.IssuedToken{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return domain.IssuedToken{}, fmt.Errorf("load user: %w", err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return domain.IssuedToken{}, apperrors.NewUnauthenticated("invalid credentials")
		}
		return domain.IssuedToken{}, fmt.Errorf("compare password: %w", err)
	}

	token, err := s.tokenMgr.GenerateToken(user.Username)
	if err != nil {
		return domain.IssuedToken{}, err
	}
	return token, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := auth.HashPassword("placeholder-password", s.bcryptCost)
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
