package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/auth"
	"github.com/spec-kit/ticketing-api/internal/config"
	"github.com/spec-kit/ticketing-api/internal/domain"
	"github.com/spec-kit/ticketing-api/internal/repository"
)

// BootstrapService seeds the records the service needs before it can accept
// logins.
type BootstrapService struct {
	users      repository.UserRepository
	bcryptCost int
	logger     *zap.Logger
}

// NewBootstrapService constructs the service.
func NewBootstrapService(users repository.UserRepository, bcryptCost int, logger *zap.Logger) *BootstrapService {
	return &BootstrapService{users: users, bcryptCost: bcryptCost, logger: logger}
}

// EnsureAdmin creates the administrator account unless one with the same
// username exists. Existing accounts are never modified, so running it on
// every start is safe. It reports whether an account was created.
func (s *BootstrapService) EnsureAdmin(ctx context.Context, cfg config.BootstrapConfig) (bool, error) {
	username := strings.TrimSpace(cfg.AdminUsername)
	if username == "" || cfg.AdminPassword == "" {
		return false, errors.New("bootstrap admin username and password are required")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		s.logger.Debug("admin account already present", zap.String("username", username))
		return false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword, s.bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	created, err := s.users.CreateIfAbsent(ctx, &domain.User{Username: username, PasswordHash: hash})
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	if created {
		s.logger.Info("admin account created", zap.String("username", username))
	}
	return created, nil
}
