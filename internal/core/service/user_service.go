package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/core/ports"
	"github.com/clinicflow/auth-service/internal/pkg/password"
)

type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("profile: %w", err)
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of update. An empty update returns the
// current record without writing.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	if update.Empty() {
		return s.Profile(ctx, userID)
	}

	user, err := s.repo.Update(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("profile updated")
	return user, nil
}

// ChangePassword replaces the password after re-checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) > password.MaxLength {
		return domain.ErrPasswordTooLong
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	ok, err := password.Matches(user.PasswordHash, currentPassword)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	if !ok {
		return domain.ErrInvalidCredentials
	}

	if _, err := s.repo.ChangePassword(ctx, userID, newPassword); err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return domain.ErrPasswordTooLong
		}
		return fmt.Errorf("change password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Role returns the stored role of userID. Tokens only carry the user id, so
// authorization always reads the role from the store.
func (s *UserService) Role(ctx context.Context, userID string) (string, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("role: %w", err)
	}
	return user.Role, nil
}
