package ports

import (
	"context"

	"github.com/clinicflow/auth-service/internal/core/domain"
)

// UserService manages the profile of an already authenticated user.
type UserService interface {
	Profile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	List(ctx context.Context) ([]*domain.User, error)
	Role(ctx context.Context, userID string) (string, error)
}
