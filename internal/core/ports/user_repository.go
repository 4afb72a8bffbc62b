package ports

import (
	"context"

	"github.com/clinicflow/auth-service/internal/core/domain"
)

// UserRepository is the credential store the services depend on.
// Lookups of missing records return domain.ErrUserNotFound.
type UserRepository interface {
	FindAll(ctx context.Context) ([]*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists user as given. It does not pre-check email uniqueness; a unique
	// constraint violation in the store surfaces as domain.ErrEmailInUse.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, update domain.UserUpdate) (*domain.User, error)
	// ChangePassword hashes newPassword before persisting it.
	ChangePassword(ctx context.Context, id, newPassword string) (*domain.User, error)
}
