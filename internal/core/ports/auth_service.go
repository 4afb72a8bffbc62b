package ports

import (
	"context"

	"github.com/clinicflow/auth-service/internal/core/domain"
)

// AuthService authenticates users and issues tokens. Every operation reports its
// outcome through the Result envelope instead of an error.
type AuthService interface {
	Login(ctx context.Context, email, password string) domain.Result[domain.TokenPair]
	LoginWeb(ctx context.Context, email, password string) domain.Result[domain.TokenPair]
	Register(ctx context.Context, input domain.RegisterInput) domain.Result[domain.User]
	CheckEmailExists(ctx context.Context, email string) domain.Result[domain.EmailExists]
	GenerateRefreshToken(ctx context.Context, userID string) domain.Result[domain.RefreshToken]
}
