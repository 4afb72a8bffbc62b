package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/core/ports"
	"github.com/clinicflow/auth-service/internal/pkg/password"
	"github.com/clinicflow/auth-service/internal/pkg/token"
)

// User-facing messages. Unknown email, wrong password and wrong role share one
// message so callers cannot tell which factor failed.
const (
	MsgInvalidCredentials = "Email or Password is not correct"
	MsgEmailInUse         = "Email is already in use"
	MsgPasswordMismatch   = "Passwords do not match"
	MsgPasswordTooLong    = "Password must be at most 72 bytes"
)

const (
	defaultAccessTTL            = 24 * time.Hour
	defaultRefreshTTL           = 48 * time.Hour
	defaultStandaloneRefreshTTL = 7 * 24 * time.Hour
)

// AuthConfig holds the signing secrets and token lifetimes. Secret signs standard
// logins and standalone refresh tokens; WebSecret signs manager logins.
type AuthConfig struct {
	Secret               string
	WebSecret            string
	AccessTTL            time.Duration
	RefreshTTL           time.Duration
	StandaloneRefreshTTL time.Duration
}

// AuthService implements login, manager login, registration, email probing and
// refresh token issuance.
type AuthService struct {
	repo                 ports.UserRepository
	signer               *token.Signer
	webSigner            *token.Signer
	accessTTL            time.Duration
	refreshTTL           time.Duration
	standaloneRefreshTTL time.Duration
	log                  zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(repo ports.UserRepository, cfg AuthConfig, log zerolog.Logger) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	if cfg.StandaloneRefreshTTL <= 0 {
		cfg.StandaloneRefreshTTL = defaultStandaloneRefreshTTL
	}
	return &AuthService{
		repo:                 repo,
		signer:               token.NewSigner(cfg.Secret),
		webSigner:            token.NewSigner(cfg.WebSecret),
		accessTTL:            cfg.AccessTTL,
		refreshTTL:           cfg.RefreshTTL,
		standaloneRefreshTTL: cfg.StandaloneRefreshTTL,
		log:                  log,
	}
}

// Login verifies email and password and issues a token pair signed with the
// primary secret.
func (s *AuthService) Login(ctx context.Context, email, pass string) (res domain.Result[domain.TokenPair]) {
	defer recoverFailure(s.log, "login", &res)
	return s.login(ctx, "login", email, pass, "", s.signer)
}

// LoginWeb is Login restricted to managers, signed with the web secret.
func (s *AuthService) LoginWeb(ctx context.Context, email, pass string) (res domain.Result[domain.TokenPair]) {
	defer recoverFailure(s.log, "login web", &res)
	return s.login(ctx, "login web", email, pass, domain.RoleClientManager, s.webSigner)
}

func (s *AuthService) login(ctx context.Context, op, email, pass, role string, signer *token.Signer) domain.Result[domain.TokenPair] {
	user, err := s.verify(ctx, email, pass, role)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		s.log.Debug().Str("op", op).Msg("credentials rejected")
		return domain.Fail[domain.TokenPair](http.StatusUnprocessableEntity, MsgInvalidCredentials)
	}
	if err != nil {
		return internalFailure[domain.TokenPair](s.log, op, err)
	}

	pair, err := s.issuePair(signer, user.ID)
	if err != nil {
		return internalFailure[domain.TokenPair](s.log, op, err)
	}

	s.log.Info().Str("op", op).Str("user_id", user.ID).Msg("user logged in")
	return domain.Succeed("Login successful", pair)
}

// verify resolves every rejection reason to domain.ErrInvalidCredentials. When
// role is non-empty the user must hold it.
func (s *AuthService) verify(ctx context.Context, email, pass, role string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := password.Matches(user.PasswordHash, pass)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if role != "" && user.Role != role {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) issuePair(signer *token.Signer, userID string) (domain.TokenPair, error) {
	access, err := signer.Sign(userID, token.TypeAccess, s.accessTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("access token: %w", err)
	}
	refresh, err := signer.Sign(userID, token.TypeRefresh, s.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("refresh token: %w", err)
	}
	return domain.TokenPair{Token: access, RefreshToken: refresh}, nil
}

// Register creates a client-user account. The duplicate email check runs before
// the password confirmation check.
func (s *AuthService) Register(ctx context.Context, in domain.RegisterInput) (res domain.Result[domain.User]) {
	defer recoverFailure(s.log, "register", &res)

	_, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		s.log.Debug().Msg("registration rejected: email in use")
		return domain.Fail[domain.User](http.StatusUnprocessableEntity, MsgEmailInUse)
	case !errors.Is(err, domain.ErrUserNotFound):
		return internalFailure[domain.User](s.log, "register", fmt.Errorf("find user: %w", err))
	}

	if in.Password != in.ConfirmPassword {
		s.log.Debug().Msg("registration rejected: password mismatch")
		return domain.Fail[domain.User](http.StatusUnprocessableEntity, MsgPasswordMismatch)
	}

	hash, err := password.Hash(in.Password)
	if errors.Is(err, password.ErrTooLong) {
		s.log.Debug().Msg("registration rejected: password too long")
		return domain.Fail[domain.User](http.StatusUnprocessableEntity, MsgPasswordTooLong)
	}
	if err != nil {
		return internalFailure[domain.User](s.log, "register", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         domain.RoleClientUser,
		Name:         in.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if errors.Is(err, domain.ErrEmailInUse) {
		// Lost a race with a concurrent registration; the unique index caught it.
		return domain.Fail[domain.User](http.StatusUnprocessableEntity, MsgEmailInUse)
	}
	if err != nil {
		return internalFailure[domain.User](s.log, "register", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return domain.Succeed("Register successful", *created)
}

// CheckEmailExists reports whether an account uses email. Only a store fault fails.
func (s *AuthService) CheckEmailExists(ctx context.Context, email string) (res domain.Result[domain.EmailExists]) {
	defer recoverFailure(s.log, "check email", &res)

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return domain.Succeed("Email check completed", domain.EmailExists{Exists: true})
	case errors.Is(err, domain.ErrUserNotFound):
		return domain.Succeed("Email check completed", domain.EmailExists{Exists: false})
	default:
		return internalFailure[domain.EmailExists](s.log, "check email", fmt.Errorf("find user: %w", err))
	}
}

// GenerateRefreshToken signs a standalone refresh token for userID. The store is
// not consulted.
func (s *AuthService) GenerateRefreshToken(_ context.Context, userID string) (res domain.Result[domain.RefreshToken]) {
	defer recoverFailure(s.log, "refresh token", &res)

	refresh, err := s.signer.Sign(userID, token.TypeRefresh, s.standaloneRefreshTTL)
	if err != nil {
		return internalFailure[domain.RefreshToken](s.log, "refresh token", err)
	}
	return domain.Succeed("Refresh token generated", domain.RefreshToken{RefreshToken: refresh})
}

func internalFailure[T any](log zerolog.Logger, op string, err error) domain.Result[T] {
	log.Error().Err(err).Str("op", op).Msg("auth operation failed")
	return domain.Fail[T](http.StatusInternalServerError, fmt.Sprintf("%s failed: %v", op, err))
}

func recoverFailure[T any](log zerolog.Logger, op string, res *domain.Result[T]) {
	if r := recover(); r != nil {
		*res = internalFailure[T](log, op, fmt.Errorf("panic: %v", r))
	}
}
