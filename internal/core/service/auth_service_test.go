package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinicflow/auth-service/internal/core/domain"
	"github.com/clinicflow/auth-service/internal/pkg/password"
	"github.com/clinicflow/auth-service/internal/pkg/token"
)

const (
	testSecret    = "secret"
	testWebSecret = "web-secret"
)

func newAuthSvc(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, AuthConfig{Secret: testSecret, WebSecret: testWebSecret}, zerolog.Nop())
}

func register(t *testing.T, svc *AuthService, email, pass string) *domain.User {
	t.Helper()
	res := svc.Register(context.Background(), domain.RegisterInput{
		Name: "Test", Email: email, Password: pass, ConfirmPassword: pass,
	})
	if !res.OK() {
		t.Fatalf("register failed: %s", res.Message)
	}
	return res.Data
}

func parseClaims(t *testing.T, secret, raw string) *token.Claims {
	t.Helper()
	claims, err := token.NewSigner(secret).Parse(raw)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func lifetime(c *token.Claims) time.Duration {
	return c.ExpiresAt.Sub(c.IssuedAt.Time)
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	user := register(t, svc, "carol@example.com", "s3cret")

	res := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if !res.OK() || res.StatusCode != http.StatusOK {
		t.Fatalf("expected success, got %d %s", res.StatusCode, res.Message)
	}

	access := parseClaims(t, testSecret, res.Data.Token)
	if access.UserID != user.ID {
		t.Fatalf("expected userId %s, got %s", user.ID, access.UserID)
	}
	if lifetime(access) != 24*time.Hour {
		t.Fatalf("expected 1 day access token, got %s", lifetime(access))
	}
	if access.Type != token.TypeAccess {
		t.Fatalf("expected access typ, got %q", access.Type)
	}

	refresh := parseClaims(t, testSecret, res.Data.RefreshToken)
	if refresh.UserID != user.ID {
		t.Fatalf("expected refresh userId %s, got %s", user.ID, refresh.UserID)
	}
	if lifetime(refresh) != 48*time.Hour {
		t.Fatalf("expected 2 day refresh token, got %s", lifetime(refresh))
	}
	if refresh.Type != token.TypeRefresh {
		t.Fatalf("expected refresh typ, got %q", refresh.Type)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	register(t, svc, "dave@example.com", "goodpass")

	missing := svc.Login(context.Background(), "ghost@example.com", "goodpass")
	if missing.OK() || missing.StatusCode != http.StatusUnprocessableEntity || missing.Message != MsgInvalidCredentials {
		t.Fatalf("unexpected result for unknown email: %+v", missing)
	}

	for _, wrong := range []string{"", "badpass", "goodpas", "GOODPASS", "goodpass "} {
		res := svc.Login(context.Background(), "dave@example.com", wrong)
		if res.Status != missing.Status || res.StatusCode != missing.StatusCode || res.Message != missing.Message {
			t.Fatalf("password %q: expected %+v, got %+v", wrong, missing, res)
		}
		if res.Data != nil {
			t.Fatalf("failed result must not carry data")
		}
	}
}

func TestAuthService_Login_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := newAuthSvc(repo)

	res := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
	if !strings.Contains(res.Message, "connection refused") {
		t.Fatalf("expected cause in message, got %q", res.Message)
	}
}

func TestAuthService_Login_RecoversFromPanic(t *testing.T) {
	repo := newStubUserRepo()
	repo.panicOn = "FindByEmail"
	svc := newAuthSvc(repo)

	res := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if res.StatusCode != http.StatusInternalServerError || res.OK() {
		t.Fatalf("expected failed 500, got %+v", res)
	}
}

func TestAuthService_LoginWeb_ManagerOnly(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	manager := repo.seed("boss@example.com", "pw", domain.RoleClientManager)
	repo.seed("user@example.com", "pw", domain.RoleClientUser)

	ok := svc.LoginWeb(context.Background(), "boss@example.com", "pw")
	if !ok.OK() {
		t.Fatalf("expected manager login to succeed: %s", ok.Message)
	}
	if parseClaims(t, testWebSecret, ok.Data.Token).UserID != manager.ID {
		t.Fatalf("unexpected userId in web token")
	}
	if _, err := token.NewSigner(testSecret).Parse(ok.Data.Token); err == nil {
		t.Fatalf("web token must not verify with the primary secret")
	}

	wrongCreds := svc.LoginWeb(context.Background(), "boss@example.com", "nope")
	wrongRole := svc.LoginWeb(context.Background(), "user@example.com", "pw")
	for _, res := range []domain.Result[domain.TokenPair]{wrongCreds, wrongRole} {
		if res.OK() || res.StatusCode != http.StatusUnprocessableEntity || res.Message != MsgInvalidCredentials {
			t.Fatalf("expected credential failure, got %+v", res)
		}
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	res := svc.Register(context.Background(), domain.RegisterInput{
		Name: "Alice", Email: "alice@example.com", Password: "pass123", ConfirmPassword: "pass123",
	})
	if !res.OK() || res.StatusCode != http.StatusOK {
		t.Fatalf("expected success, got %+v", res)
	}

	user := res.Data
	if user.ID == "" {
		t.Fatalf("expected persisted record with id")
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if ok, _ := password.Matches(user.PasswordHash, "pass123"); !ok {
		t.Fatalf("stored hash does not match password")
	}
	if user.Role != domain.RoleClientUser {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.Phone != "" || user.Gender != "" || user.Avatar != "" || user.Age != 0 || user.DoctorID != "" {
		t.Fatalf("expected empty profile fields, got %+v", user)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	register(t, svc, "bob@example.com", "pass")

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "bob@example.com", Password: "pass2", ConfirmPassword: "pass2",
	})
	if res.OK() || res.StatusCode != http.StatusUnprocessableEntity || res.Message != MsgEmailInUse {
		t.Fatalf("expected email in use, got %+v", res)
	}
}

func TestAuthService_Register_DuplicateWinsOverMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	register(t, svc, "bob@example.com", "pass")

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "bob@example.com", Password: "a", ConfirmPassword: "b",
	})
	if res.Message != MsgEmailInUse {
		t.Fatalf("expected %q, got %q", MsgEmailInUse, res.Message)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "erin@example.com", Password: "a", ConfirmPassword: "b",
	})
	if res.OK() || res.StatusCode != http.StatusUnprocessableEntity || res.Message != MsgPasswordMismatch {
		t.Fatalf("expected password mismatch, got %+v", res)
	}
	if repo.mutations != 0 {
		t.Fatalf("expected no store mutation, got %d", repo.mutations)
	}
}

func TestAuthService_Register_UniqueIndexViolation(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = domain.ErrEmailInUse
	svc := newAuthSvc(repo)

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "race@example.com", Password: "p", ConfirmPassword: "p",
	})
	if res.StatusCode != http.StatusUnprocessableEntity || res.Message != MsgEmailInUse {
		t.Fatalf("expected email in use, got %+v", res)
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.createErr = errors.New("disk full")
	svc := newAuthSvc(repo)

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "frank@example.com", Password: "p", ConfirmPassword: "p",
	})
	if res.StatusCode != http.StatusInternalServerError || !strings.Contains(res.Message, "disk full") {
		t.Fatalf("expected 500 with cause, got %+v", res)
	}
}

func TestAuthService_CheckEmailExists(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	register(t, svc, "gina@example.com", "pw")

	if res := svc.CheckEmailExists(context.Background(), "gina@example.com"); !res.OK() || !res.Data.Exists {
		t.Fatalf("expected exists=true, got %+v", res)
	}
	if res := svc.CheckEmailExists(context.Background(), "nobody@example.com"); !res.OK() || res.Data.Exists {
		t.Fatalf("expected exists=false, got %+v", res)
	}

	repo.findErr = errors.New("timeout")
	if res := svc.CheckEmailExists(context.Background(), "gina@example.com"); res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 on store fault, got %+v", res)
	}
}

func TestAuthService_GenerateRefreshToken_AnyID(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("store must not be consulted")
	svc := newAuthSvc(repo)

	for _, id := range []string{"user-1", "does-not-exist", ""} {
		res := svc.GenerateRefreshToken(context.Background(), id)
		if !res.OK() || res.StatusCode != http.StatusOK {
			t.Fatalf("id %q: expected success, got %+v", id, res)
		}
		claims := parseClaims(t, testSecret, res.Data.RefreshToken)
		if claims.UserID != id {
			t.Fatalf("expected userId %q, got %q", id, claims.UserID)
		}
		if lifetime(claims) != 7*24*time.Hour {
			t.Fatalf("expected 7 day lifetime, got %s", lifetime(claims))
		}
		if claims.Type != token.TypeRefresh {
			t.Fatalf("expected refresh typ, got %q", claims.Type)
		}
	}
}

func TestAuthService_EndToEnd(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	ctx := context.Background()

	reg := svc.Register(ctx, domain.RegisterInput{
		Email: "alice@example.com", Password: "secret123", ConfirmPassword: "secret123",
	})
	if !reg.OK() {
		t.Fatalf("register: %+v", reg)
	}

	if res := svc.CheckEmailExists(ctx, "alice@example.com"); !res.Data.Exists {
		t.Fatalf("expected alice to exist")
	}

	bad := svc.Login(ctx, "alice@example.com", "wrong")
	if bad.Status != domain.StatusFailed || bad.StatusCode != http.StatusUnprocessableEntity || bad.Message != "Email or Password is not correct" {
		t.Fatalf("unexpected wrong-password result: %+v", bad)
	}

	good := svc.Login(ctx, "alice@example.com", "secret123")
	if good.Status != domain.StatusSuccess || good.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login result: %+v", good)
	}
	if good.Data.Token == "" || good.Data.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", good.Data)
	}
}

func TestAuthService_Register_PasswordTooLong(t *testing.T) {
	repo := newStubUserRepo()
	svc := newAuthSvc(repo)
	long := strings.Repeat("p", 80)

	res := svc.Register(context.Background(), domain.RegisterInput{
		Email: "erin@example.com", Password: long, ConfirmPassword: long,
	})
	if res.OK() || res.StatusCode != http.StatusUnprocessableEntity || res.Message != MsgPasswordTooLong {
		t.Fatalf("expected 422 %q, got %+v", MsgPasswordTooLong, res)
	}
	if repo.mutations != 0 {
		t.Fatalf("expected no writes, got %d", repo.mutations)
	}

	login := svc.Login(context.Background(), "erin@example.com", long)
	if login.StatusCode != http.StatusUnprocessableEntity || login.Message != MsgInvalidCredentials {
		t.Fatalf("expected credential failure, got %+v", login)
	}
}
