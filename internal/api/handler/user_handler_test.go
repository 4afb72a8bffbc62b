package handler

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/clinicflow/auth-service/internal/core/domain"
)

type stubUserService struct {
	profileFn func(ctx context.Context, userID string) (*domain.User, error)
	updateFn  func(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error)
	changeFn  func(ctx context.Context, userID, current, next string) error
	listFn    func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubUserService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
	return s.updateFn(ctx, userID, update)
}

func (s *stubUserService) ChangePassword(ctx context.Context, userID, current, next string) error {
	return s.changeFn(ctx, userID, current, next)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Role(context.Context, string) (string, error) {
	return "", nil
}

// withUser simulates the Auth middleware having authenticated userID.
func withUser(userID string, h echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set("user_id", userID)
		return h(c)
	}
}

func TestUserHandler_Me(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		profileFn: func(ctx context.Context, userID string) (*domain.User, error) {
			return &domain.User{ID: userID, Email: "alice@example.com", PasswordHash: "$2a$10$hash"}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := serve(e, withUser("u1", h.Me), http.MethodGet, "/users/me", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	resp := decode(t, rec)
	if resp["id"] != "u1" || resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected body: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked")
	}
}

func TestUserHandler_Me_Unauthenticated(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubUserService{})

	rec := serve(e, h.Me, http.MethodGet, "/users/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateMe(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		updateFn: func(ctx context.Context, userID string, update domain.UserUpdate) (*domain.User, error) {
			if update.Name == nil || *update.Name != "Alicia" || update.Age == nil || *update.Age != 30 {
				t.Fatalf("unexpected update: %+v", update)
			}
			if update.Phone != nil {
				t.Fatalf("absent field must stay nil")
			}
			return &domain.User{ID: userID, Name: *update.Name, Age: *update.Age}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := serve(e, withUser("u1", h.UpdateMe), http.MethodPatch, "/users/me", `{"name":"Alicia","age":30}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = serve(e, withUser("u1", h.UpdateMe), http.MethodPatch, "/users/me", `{"age":-1}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for negative age, got %d", rec.Code)
	}
}

func TestUserHandler_ChangePassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changeFn: func(ctx context.Context, userID, current, next string) error {
			if current != "old" || next != "new" {
				t.Fatalf("unexpected args: %s %s", current, next)
			}
			return nil
		},
	}
	h := NewUserHandler(stub)

	rec := serve(e, withUser("u1", h.ChangePassword), http.MethodPut, "/users/me/password",
		`{"currentPassword":"old","newPassword":"new","confirmPassword":"new"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	rec = serve(e, withUser("u1", h.ChangePassword), http.MethodPut, "/users/me/password",
		`{"currentPassword":"old","newPassword":"new","confirmPassword":"other"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for confirmation mismatch, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		listFn: func(ctx context.Context) ([]*domain.User, error) {
			return []*domain.User{{ID: "u1"}, {ID: "u2"}}, nil
		},
	}
	h := NewUserHandler(stub)

	rec := serve(e, h.List, http.MethodGet, "/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if decode(t, rec)["total"] != float64(2) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserHandler_ChangePassword_TooLong(t *testing.T) {
	e := newTestEcho()
	stub := &stubUserService{
		changeFn: func(ctx context.Context, userID, current, next string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewUserHandler(stub)

	long := strings.Repeat("n", 80)
	rec := serve(e, withUser("u1", h.ChangePassword), http.MethodPut, "/users/me/password",
		`{"currentPassword":"old","newPassword":"`+long+`","confirmPassword":"`+long+`"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}
