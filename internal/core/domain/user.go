package domain

import (
	"errors"
	"time"
)

const (
	RoleClientUser    = "client-user"
	RoleClientManager = "client-manager"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email is already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account that can authenticate against the service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Gender       string    `json:"gender"`
	Avatar       string    `json:"avatar"`
	Age          int       `json:"age"`
	DoctorID     string    `json:"doctor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserUpdate carries a partial profile update. Nil fields are left untouched.
// Email and role are deliberately absent: neither changes after registration.
type UserUpdate struct {
	Name     *string
	Phone    *string
	Gender   *string
	Avatar   *string
	Age      *int
	DoctorID *string
}

// Empty reports whether the update would change nothing.
func (u UserUpdate) Empty() bool {
	return u.Name == nil && u.Phone == nil && u.Gender == nil &&
		u.Avatar == nil && u.Age == nil && u.DoctorID == nil
}

// RegisterInput is the payload accepted by registration.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// EmailExists is the payload of an email existence probe.
type EmailExists struct {
	Exists bool `json:"exists"`
}
