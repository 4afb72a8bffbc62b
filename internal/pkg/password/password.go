// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor applied to every new hash.
const Cost = 10

// MaxLength is the longest password bcrypt accepts, in bytes.
const MaxLength = 72

// ErrTooLong is returned by Hash for passwords over MaxLength bytes.
var ErrTooLong = bcrypt.ErrPasswordTooLong

// Hash returns a salted bcrypt hash of plain.
func Hash(plain string) (string, error) {
	if len(plain) > MaxLength {
		return "", fmt.Errorf("hash password: %w", ErrTooLong)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Matches reports whether plain is the password behind hash. A malformed hash is an
// error; a wrong password is not. Passwords over MaxLength never match.
func Matches(hash, plain string) (bool, error) {
	if len(plain) > MaxLength {
		return false, nil
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("compare password: %w", err)
	}
}
