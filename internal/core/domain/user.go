package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")

// emailShape is intentionally loose: local@domain.tld. Anything stricter
// rejects real-world addresses; anything looser lets garbage into the
// unique index.
var emailShape = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeEmail lowercases and trims an email address. It must be applied
// on every read and write path that touches the email column; the unique
// index is only as good as the normalization in front of it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidEmail reports whether the (already normalized) address has the
// expected local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailShape.MatchString(email)
}
