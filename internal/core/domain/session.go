package domain

import (
	"errors"
	"time"
)

// Credential verification failures. The HTTP layer maps all of them to 401;
// keeping them distinct lets the session store clean up lazily and lets
// tests assert on the exact failure mode.
var ErrUnauthenticated = errors.New("authentication required")
var ErrInvalidToken = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")
var ErrSessionNotFound = errors.New("session not found")
var ErrSessionExpired = errors.New("session expired")

// ErrRevokeUnsupported is returned by the stateless token strategy: a signed
// token cannot be invalidated before its expiry without a deny list.
var ErrRevokeUnsupported = errors.New("credential cannot be revoked")

// Session is a server-side session record. Lifecycle: Created → Active →
// (Expired | LoggedOut). Both terminal states end in deletion; an Active
// session never renews itself on verification.
type Session struct {
	ID        string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given instant.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
