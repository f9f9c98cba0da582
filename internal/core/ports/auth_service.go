package ports

import (
	"context"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

// AuthService implements registration, login, and identity resolution.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Credential, error)
	// Logout revokes a presented credential. Idempotent.
	Logout(ctx context.Context, presented string) error
	// CurrentUser resolves a presented credential to its user, or returns
	// (nil, nil) when the caller is anonymous. Anonymous is not an error.
	CurrentUser(ctx context.Context, presented string) (*domain.User, error)
}
