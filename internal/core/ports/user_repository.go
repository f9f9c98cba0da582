package ports

import (
	"context"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Implementations must
// enforce email uniqueness with a storage-level constraint; an application
// check-then-insert is not enough under concurrent registration.
type UserRepository interface {
	FindByEmail(ctx context.Context, normalizedEmail string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
