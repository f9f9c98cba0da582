package ports

import (
	"context"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

// ListBooksFilter carries the query parameters for listing a user's books.
// UserID is always set by the service layer; books never leak across owners.
type ListBooksFilter struct {
	UserID string
	Author string // optional: case-insensitive match on the primary author
}

// BookRepository defines persistence for saved books.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	// List returns the user's books sorted by creation time, newest first.
	List(ctx context.Context, filter ListBooksFilter) ([]*domain.Book, error)
	// Delete removes the book only when it is owned by userID. A missing or
	// foreign book returns domain.ErrBookNotFound either way.
	Delete(ctx context.Context, userID, bookID string) error
}
