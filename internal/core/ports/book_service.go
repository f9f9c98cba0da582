package ports

import (
	"context"

	"github.com/shelfmark/book-tracker/internal/core/domain"
)

// AddBookInput carries all data needed to save a book to a user's list.
type AddBookInput struct {
	Title       string
	Authors     []string
	Description string
	Rating      *float64
	PageCount   *int
	ISBN        string
	Notes       string
	Thumbnail   string
	InfoLink    string
	Genre       string
}

// BookService defines use-case operations on a user's book list. Every
// operation is scoped to the authenticated caller's userID; the service
// trusts the gate to have resolved it.
type BookService interface {
	Add(ctx context.Context, userID string, input AddBookInput) (*domain.Book, error)
	List(ctx context.Context, userID, authorFilter string) ([]*domain.Book, error)
	Delete(ctx context.Context, userID, bookID string) error
}
