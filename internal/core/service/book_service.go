package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const maxTitleLength = 300

// BookService implements the owner-scoped book list operations.
type BookService struct {
	repo ports.BookRepository
	log  zerolog.Logger
}

func NewBookService(repo ports.BookRepository, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, log: log}
}

// Add saves a book to the user's list. Title and at least one author are
// required; authors are trimmed and deduplicated before the duplicate check
// so "Tolkien " and "Tolkien" collapse to one entry.
func (s *BookService) Add(ctx context.Context, userID string, input ports.AddBookInput) (*domain.Book, error) {
	title := strings.TrimSpace(input.Title)
	authors := domain.CleanAuthors(input.Authors)

	if title == "" || len(authors) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, domain.ErrInvalidInput
	}
	if input.Rating != nil && (*input.Rating < 0 || *input.Rating > 5) {
		return nil, domain.ErrInvalidInput
	}
	if input.PageCount != nil && *input.PageCount < 1 {
		return nil, domain.ErrInvalidInput
	}

	book := &domain.Book{
		UserID:      userID,
		Title:       title,
		Authors:     authors,
		Description: strings.TrimSpace(input.Description),
		Rating:      input.Rating,
		PageCount:   input.PageCount,
		ISBN:        strings.TrimSpace(input.ISBN),
		Notes:       strings.TrimSpace(input.Notes),
		Thumbnail:   strings.TrimSpace(input.Thumbnail),
		InfoLink:    strings.TrimSpace(input.InfoLink),
		Genre:       strings.TrimSpace(input.Genre),
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", userID).Str("book_id", created.ID).Str("title", created.Title).Msg("book saved")
	return created, nil
}

// List returns the user's books, newest first, optionally filtered by
// primary author.
func (s *BookService) List(ctx context.Context, userID, authorFilter string) ([]*domain.Book, error) {
	return s.repo.List(ctx, ports.ListBooksFilter{
		UserID: userID,
		Author: strings.TrimSpace(authorFilter),
	})
}

// Delete removes one of the user's books. A book owned by someone else is
// reported as not found, never as forbidden, so ids cannot be probed.
func (s *BookService) Delete(ctx context.Context, userID, bookID string) error {
	if err := s.repo.Delete(ctx, userID, bookID); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Str("book_id", bookID).Msg("book deleted")
	return nil
}
