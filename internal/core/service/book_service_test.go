package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shelfmark/book-tracker/internal/core/domain"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

// memBookRepo mimics the Mongo repository, including the per-user
// (title, first author) uniqueness constraint.
type memBookRepo struct {
	seq        int
	books      map[string]*domain.Book
	lastFilter ports.ListBooksFilter
}

func newMemBookRepo() *memBookRepo {
	return &memBookRepo{books: make(map[string]*domain.Book)}
}

func (r *memBookRepo) Create(_ context.Context, book *domain.Book) (*domain.Book, error) {
	for _, b := range r.books {
		if b.UserID == book.UserID && b.Title == book.Title && b.Authors[0] == book.Authors[0] {
			return nil, domain.ErrDuplicateBook
		}
	}
	r.seq++
	created := *book
	created.ID = "book-" + strconv.Itoa(r.seq)
	r.books[created.ID] = &created
	copied := created
	return &copied, nil
}

func (r *memBookRepo) List(_ context.Context, filter ports.ListBooksFilter) ([]*domain.Book, error) {
	r.lastFilter = filter
	out := []*domain.Book{}
	for _, b := range r.books {
		if b.UserID != filter.UserID {
			continue
		}
		if filter.Author != "" && !strings.EqualFold(b.Authors[0], filter.Author) {
			continue
		}
		copied := *b
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memBookRepo) Delete(_ context.Context, userID, bookID string) error {
	b, ok := r.books[bookID]
	if !ok || b.UserID != userID {
		return domain.ErrBookNotFound
	}
	delete(r.books, bookID)
	return nil
}

func newBookService(repo *memBookRepo) *BookService {
	return NewBookService(repo, zerolog.Nop())
}

func TestAddCleansInput(t *testing.T) {
	repo := newMemBookRepo()
	svc := newBookService(repo)

	book, err := svc.Add(context.Background(), "user-1", ports.AddBookInput{
		Title:   "  The Hobbit  ",
		Authors: []string{" J.R.R. Tolkien ", "J.R.R. Tolkien", ""},
	})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if book.Title != "The Hobbit" {
		t.Errorf("title = %q, want trimmed", book.Title)
	}
	if len(book.Authors) != 1 || book.Authors[0] != "J.R.R. Tolkien" {
		t.Errorf("authors = %v, want deduplicated single author", book.Authors)
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	rating := 5.5
	pages := 0
	cases := []struct {
		name  string
		input ports.AddBookInput
	}{
		{"empty title", ports.AddBookInput{Title: "  ", Authors: []string{"A"}}},
		{"no authors", ports.AddBookInput{Title: "T", Authors: nil}},
		{"authors all blank", ports.AddBookInput{Title: "T", Authors: []string{"", "  "}}},
		{"title too long", ports.AddBookInput{Title: strings.Repeat("x", 301), Authors: []string{"A"}}},
		{"rating out of range", ports.AddBookInput{Title: "T", Authors: []string{"A"}, Rating: &rating}},
		{"zero page count", ports.AddBookInput{Title: "T", Authors: []string{"A"}, PageCount: &pages}},
	}

	svc := newBookService(newMemBookRepo())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), "user-1", tc.input); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAddDuplicateAfterNormalization(t *testing.T) {
	svc := newBookService(newMemBookRepo())

	first := ports.AddBookInput{Title: "Dune", Authors: []string{"Frank Herbert"}}
	if _, err := svc.Add(context.Background(), "user-1", first); err != nil {
		t.Fatalf("first Add: %v", err)
	}

	// Whitespace variants collapse to the same (title, first author) pair.
	dup := ports.AddBookInput{Title: " Dune ", Authors: []string{" Frank Herbert "}}
	if _, err := svc.Add(context.Background(), "user-1", dup); !errors.Is(err, domain.ErrDuplicateBook) {
		t.Fatalf("err = %v, want ErrDuplicateBook", err)
	}

	// A different user may save the same book.
	if _, err := svc.Add(context.Background(), "user-2", first); err != nil {
		t.Fatalf("other user's Add: %v", err)
	}
}

func TestListScopesToOwnerAndTrimsFilter(t *testing.T) {
	repo := newMemBookRepo()
	svc := newBookService(repo)

	if _, err := svc.Add(context.Background(), "user-1", ports.AddBookInput{Title: "Dune", Authors: []string{"Frank Herbert"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if _, err := svc.Add(context.Background(), "user-2", ports.AddBookInput{Title: "Emma", Authors: []string{"Jane Austen"}}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	books, err := svc.List(context.Background(), "user-1", "  Frank Herbert ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(books) != 1 || books[0].Title != "Dune" {
		t.Fatalf("books = %+v, want only user-1's Dune", books)
	}
	if repo.lastFilter.Author != "Frank Herbert" {
		t.Fatalf("filter author = %q, want trimmed", repo.lastFilter.Author)
	}
}

func TestDeleteForeignBookIsNotFound(t *testing.T) {
	repo := newMemBookRepo()
	svc := newBookService(repo)

	book, err := svc.Add(context.Background(), "user-1", ports.AddBookInput{Title: "Dune", Authors: []string{"Frank Herbert"}})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(context.Background(), "user-2", book.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrBookNotFound", err)
	}

	if err := svc.Delete(context.Background(), "user-1", book.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", book.ID); !errors.Is(err, domain.ErrBookNotFound) {
		t.Fatalf("second delete err = %v, want ErrBookNotFound", err)
	}
}
