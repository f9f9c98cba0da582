package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrBookNotFound = errors.New("book not found")
var ErrDuplicateBook = errors.New("book already saved")
var ErrInvalidBookID = errors.New("invalid book id")

// Book is a catalog entry saved to a user's personal list. Every query is
// scoped by UserID; a book is never visible outside its owner's list.
type Book struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Title       string    `json:"title"`
	Authors     []string  `json:"authors"`
	Description string    `json:"description,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	PageCount   *int      `json:"page_count,omitempty"`
	ISBN        string    `json:"isbn,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	InfoLink    string    `json:"info_link,omitempty"`
	Genre       string    `json:"genre,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CleanAuthors trims every author and drops duplicates and empties while
// preserving order. The first surviving author participates in the
// per-user duplicate-book index.
func CleanAuthors(authors []string) []string {
	seen := make(map[string]struct{}, len(authors))
	out := make([]string, 0, len(authors))
	for _, a := range authors {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, dup := seen[a]; dup {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}
