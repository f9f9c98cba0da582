package ports

import (
	"context"
	"errors"
)

// ErrCatalogUnavailable signals that the external book catalog could not be
// reached or returned an unusable response. Mapped to 502 at the boundary.
var ErrCatalogUnavailable = errors.New("book catalog unavailable")

// CatalogQuery carries the supported search parameters. Query is required;
// everything else is passed through to the upstream API when non-empty.
type CatalogQuery struct {
	Query        string
	Filter       string // e.g. "free-ebooks", "paid-ebooks"
	PrintType    string // "all", "books", "magazines"
	OrderBy      string // "relevance", "newest"
	LangRestrict string // two-letter language code
	StartIndex   int    // pagination offset
}

// CatalogVolume is one search hit, already flattened from the upstream shape.
type CatalogVolume struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	Description string   `json:"description"`
	Rating      *float64 `json:"rating"`
	Thumbnail   string   `json:"thumbnail"`
	InfoLink    string   `json:"info_link"`
	Genre       string   `json:"genre"`
}

// CatalogClient searches an external book catalog (Google Books).
type CatalogClient interface {
	Search(ctx context.Context, q CatalogQuery) ([]CatalogVolume, error)
}
