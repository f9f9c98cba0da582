package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const volumesFixture = `{
	"items": [
		{
			"id": "v1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"description": "Desert planet",
				"averageRating": 4.5,
				"imageLinks": {"thumbnail": "http://img/dune.jpg"},
				"infoLink": "http://info/dune",
				"categories": ["Fiction", "Science Fiction"]
			}
		},
		{
			"id": "v2",
			"volumeInfo": {}
		}
	]
}`

func newTestClient(t *testing.T, apiKey string, status int, body string) (*GoogleBooksClient, *url.Values) {
	t.Helper()

	var captured url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.URL.Query()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewGoogleBooksClient(srv.URL, apiKey, zerolog.Nop()), &captured
}

func TestSearchSendsExpectedParameters(t *testing.T) {
	client, captured := newTestClient(t, "secret-key", http.StatusOK, `{"items":[]}`)

	_, err := client.Search(context.Background(), ports.CatalogQuery{
		Query:        "dune",
		Filter:       "free-ebooks",
		PrintType:    "books",
		OrderBy:      "newest",
		LangRestrict: "en",
		StartIndex:   40,
	})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	want := map[string]string{
		"q":            "dune",
		"maxResults":   "20",
		"startIndex":   "40",
		"filter":       "free-ebooks",
		"printType":    "books",
		"orderBy":      "newest",
		"langRestrict": "en",
		"key":          "secret-key",
	}
	for param, value := range want {
		if got := captured.Get(param); got != value {
			t.Errorf("param %s = %q, want %q", param, got, value)
		}
	}
}

func TestSearchOmitsEmptyParameters(t *testing.T) {
	client, captured := newTestClient(t, "", http.StatusOK, `{"items":[]}`)

	if _, err := client.Search(context.Background(), ports.CatalogQuery{Query: "dune"}); err != nil {
		t.Fatalf("Search: %v", err)
	}

	for _, param := range []string{"filter", "printType", "orderBy", "langRestrict", "key"} {
		if _, present := (*captured)[param]; present {
			t.Errorf("param %s sent despite being unset", param)
		}
	}
}

func TestSearchFlattensVolumes(t *testing.T) {
	client, _ := newTestClient(t, "", http.StatusOK, volumesFixture)

	volumes, err := client.Search(context.Background(), ports.CatalogQuery{Query: "dune"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(volumes) != 2 {
		t.Fatalf("volumes = %d, want 2", len(volumes))
	}

	first := volumes[0]
	if first.ID != "v1" || first.Title != "Dune" || first.Genre != "Fiction" {
		t.Fatalf("first volume = %+v", first)
	}
	if first.Rating == nil || *first.Rating != 4.5 {
		t.Fatalf("rating = %v, want 4.5", first.Rating)
	}
	if !reflect.DeepEqual(first.Authors, []string{"Frank Herbert"}) {
		t.Fatalf("authors = %v", first.Authors)
	}

	// Sparse upstream entries get usable defaults, never nils.
	second := volumes[1]
	if second.Title != "Untitled" {
		t.Fatalf("sparse title = %q, want Untitled", second.Title)
	}
	if second.Authors == nil || len(second.Authors) != 0 {
		t.Fatalf("sparse authors = %#v, want empty slice", second.Authors)
	}
	if second.Rating != nil {
		t.Fatalf("sparse rating = %v, want nil", second.Rating)
	}
}

func TestSearchUpstreamErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"rate limited", http.StatusTooManyRequests, ""},
		{"undecodable body", http.StatusOK, "{not json"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, "", tc.status, tc.body)
			_, err := client.Search(context.Background(), ports.CatalogQuery{Query: "dune"})
			if !errors.Is(err, ports.ErrCatalogUnavailable) {
				t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
			}
		})
	}
}

func TestSearchUnreachableUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewGoogleBooksClient(srv.URL, "", zerolog.Nop())
	_, err := client.Search(context.Background(), ports.CatalogQuery{Query: "dune"})
	if !errors.Is(err, ports.ErrCatalogUnavailable) {
		t.Fatalf("err = %v, want ErrCatalogUnavailable", err)
	}
}
