// Package catalog implements the external book catalog client backed by the
// Google Books volumes API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/shelfmark/book-tracker/internal/core/ports"
)

const (
	DefaultBaseURL = "https://www.googleapis.com/books/v1/volumes"

	maxResults     = 20
	requestTimeout = 10 * time.Second
)

// GoogleBooksClient proxies searches to the Google Books volumes API.
type GoogleBooksClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

func NewGoogleBooksClient(baseURL, apiKey string, log zerolog.Logger) *GoogleBooksClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GoogleBooksClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// upstream response shape, only the fields we read.
type volumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			AverageRating *float64 `json:"averageRating"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
			InfoLink   string   `json:"infoLink"`
			Categories []string `json:"categories"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

// Search queries the volumes API and flattens the hits. Upstream failures of
// any kind surface as ports.ErrCatalogUnavailable; the real cause goes to
// the log only.
func (c *GoogleBooksClient) Search(ctx context.Context, q ports.CatalogQuery) ([]ports.CatalogVolume, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	req.URL.RawQuery = c.queryParams(q).Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("query", q.Query).Msg("catalog request failed")
		return nil, ports.ErrCatalogUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Error().Int("status", resp.StatusCode).Str("query", q.Query).Msg("catalog returned non-200")
		return nil, ports.ErrCatalogUnavailable
	}

	var body volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Error().Err(err).Str("query", q.Query).Msg("catalog response undecodable")
		return nil, ports.ErrCatalogUnavailable
	}

	volumes := make([]ports.CatalogVolume, 0, len(body.Items))
	for _, item := range body.Items {
		info := item.VolumeInfo

		title := info.Title
		if title == "" {
			title = "Untitled"
		}
		authors := info.Authors
		if authors == nil {
			authors = []string{}
		}
		genre := ""
		if len(info.Categories) > 0 {
			genre = info.Categories[0]
		}

		volumes = append(volumes, ports.CatalogVolume{
			ID:          item.ID,
			Title:       title,
			Authors:     authors,
			Description: info.Description,
			Rating:      info.AverageRating,
			Thumbnail:   info.ImageLinks.Thumbnail,
			InfoLink:    info.InfoLink,
			Genre:       genre,
		})
	}
	return volumes, nil
}

func (c *GoogleBooksClient) queryParams(q ports.CatalogQuery) url.Values {
	params := url.Values{}
	params.Set("q", q.Query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("startIndex", strconv.Itoa(q.StartIndex))
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.PrintType != "" {
		params.Set("printType", q.PrintType)
	}
	if q.OrderBy != "" {
		params.Set("orderBy", q.OrderBy)
	}
	if q.LangRestrict != "" {
		params.Set("langRestrict", q.LangRestrict)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	return params
}
