package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/book-tracker/internal/api/metrics"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

// SearchHandler proxies catalog searches. Like the rest of the public
// surface it never exposes upstream failure detail to the client.
type SearchHandler struct {
	catalog ports.CatalogClient
}

func NewSearchHandler(catalog ports.CatalogClient) *SearchHandler {
	return &SearchHandler{catalog: catalog}
}

// Search handles GET /api/search.
//
// @Summary      Search the external book catalog
// @Tags         search
// @Produce      json
// @Param        q             query     string  true   "Search terms"
// @Param        filter        query     string  false  "Volume filter (e.g. free-ebooks)"
// @Param        printType     query     string  false  "all, books, or magazines"
// @Param        orderBy       query     string  false  "relevance or newest"
// @Param        langRestrict  query     string  false  "Two-letter language code"
// @Param        startIndex    query     int     false  "Pagination offset"
// @Success      200  {array}   ports.CatalogVolume
// @Failure      400  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, `missing query parameter "q"`)
	}

	startIndex, _ := strconv.Atoi(c.QueryParam("startIndex"))

	volumes, err := h.catalog.Search(c.Request().Context(), ports.CatalogQuery{
		Query:        q,
		Filter:       c.QueryParam("filter"),
		PrintType:    c.QueryParam("printType"),
		OrderBy:      c.QueryParam("orderBy"),
		LangRestrict: c.QueryParam("langRestrict"),
		StartIndex:   startIndex,
	})
	if err != nil {
		metrics.CatalogSearchesTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.CatalogSearchesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, volumes)
}
