package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shelfmark/book-tracker/internal/api/metrics"
	"github.com/shelfmark/book-tracker/internal/core/ports"
)

// BookHandler handles the owner-scoped book list routes. All routes sit
// behind the RequireUser gate; the handler only reads the resolved user id
// from the context.
type BookHandler struct {
	service ports.BookService
}

func NewBookHandler(service ports.BookService) *BookHandler {
	return &BookHandler{service: service}
}

// Create handles POST /api/books.
//
// @Summary      Save a book to the caller's list
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  bookResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/books [post]
func (h *BookHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.service.Add(c.Request().Context(), userID, ports.AddBookInput{
		Title:       req.Title,
		Authors:     req.Authors,
		Description: req.Description,
		Rating:      req.Rating,
		PageCount:   req.PageCount,
		ISBN:        req.ISBN,
		Notes:       req.Notes,
		Thumbnail:   req.Thumbnail,
		InfoLink:    req.InfoLink,
		Genre:       req.Genre,
	})
	if err != nil {
		return err
	}

	metrics.BooksSavedTotal.Inc()
	return c.JSON(http.StatusCreated, toBookResponse(book))
}

// List handles GET /api/books, optionally filtered by primary author.
//
// @Summary      List the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        author  query     string  false  "Filter by primary author (case-insensitive)"
// @Success      200     {array}   bookResponse
// @Failure      401     {object}  errorResponse
// @Failure      500     {object}  errorResponse
// @Router       /api/books [get]
func (h *BookHandler) List(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	books, err := h.service.List(c.Request().Context(), userID, c.QueryParam("author"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookResponses(books))
}

// Delete handles DELETE /api/books/:id. A book owned by another user is
// reported as 404, identical to a book that does not exist.
//
// @Summary      Delete one of the caller's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Book id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /api/books/{id} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Book deleted"})
}
