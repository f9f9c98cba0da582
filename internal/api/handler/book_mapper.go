package handler

import "github.com/shelfmark/book-tracker/internal/core/domain"

func toBookResponse(b *domain.Book) bookResponse {
	return bookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Authors:     b.Authors,
		Description: b.Description,
		Rating:      b.Rating,
		PageCount:   b.PageCount,
		ISBN:        b.ISBN,
		Notes:       b.Notes,
		Thumbnail:   b.Thumbnail,
		InfoLink:    b.InfoLink,
		Genre:       b.Genre,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func toBookResponses(books []*domain.Book) []bookResponse {
	out := make([]bookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	return out
}
