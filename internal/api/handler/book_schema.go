package handler

import "time"

type createBookRequest struct {
	Title       string   `json:"title"       validate:"required,max=300"`
	Authors     []string `json:"authors"     validate:"required,min=1"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Rating      *float64 `json:"rating"      validate:"omitempty,gte=0,lte=5"`
	PageCount   *int     `json:"page_count"  validate:"omitempty,gte=1"`
	ISBN        string   `json:"isbn"        validate:"omitempty,max=20"`
	Notes       string   `json:"notes"       validate:"omitempty,max=2000"`
	Thumbnail   string   `json:"thumbnail"`
	InfoLink    string   `json:"info_link"`
	Genre       string   `json:"genre"`
}

// bookResponse is the transport view of a saved book. Kept separate from the
// domain type so the JSON contract is not coupled to internal changes.
type bookResponse struct {
	ID          string    `json:"id"`
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
