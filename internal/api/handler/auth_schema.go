package handler

import "github.com/shelfmark/book-tracker/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the envelope for operations whose success has no payload.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginResponse carries the bearer token. Cookie-strategy deployments set
// the session cookie instead and leave Token empty.
type loginResponse struct {
	Token   string `json:"token,omitempty"`
	Message string `json:"message,omitempty"`
}

// meResponse deliberately renders "user": null for anonymous callers;
// anonymity is a state, not an error.
type meResponse struct {
	User *domain.User `json:"user"`
}
