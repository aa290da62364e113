// Package api implements the HTTP API for the service.
package api

import (
	"time"

	"github.com/fennwick/libris-api/internal/domain"
)

// RegisterRequest holds the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest holds the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// BookRequest holds the payload for creating or updating a book. The ID
// is ignored on create; on update it must match the path ID.
type BookRequest struct {
	ID     int64  `json:"id,omitempty"`
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Year   int    `json:"year" validate:"omitempty,gte=0"`
	ISBN   string `json:"isbn"`
	Pages  int    `json:"pages" validate:"omitempty,gte=0"`

	// UpdatedAt carries the concurrency token a client read earlier.
	// Required on update, ignored on create.
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// BookResponse is the API representation of a book.
type BookResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      int       `json:"year"`
	ISBN      string    `json:"isbn"`
	Pages     int       `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookListResponse wraps the book collection returned by the list endpoint.
type BookListResponse struct {
	Books []BookResponse `json:"books"`
	Count int            `json:"count"`
}

// newBookResponse converts a domain book to its API representation.
func newBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Year:      b.Year,
		ISBN:      b.ISBN,
		Pages:     b.Pages,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// newBookListResponse converts a slice of domain books, returning an
// empty (non-nil) list when there are no results.
func newBookListResponse(books []*domain.Book) BookListResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, newBookResponse(b))
	}
	return BookListResponse{Books: out, Count: len(out)}
}
