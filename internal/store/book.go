package store

import (
	"context"
	"database/sql"

	"github.com/fennwick/libris-api/internal/domain"
)

// Sort keys accepted by BookStore.List. Any other value falls back
// to SortTitleAsc.
const (
	SortTitleAsc   = ""
	SortTitleDesc  = "title_desc"
	SortAuthorAsc  = "author"
	SortAuthorDesc = "author_desc"
)

// ListFilter narrows and orders the result of BookStore.List.
type ListFilter struct {
	// Search, when non-empty, keeps only books whose title or author
	// contains the substring. Case folding is store-dependent.
	Search string

	// Sort selects the ordering; see the Sort* constants.
	Sort string
}

// BookStore defines the interface for book data persistence.
type BookStore interface {
	// Create saves a new book to the store and fills in the store-assigned
	// ID. A book duplicating an existing row's full
	// (title, author, year, isbn, pages) tuple is rejected with
	// ErrBookExists and nothing is inserted. The duplicate check is a
	// query, not a constraint, so callers should run Create inside a
	// transaction.
	// Returns validation errors from the domain Book if data is invalid.
	Create(ctx context.Context, book *domain.Book) error

	// GetByID retrieves a book by its unique ID.
	// Returns ErrBookNotFound if the book does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Book, error)

	// List returns the books matching the filter, freshly materialized on
	// every call. An empty result is a nil or empty slice, not an error.
	List(ctx context.Context, filter ListFilter) ([]*domain.Book, error)

	// Update overwrites an existing book's fields. The book's UpdatedAt is
	// the optimistic concurrency token: if the row changed since the book
	// was read, Update returns ErrConcurrentUpdate; if the row no longer
	// exists, it returns ErrBookNotFound.
	Update(ctx context.Context, book *domain.Book) error

	// Delete removes a book from the store by its ID.
	// Returns ErrBookNotFound if the book does not exist.
	// This operation is permanent; there is no soft delete.
	Delete(ctx context.Context, id int64) error

	// WithTx returns a new BookStore instance that uses the provided
	// transaction. The transaction should be created and managed by the
	// caller (typically a service).
	WithTx(tx *sql.Tx) BookStore
}
