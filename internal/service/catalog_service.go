package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/store"
)

// CatalogService provides the book-record lifecycle: create, read, update,
// delete, plus filtered and sorted listing.
type CatalogService interface {
	// ListBooks returns the books matching the search substring (title OR
	// author), ordered by the sort key. Unknown sort keys fall back to
	// title ascending; no match yields an empty slice, not an error.
	ListBooks(ctx context.Context, sortKey, search string) ([]*domain.Book, error)

	// GetBook retrieves a single book by ID.
	// Returns store.ErrBookNotFound if it does not exist.
	GetBook(ctx context.Context, id int64) (*domain.Book, error)

	// CreateBook validates and persists a new book.
	// Returns store.ErrBookExists when an identical
	// (title, author, year, isbn, pages) tuple is already present.
	CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error)

	// UpdateBook overwrites the book identified by id. The id must match
	// book.ID; a mismatch is treated as a caller error and reported as
	// store.ErrBookNotFound, not silently corrected. A concurrent
	// modification surfaces as store.ErrConcurrentUpdate when the row
	// still exists and as store.ErrBookNotFound when it vanished.
	UpdateBook(ctx context.Context, id int64, book *domain.Book) (*domain.Book, error)

	// DeleteBook removes the book by ID, immediately and permanently.
	// Returns store.ErrBookNotFound if it does not exist.
	DeleteBook(ctx context.Context, id int64) error
}

// CatalogServiceImpl implements the CatalogService interface.
type CatalogServiceImpl struct {
	bookStore store.BookStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(bookStore store.BookStore, db *sql.DB, logger *slog.Logger) CatalogService {
	return &CatalogServiceImpl{
		bookStore: bookStore,
		db:        db,
		logger:    logger.With("component", "catalog_service"),
	}
}

// ListBooks returns the filtered, sorted book list.
func (s *CatalogServiceImpl) ListBooks(ctx context.Context, sortKey, search string) ([]*domain.Book, error) {
	books, err := s.bookStore.List(ctx, store.ListFilter{
		Search: search,
		Sort:   sortKey,
	})
	if err != nil {
		s.logger.Error("failed to list books",
			"error", err,
			"sort", sortKey,
			"search", search)
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return books, nil
}

// GetBook retrieves a single book by ID.
func (s *CatalogServiceImpl) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	book, err := s.bookStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("book not found",
				"book_id", id)
		} else {
			s.logger.Error("failed to retrieve book",
				"error", err,
				"book_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve book: %w", err)
	}

	return book, nil
}

// CreateBook validates and persists a new book.
// The duplicate check and the insert run in one transaction.
func (s *CatalogServiceImpl) CreateBook(ctx context.Context, book *domain.Book) (*domain.Book, error) {
	if err := book.Validate(); err != nil {
		s.logger.Debug("rejected invalid book input",
			"error", err)
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.bookStore.WithTx(tx).Create(ctx, book)
	})
	if err != nil {
		if errors.Is(err, store.ErrBookExists) {
			s.logger.Debug("attempted to create duplicate book",
				"title", book.Title,
				"author", book.Author)
		} else {
			s.logger.Error("failed to save book",
				"error", err,
				"title", book.Title)
		}
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"title", book.Title)

	return book, nil
}

// UpdateBook overwrites an existing book.
func (s *CatalogServiceImpl) UpdateBook(ctx context.Context, id int64, book *domain.Book) (*domain.Book, error) {
	if id != book.ID {
		s.logger.Debug("book update id mismatch",
			"path_id", id,
			"payload_id", book.ID)
		return nil, store.ErrBookNotFound
	}

	if err := book.Validate(); err != nil {
		s.logger.Debug("rejected invalid book input",
			"error", err,
			"book_id", id)
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.bookStore.WithTx(tx).Update(ctx, book)
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrBookNotFound):
			s.logger.Debug("attempted to update missing book",
				"book_id", id)
		case errors.Is(err, store.ErrConcurrentUpdate):
			// The row still exists but changed underneath the caller;
			// this is fatal to the request, not silently retried.
			s.logger.Warn("concurrent book update conflict",
				"book_id", id)
		default:
			s.logger.Error("failed to update book",
				"error", err,
				"book_id", id)
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	s.logger.Info("book updated",
		"book_id", book.ID)

	return book, nil
}

// DeleteBook removes a book by ID.
func (s *CatalogServiceImpl) DeleteBook(ctx context.Context, id int64) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.bookStore.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			s.logger.Debug("attempted to delete missing book",
				"book_id", id)
		} else {
			s.logger.Error("failed to delete book",
				"error", err,
				"book_id", id)
		}
		return fmt.Errorf("failed to delete book: %w", err)
	}

	s.logger.Info("book deleted",
		"book_id", id)

	return nil
}
