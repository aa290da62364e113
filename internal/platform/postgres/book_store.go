package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, year, isbn, pages, created_at, updated_at`

// PostgresBookStore implements the store.BookStore interface
// using a PostgreSQL database as the storage backend.
type PostgresBookStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresBookStore creates a new PostgreSQL implementation of the
// BookStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresBookStore(db store.DBTX, logger *slog.Logger) *PostgresBookStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBookStore{
		db:     db,
		logger: logger.With(slog.String("component", "book_store")),
	}
}

// Ensure PostgresBookStore implements store.BookStore interface
var _ store.BookStore = (*PostgresBookStore)(nil)

// scanBook scans a single row into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Year,
		&b.ISBN,
		&b.Pages,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// orderClause maps a sort key to its ORDER BY clause. Unknown keys fall
// back to title ascending. Only values from this fixed set ever reach the
// query string.
func orderClause(sort string) string {
	switch sort {
	case store.SortTitleDesc:
		return "ORDER BY title DESC, id"
	case store.SortAuthorAsc:
		return "ORDER BY author, id"
	case store.SortAuthorDesc:
		return "ORDER BY author DESC, id"
	default:
		return "ORDER BY title, id"
	}
}

// Create implements store.BookStore.Create.
// The full-tuple duplicate check and the insert are two statements; the
// caller provides the transaction that makes them atomic.
func (s *PostgresBookStore) Create(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM books
			WHERE title = $1 AND author = $2 AND year = $3 AND isbn = $4 AND pages = $5
		 )`,
		book.Title,
		book.Author,
		book.Year,
		book.ISBN,
		book.Pages,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for duplicate book: %w", MapError(err))
	}
	if exists {
		return store.ErrBookExists
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	book.CreatedAt = now
	book.UpdatedAt = now

	err = s.db.QueryRowContext(ctx,
		`INSERT INTO books (title, author, year, isbn, pages, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		book.Title,
		book.Author,
		book.Year,
		book.ISBN,
		book.Pages,
		book.CreatedAt,
		book.UpdatedAt,
	).Scan(&book.ID)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", MapError(err))
	}

	return nil
}

// GetByID implements store.BookStore.GetByID
func (s *PostgresBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = $1`,
		id,
	)

	book, err := scanBook(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to query book: %w", MapError(err))
	}

	return book, nil
}

// List implements store.BookStore.List.
// Filtering happens in the WHERE clause, ordering in a fixed ORDER BY
// selected by orderClause; the result is a fresh slice on every call.
func (s *PostgresBookStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books`
	args := []any{}

	if filter.Search != "" {
		query += ` WHERE title ILIKE '%' || $1 || '%' OR author ILIKE '%' || $1 || '%'`
		args = append(args, filter.Search)
	}

	query += " " + orderClause(filter.Sort)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			s.logger.Error("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate book rows: %w", MapError(err))
	}

	return books, nil
}

// Update implements store.BookStore.Update.
// The WHERE clause matches both the id and the caller's updated_at, so a
// row modified since the caller's read is left untouched; the zero-row
// outcome is then split into "gone" and "stale" by a follow-up existence
// check.
func (s *PostgresBookStore) Update(ctx context.Context, book *domain.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	token := book.UpdatedAt
	now := time.Now().UTC().Truncate(time.Microsecond)

	result, err := s.db.ExecContext(ctx,
		`UPDATE books
		 SET title = $1, author = $2, year = $3, isbn = $4, pages = $5, updated_at = $6
		 WHERE id = $7 AND updated_at = $8`,
		book.Title,
		book.Author,
		book.Year,
		book.ISBN,
		book.Pages,
		now,
		book.ID,
		token,
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Zero rows means the id is gone or the token is stale.
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`,
			book.ID,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to recheck book existence: %w", MapError(err))
		}
		if !exists {
			return store.ErrBookNotFound
		}

		s.logger.Warn("stale book update rejected",
			slog.Int64("book_id", book.ID),
			slog.Time("stale_token", token))
		return store.ErrConcurrentUpdate
	}

	book.UpdatedAt = now
	return nil
}

// Delete implements store.BookStore.Delete
func (s *PostgresBookStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM books WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", MapError(err))
	}

	return CheckRowsAffected(result, store.ErrBookNotFound)
}

// WithTx implements store.BookStore.WithTx
func (s *PostgresBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return &PostgresBookStore{
		db:     tx,
		logger: s.logger,
	}
}
