package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/store"
)

// MockBookStore implements store.BookStore for testing. It keeps books in
// memory and mirrors the real store's semantics: full-tuple duplicate
// rejection, substring filtering, sort-key ordering and token-guarded
// updates. Any operation can be overridden through its Fn field.
type MockBookStore struct {
	mu     sync.Mutex
	books  map[int64]*domain.Book
	nextID int64

	CreateFn  func(ctx context.Context, book *domain.Book) error
	GetByIDFn func(ctx context.Context, id int64) (*domain.Book, error)
	ListFn    func(ctx context.Context, filter store.ListFilter) ([]*domain.Book, error)
	UpdateFn  func(ctx context.Context, book *domain.Book) error
	DeleteFn  func(ctx context.Context, id int64) error

	// Call counters for verification
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

// NewMockBookStore creates an empty in-memory book store.
func NewMockBookStore() *MockBookStore {
	return &MockBookStore{
		books:  make(map[int64]*domain.Book),
		nextID: 1,
	}
}

// Ensure MockBookStore implements store.BookStore interface
var _ store.BookStore = (*MockBookStore)(nil)

// Seed inserts a book directly, bypassing the duplicate check.
// Intended for test setup.
func (m *MockBookStore) Seed(book *domain.Book) *domain.Book {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *book
	if copied.ID == 0 {
		copied.ID = m.nextID
		m.nextID++
	} else if copied.ID >= m.nextID {
		m.nextID = copied.ID + 1
	}
	if copied.UpdatedAt.IsZero() {
		copied.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	}
	m.books[copied.ID] = &copied

	result := copied
	return &result
}

// Create implements store.BookStore.Create
func (m *MockBookStore) Create(ctx context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++

	if m.CreateFn != nil {
		return m.CreateFn(ctx, book)
	}

	if err := book.Validate(); err != nil {
		return err
	}

	for _, existing := range m.books {
		if existing.SameEdition(book) {
			return store.ErrBookExists
		}
	}

	book.ID = m.nextID
	m.nextID++
	now := time.Now().UTC().Truncate(time.Microsecond)
	book.CreatedAt = now
	book.UpdatedAt = now

	copied := *book
	m.books[book.ID] = &copied
	return nil
}

// GetByID implements store.BookStore.GetByID
func (m *MockBookStore) GetByID(ctx context.Context, id int64) (*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	book, ok := m.books[id]
	if !ok {
		return nil, store.ErrBookNotFound
	}
	copied := *book
	return &copied, nil
}

// List implements store.BookStore.List
func (m *MockBookStore) List(ctx context.Context, filter store.ListFilter) ([]*domain.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	var books []*domain.Book
	for _, book := range m.books {
		if filter.Search != "" &&
			!strings.Contains(book.Title, filter.Search) &&
			!strings.Contains(book.Author, filter.Search) {
			continue
		}
		copied := *book
		books = append(books, &copied)
	}

	sort.Slice(books, func(i, j int) bool {
		a, b := books[i], books[j]
		switch filter.Sort {
		case store.SortTitleDesc:
			if a.Title != b.Title {
				return a.Title > b.Title
			}
		case store.SortAuthorAsc:
			if a.Author != b.Author {
				return a.Author < b.Author
			}
		case store.SortAuthorDesc:
			if a.Author != b.Author {
				return a.Author > b.Author
			}
		default:
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		}
		return a.ID < b.ID
	})

	return books, nil
}

// Update implements store.BookStore.Update
func (m *MockBookStore) Update(ctx context.Context, book *domain.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, book)
	}

	if err := book.Validate(); err != nil {
		return err
	}

	existing, ok := m.books[book.ID]
	if !ok {
		return store.ErrBookNotFound
	}
	if !existing.UpdatedAt.Equal(book.UpdatedAt) {
		return store.ErrConcurrentUpdate
	}

	book.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	copied := *book
	copied.CreatedAt = existing.CreatedAt
	m.books[book.ID] = &copied
	return nil
}

// Delete implements store.BookStore.Delete
func (m *MockBookStore) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, ok := m.books[id]; !ok {
		return store.ErrBookNotFound
	}
	delete(m.books, id)
	return nil
}

// WithTx implements store.BookStore.WithTx. The mock has no transaction
// state, so it returns itself.
func (m *MockBookStore) WithTx(tx *sql.Tx) store.BookStore {
	return m
}

// Count returns the number of stored books.
func (m *MockBookStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.books)
}
