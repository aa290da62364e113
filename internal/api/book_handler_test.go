package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/mocks"
	"github.com/fennwick/libris-api/internal/service"
)

// newBookRouter wires a BookHandler over an in-memory book store and
// mounts it the way the server router does, so path parameters resolve.
func newBookRouter(t *testing.T) (*chi.Mux, *mocks.MockBookStore) {
	t.Helper()
	bookStore := mocks.NewMockBookStore()
	svc := service.NewCatalogService(bookStore, mocks.NewTxDB(), testLogger())
	handler := NewBookHandler(svc, testLogger())

	r := chi.NewRouter()
	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Put("/{id}", handler.Update)
		r.Delete("/{id}", handler.Delete)
	})
	return r, bookStore
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedCatalog(t *testing.T, store *mocks.MockBookStore) []*domain.Book {
	t.Helper()
	seeds := []struct {
		title, author string
		year          int
		isbn          string
		pages         int
	}{
		{"The Hobbit", "J.R.R. Tolkien", 1937, "978-0261102217", 310},
		{"A Wizard of Earthsea", "Ursula K. Le Guin", 1968, "978-0547773742", 183},
		{"Dune", "Frank Herbert", 1965, "978-0441172719", 412},
	}
	books := make([]*domain.Book, 0, len(seeds))
	for _, s := range seeds {
		b, err := domain.NewBook(s.title, s.author, s.year, s.isbn, s.pages)
		require.NoError(t, err)
		books = append(books, store.Seed(b))
	}
	return books
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) BookListResponse {
	t.Helper()
	var resp BookListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestBookHandler_List(t *testing.T) {
	t.Parallel()

	t.Run("default sort is title ascending", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodGet, "/api/books", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeList(t, rec)
		require.Equal(t, 3, resp.Count)
		assert.Equal(t, "A Wizard of Earthsea", resp.Books[0].Title)
		assert.Equal(t, "Dune", resp.Books[1].Title)
		assert.Equal(t, "The Hobbit", resp.Books[2].Title)
	})

	t.Run("sort and search query parameters apply", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodGet, "/api/books?sort=author_desc", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeList(t, rec)
		require.Equal(t, 3, resp.Count)
		assert.Equal(t, "Ursula K. Le Guin", resp.Books[0].Author)

		rec = doJSON(t, router, http.MethodGet, "/api/books?search=Tolkien", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp = decodeList(t, rec)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "The Hobbit", resp.Books[0].Title)
	})

	t.Run("no matches returns empty list not null", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodGet, "/api/books?search=nomatch", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"books":[]`)
	})
}

func TestBookHandler_Get(t *testing.T) {
	t.Parallel()

	t.Run("returns the book by ID", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		books := seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/books/%d", books[0].ID), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, books[0].Title, resp.Title)
	})

	t.Run("missing book returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newBookRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/books/42", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("non-numeric ID returns 400", func(t *testing.T) {
		t.Parallel()
		router, _ := newBookRouter(t)

		rec := doJSON(t, router, http.MethodGet, "/api/books/not-a-number", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestBookHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates a book and returns 201", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{
			Title:  "The Hobbit",
			Author: "J.R.R. Tolkien",
			Year:   1937,
			ISBN:   "978-0261102217",
			Pages:  310,
		})

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotZero(t, resp.ID)
		assert.Equal(t, "The Hobbit", resp.Title)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("identical edition returns 409", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)

		req := BookRequest{Title: "Dune", Author: "Frank Herbert", Year: 1965, ISBN: "978-0441172719", Pages: 412}
		first := doJSON(t, router, http.MethodPost, "/api/books", req)
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, http.MethodPost, "/api/books", req)
		assert.Equal(t, http.StatusConflict, second.Code)
		assert.Equal(t, 1, store.Count())
	})

	t.Run("different edition of the same title is accepted", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)

		first := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{
			Title: "Dune", Author: "Frank Herbert", Year: 1965, ISBN: "978-0441172719", Pages: 412,
		})
		require.Equal(t, http.StatusCreated, first.Code)

		second := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{
			Title: "Dune", Author: "Frank Herbert", Year: 1990, ISBN: "978-0441172719", Pages: 412,
		})
		assert.Equal(t, http.StatusCreated, second.Code)
		assert.Equal(t, 2, store.Count())
	})

	t.Run("missing title or author returns 400", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)

		rec := doJSON(t, router, http.MethodPost, "/api/books", BookRequest{Author: "Frank Herbert"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/books", BookRequest{Title: "Dune"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, store.Count())
	})
}

func TestBookHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("overwrites the book with a fresh token", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		books := seedCatalog(t, store)
		target := books[0]

		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/books/%d", target.ID), BookRequest{
			ID:        target.ID,
			Title:     "The Hobbit",
			Author:    "J.R.R. Tolkien",
			Year:      1951,
			ISBN:      "978-0261103344",
			Pages:     320,
			UpdatedAt: target.UpdatedAt,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		var resp BookResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, 1951, resp.Year)
		assert.True(t, resp.UpdatedAt.After(target.UpdatedAt))
	})

	t.Run("path and payload ID mismatch returns 404", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		books := seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/books/%d", books[0].ID), BookRequest{
			ID:        books[1].ID,
			Title:     "Renamed",
			Author:    "Someone Else",
			UpdatedAt: books[0].UpdatedAt,
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, 0, store.UpdateCalls)
	})

	t.Run("stale token returns 500", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		books := seedCatalog(t, store)
		target := books[0]

		rec := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/books/%d", target.ID), BookRequest{
			ID:        target.ID,
			Title:     target.Title,
			Author:    target.Author,
			Year:      target.Year,
			ISBN:      target.ISBN,
			Pages:     target.Pages,
			UpdatedAt: target.UpdatedAt.Add(-time.Second),
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("missing book returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newBookRouter(t)

		rec := doJSON(t, router, http.MethodPut, "/api/books/42", BookRequest{
			ID:        42,
			Title:     "Ghost",
			Author:    "Nobody",
			UpdatedAt: time.Now(),
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestBookHandler_Delete(t *testing.T) {
	t.Parallel()

	t.Run("removes the book and returns 204", func(t *testing.T) {
		t.Parallel()
		router, store := newBookRouter(t)
		books := seedCatalog(t, store)

		rec := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/books/%d", books[0].ID), nil)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, 2, store.Count())

		// The row is gone, not soft-deleted.
		rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/books/%d", books[0].ID), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing book returns 404", func(t *testing.T) {
		t.Parallel()
		router, _ := newBookRouter(t)

		rec := doJSON(t, router, http.MethodDelete, "/api/books/42", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
