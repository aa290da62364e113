package api

import (
	"log/slog"
	"net/http"

	"github.com/fennwick/libris-api/internal/api/shared"
	"github.com/fennwick/libris-api/internal/domain"
	"github.com/fennwick/libris-api/internal/service"
)

// BookHandler handles catalog requests.
type BookHandler struct {
	catalogService service.CatalogService
	logger         *slog.Logger
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(catalogService service.CatalogService, logger *slog.Logger) *BookHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookHandler{
		catalogService: catalogService,
		logger:         logger.With(slog.String("component", "book_handler")),
	}
}

// List handles GET /api/books. The sort and search query parameters are
// both optional; an unrecognized sort key falls back to title ascending.
func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	sortKey := r.URL.Query().Get("sort")
	search := r.URL.Query().Get("search")

	books, err := h.catalogService.ListBooks(r.Context(), sortKey, search)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookListResponse(books))
}

// Get handles GET /api/books/{id}.
func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	book, err := h.catalogService.GetBook(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(book))
}

// Create handles POST /api/books.
func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	book, err := domain.NewBook(req.Title, req.Author, req.Year, req.ISBN, req.Pages)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid input", err)
		return
	}

	created, err := h.catalogService.CreateBook(r.Context(), book)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, newBookResponse(created))
}

// Update handles PUT /api/books/{id}. The payload ID must match the path
// ID and the updated_at token must match the stored row.
func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	var req BookRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithValidationErrors(w, r, fields)
		return
	}

	book := &domain.Book{
		ID:        req.ID,
		Title:     req.Title,
		Author:    req.Author,
		Year:      req.Year,
		ISBN:      req.ISBN,
		Pages:     req.Pages,
		UpdatedAt: req.UpdatedAt,
	}

	updated, err := h.catalogService.UpdateBook(r.Context(), id, book)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newBookResponse(updated))
}

// Delete handles DELETE /api/books/{id}. Deletion is immediate; there is
// no confirmation step or soft delete.
func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid book ID", err)
		return
	}

	if err := h.catalogService.DeleteBook(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
