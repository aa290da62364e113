package api

import (
	"errors"
	"net/http"

	"github.com/fennwick/libris-api/internal/service"
	"github.com/fennwick/libris-api/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP
// status codes. Unknown errors map to 500.
//
// A concurrency conflict also maps to 500: the conflict is treated as
// fatal to the request rather than something the client retries with
// fresh state.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case store.IsNotFoundError(err):
		return http.StatusNotFound
	case store.IsDuplicateError(err):
		return http.StatusConflict
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrConcurrentUpdate):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for the given error.
// Internal details stay in the logs.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, store.ErrEmailExists):
		return "An account with this email already exists"
	case errors.Is(err, store.ErrBookExists):
		return "This book is already in the catalog"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrBookNotFound):
		return "Book not found"
	case store.IsNotFoundError(err):
		return "Resource not found"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid input"
	default:
		return "An internal error occurred"
	}
}
