package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fennwick/libris-api/internal/service"
	"github.com/fennwick/libris-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "user not found", err: store.ErrUserNotFound, want: http.StatusNotFound},
		{name: "book not found", err: store.ErrBookNotFound, want: http.StatusNotFound},
		{name: "email exists", err: store.ErrEmailExists, want: http.StatusConflict},
		{name: "book exists", err: store.ErrBookExists, want: http.StatusConflict},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "concurrent update", err: store.ErrConcurrentUpdate, want: http.StatusInternalServerError},
		{name: "wrapped not found", err: fmt.Errorf("getting book: %w", store.ErrBookNotFound), want: http.StatusNotFound},
		{name: "unknown error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("known errors map to friendly messages", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(service.ErrInvalidCredentials))
		assert.Equal(t, "Book not found", GetSafeErrorMessage(store.ErrBookNotFound))
		assert.Equal(t, "An account with this email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	})

	t.Run("unknown errors never leak details", func(t *testing.T) {
		t.Parallel()
		msg := GetSafeErrorMessage(errors.New("pq: connection refused on 10.0.0.3"))
		assert.Equal(t, "An internal error occurred", msg)
		assert.NotContains(t, msg, "10.0.0.3")
	})
}
