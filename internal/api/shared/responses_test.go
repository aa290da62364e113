package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes the trace ID when present", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(SetTraceID(req.Context()))

		RespondWithError(rec, req, http.StatusNotFound, "Book not found")

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Book not found", resp.Error)
		assert.NotEmpty(t, resp.TraceID)
	})

	t.Run("omits the trace ID when absent", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		RespondWithError(rec, req, http.StatusNotFound, "Book not found")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"An internal error occurred", errors.New("pq: relation missing"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// The raw error stays out of the response body.
	assert.NotContains(t, rec.Body.String(), "pq: relation missing")
	assert.Contains(t, rec.Body.String(), "An internal error occurred")
}

func TestRespondWithValidationErrors(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	RespondWithValidationErrors(rec, req, []FieldError{
		{Field: "Email", Message: "is required"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "Email", resp.Fields[0].Field)
}
