// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/fennwick/libris-api/internal/api/shared"
	"github.com/fennwick/libris-api/internal/platform/logger"
)

// TraceMiddleware assigns each request a trace ID and stores a logger
// pre-tagged with it in the request context. Handlers and everything
// below them (services, stores) retrieve it via logger.FromContext so
// a single request's log lines correlate.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		reqLogger := slog.Default().With(
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
		ctx = logger.WithLogger(ctx, reqLogger)

		w.Header().Set("X-Trace-ID", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
