package log

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ContextKey type for context keys
type ContextKey string

// RequestIDContextKey is the context key for the request ID
const RequestIDContextKey ContextKey = "request_id"

// RequestIDFromContext extracts the request ID set by Trace. Returns an
// empty string outside a traced request.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(RequestIDContextKey).(string); ok {
		return id
	}
	return ""
}

// Trace returns HTTP middleware that assigns each request a UUID, logs the
// request on start and completion, and escalates the completion log level
// for 4xx and 5xx responses.
func Trace(logger *Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := uuid.NewString()
			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			logger.InfoContext(ctx, "Request started",
				FieldRequestID, requestID,
				FieldMethod, r.Method,
				FieldPath, r.URL.Path,
				FieldQuery, r.URL.RawQuery,
				FieldUserAgent, r.Header.Get("User-Agent"))

			rw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			level := slog.LevelInfo
			if rw.statusCode >= 400 && rw.statusCode < 500 {
				level = slog.LevelWarn
			} else if rw.statusCode >= 500 {
				level = slog.LevelError
			}

			logger.Log(ctx, level, "Request completed",
				FieldRequestID, requestID,
				FieldMethod, r.Method,
				FieldPath, r.URL.Path,
				FieldStatusCode, rw.statusCode,
				FieldDuration, duration.Milliseconds(),
				FieldSuccess, rw.statusCode < 400)
		})
	}
}

// statusRecorder wraps http.ResponseWriter to capture the status code
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
