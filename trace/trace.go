// Package trace carries correlation identifiers for outbound HTTP calls.
// A run ID is stable for the lifetime of a logical operation (usually one
// client instance); a request ID is minted fresh for every physical attempt.
package trace

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// contextKey is the type for context keys to avoid collisions
type contextKey string

const (
	// requestIDKey is the context key for request ID values
	requestIDKey contextKey = "request_id"
	// runIDKey is the context key for run ID values
	runIDKey contextKey = "run_id"
	// HeaderXRequestID is the standard header name for per-attempt tracing
	HeaderXRequestID = "X-Request-ID"
	// HeaderXRunID is the header name carrying the stable run identifier
	HeaderXRunID = "X-Run-ID"
)

// responseIDHeaders are the response headers checked, in order, for the
// correlation ID assigned by the remote service.
var responseIDHeaders = []string{"x-request-id", "x-correlation-id", "request-id"}

// NewID returns a fresh identifier suitable for request or run IDs.
func NewID() string {
	return uuid.New().String()
}

// WithRequestID adds a request ID to the context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns a request ID from context if present
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok && requestID != "" {
		return requestID, true
	}
	return "", false
}

// WithRunID adds a run ID to the context
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// RunIDFromContext returns a run ID from context if present
func RunIDFromContext(ctx context.Context) (string, bool) {
	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		return runID, true
	}
	return "", false
}

// EnsureRunID returns an existing run ID from context or generates a new one
func EnsureRunID(ctx context.Context) string {
	if runID, ok := RunIDFromContext(ctx); ok {
		return runID
	}
	return NewID()
}

// ResponseID extracts the remote service's correlation ID from response
// headers. Returns an empty string when none of the known headers is set.
func ResponseID(h http.Header) string {
	for _, name := range responseIDHeaders {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}
