package trace

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")

	id, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "req-123", id)
}

func TestRequestIDFromContextMissing(t *testing.T) {
	id, ok := RequestIDFromContext(context.Background())
	assert.False(t, ok)
	assert.Empty(t, id)
}

func TestRequestIDFromContextEmptyValue(t *testing.T) {
	ctx := WithRequestID(context.Background(), "")
	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok)
}

func TestRunIDRoundTrip(t *testing.T) {
	ctx := WithRunID(context.Background(), "run-456")

	id, ok := RunIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "run-456", id)
}

func TestEnsureRunIDPrefersContextValue(t *testing.T) {
	ctx := WithRunID(context.Background(), "existing-run")
	assert.Equal(t, "existing-run", EnsureRunID(ctx))
}

func TestEnsureRunIDGeneratesWhenAbsent(t *testing.T) {
	id := EnsureRunID(context.Background())
	assert.NotEmpty(t, id)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}

func TestResponseID(t *testing.T) {
	tests := []struct {
		name     string
		headers  http.Header
		expected string
	}{
		{
			name:     "x-request-id preferred",
			headers:  http.Header{"X-Request-Id": {"a"}, "X-Correlation-Id": {"b"}, "Request-Id": {"c"}},
			expected: "a",
		},
		{
			name:     "falls back to x-correlation-id",
			headers:  http.Header{"X-Correlation-Id": {"b"}, "Request-Id": {"c"}},
			expected: "b",
		},
		{
			name:     "falls back to request-id",
			headers:  http.Header{"Request-Id": {"c"}},
			expected: "c",
		},
		{
			name:     "none present",
			headers:  http.Header{"Content-Type": {"application/json"}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResponseID(tt.headers))
		})
	}
}
