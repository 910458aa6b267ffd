package httpclient

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBackoffDelayWithinJitterBounds(t *testing.T) {
	b := backoff{base: 500 * time.Millisecond, max: 4 * time.Second}

	expected := []time.Duration{
		500 * time.Millisecond, // attempt 1
		time.Second,            // attempt 2
		2 * time.Second,        // attempt 3
		4 * time.Second,        // attempt 4, capped
		4 * time.Second,        // attempt 5, capped
		4 * time.Second,        // attempt 6, capped
	}

	for attempt := 1; attempt <= len(expected); attempt++ {
		target := expected[attempt-1]
		lower := target / 2
		upper := target + target/2

		t.Run(fmt.Sprintf("attempt_%d", attempt), func(t *testing.T) {
			for range 200 {
				delay := b.Delay(attempt)
				assert.GreaterOrEqual(t, delay, lower, "delay below jitter floor")
				assert.LessOrEqual(t, delay, upper, "delay above jitter ceiling")
			}
		})
	}
}

func TestBackoffDelayJitters(t *testing.T) {
	b := backoff{base: 500 * time.Millisecond, max: 4 * time.Second}

	seen := make(map[time.Duration]struct{})
	for range 50 {
		seen[b.Delay(3)] = struct{}{}
	}

	// Uniform jitter over a 2s window collapsing to one value is
	// effectively impossible.
	assert.Greater(t, len(seen), 1)
}

func TestBackoffDelayClampsLowAttempts(t *testing.T) {
	b := backoff{base: 500 * time.Millisecond, max: 4 * time.Second}

	for _, attempt := range []int{0, -1} {
		delay := b.Delay(attempt)
		assert.GreaterOrEqual(t, delay, 250*time.Millisecond)
		assert.LessOrEqual(t, delay, 750*time.Millisecond)
	}
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected time.Duration
		ok       bool
	}{
		{"whole seconds", "120", 120 * time.Second, true},
		{"fractional seconds", "1.5", 1500 * time.Millisecond, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"malformed", "soon", 0, false},
		{"http date unsupported", "Wed, 21 Oct 2026 07:28:00 GMT", 0, false},
		{"negative", "-5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ParseRetryAfter(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, d)
		})
	}
}
