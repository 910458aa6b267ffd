package httpclient

import (
	"math"
	"math/rand"
	"strconv"
	"time"
)

// Default retry pacing. The exponential curve starts at the base delay,
// doubles per attempt and is capped at the max delay; Retry-After hints are
// never honored beyond the hint cap.
const (
	defaultRetryBaseDelay = 500 * time.Millisecond
	defaultRetryMaxDelay  = 4 * time.Second
	defaultRetryAfterCap  = 10 * time.Second
)

// backoff computes inter-attempt delays for one client instance.
type backoff struct {
	base time.Duration
	max  time.Duration
}

// Delay returns the pause before retrying after the given attempt (1-based).
// The exponential target min(max, base*2^(attempt-1)) is jittered uniformly
// within [0.5x, 1.5x] so concurrent callers do not retry in lockstep.
func (b backoff) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	target := float64(b.base) * math.Pow(2, float64(attempt-1))
	if capped := float64(b.max); target > capped {
		target = capped
	}

	return time.Duration(target * (0.5 + rand.Float64()))
}

// ParseRetryAfter parses a Retry-After header value as a number of seconds,
// fractional values included. Malformed, absent, or negative values yield
// no hint. HTTP-date values are not supported and yield no hint.
func ParseRetryAfter(value string) (time.Duration, bool) {
	if value == "" {
		return 0, false
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}
