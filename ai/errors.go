package ai

import (
	"errors"
	"fmt"
	"strings"
)

// RateLimitError marks a provider failure as transient rate limiting
// (a 429-class response). The embedding pipeline retries these with
// backoff; every other provider error fails the run immediately.
type RateLimitError struct {
	// Message is the provider's human-readable description.
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limited by embedding provider"
	}
	return fmt.Sprintf("rate limited by embedding provider: %s", e.Message)
}

// IsRateLimit reports whether an error represents a rate-limit response.
// It recognizes RateLimitError values plus the 429 signatures that leak
// through generic client errors.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var rateLimited *RateLimitError
	if errors.As(err, &rateLimited) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "too many requests")
}
