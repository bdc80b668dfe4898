package repository

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"
)

// retryWithBackoff retries fn on timeout-class errors only, with exponential
// backoff (1s, 2s, 4s by default). Serverless Postgres suspends idle
// databases, so the first write after a pause may need a second chance.
func retryWithBackoff(ctx context.Context, maxRetries int, initialDelay time.Duration, fn func() error) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) || i == maxRetries-1 {
			return lastErr
		}
		delay := initialDelay << i
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}

func isRetryable(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "ETIMEDOUT") ||
		strings.Contains(msg, "ECONNREFUSED") ||
		strings.Contains(msg, "connection reset")
}
