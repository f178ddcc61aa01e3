package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for cache operations.
var (
	// ErrCacheMiss indicates the key was not found in the cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrNetwork indicates a transient network failure talking to the backend.
	ErrNetwork = errors.New("network error")
)

// RetryableError wraps an error that may succeed on retry.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.Err)
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is marked retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to attempts times with exponential backoff,
// stopping early on success, a non-retryable error, or context cancellation.
func RetryWithBackoff(ctx context.Context, attempts int, initial time.Duration, fn func() error) error {
	var err error
	delay := initial
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return err
}
