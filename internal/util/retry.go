// ABOUTME: Retry helpers with exponential backoff and jitter for outbound calls
// ABOUTME: Shared by the weather and news collaborator clients
package util

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Backoff returns exponential backoff with jitter for the given attempt.
// The base delay doubles per attempt, capped at 30s, with ±25% jitter.
// Non-positive base delays yield zero.
func Backoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff <= 0 {
		return 0
	}
	if backoff > 30*time.Second {
		backoff = 30 * time.Second
	}
	if half := int64(backoff) / 2; half > 0 {
		backoff += time.Duration(rand.Int64N(half)) - backoff/4
	}
	return backoff
}

type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying; Retry stops immediately and
// returns the wrapped error.
func Permanent(err error) error {
	return &permanentError{err: err}
}

// Retry runs fn up to maxAttempts times, sleeping with Backoff between
// attempts. It returns the first success, the last error, the unwrapped
// error when fn reports a Permanent failure, or the context error when
// the context ends first.
func Retry(ctx context.Context, maxAttempts int, baseDelay time.Duration, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(Backoff(baseDelay, attempt)):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fn(); err == nil {
			return nil
		}
		var pe *permanentError
		if errors.As(err, &pe) {
			return pe.err
		}
	}
	return err
}
