// ABOUTME: Retry policy for embedding, generation, and transcript calls
// ABOUTME: Bounded exponential backoff with jitter that retries only transient failures
package util

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"
)

// CalculateBackoff returns exponential backoff with jitter
// Base delay is doubled each attempt, with random jitter up to 25%
func CalculateBackoff(baseDelay time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseDelay <= 0 {
		return 0
	}
	// Cap attempt to avoid overflow in bit shift (max 30 for safety)
	if attempt > 30 {
		attempt = 30
	}
	backoff := baseDelay * time.Duration(1<<uint(attempt))
	if backoff > 30*time.Second || backoff <= 0 {
		backoff = 30 * time.Second
	}
	// Add jitter: -25% to +25% using auto-seeded math/rand/v2
	jitter := time.Duration(rand.Int64N(int64(backoff)/2)) - backoff/4
	return backoff + jitter
}

// RetryPolicy bounds how external calls are retried
type RetryPolicy struct {
	MaxRetries     int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
	MaxElapsed     time.Duration
}

// DefaultRetryPolicy matches the client defaults: 3 retries, 2s base delay, 30s per attempt
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:     3,
		BaseDelay:      2 * time.Second,
		AttemptTimeout: 30 * time.Second,
		MaxElapsed:     2 * time.Minute,
	}
}

// jitterBackOff adapts CalculateBackoff to backoff.BackOff
type jitterBackOff struct {
	base    time.Duration
	attempt int
}

func (b *jitterBackOff) NextBackOff() time.Duration {
	b.attempt++
	return CalculateBackoff(b.base, b.attempt)
}

func (b *jitterBackOff) Reset() {
	b.attempt = 0
}

// Retry runs fn under policy p. Each attempt gets its own timeout derived from ctx.
// Permanent failures and context cancellation stop immediately.
func Retry[T any](ctx context.Context, p RetryPolicy, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := 0
	operation := func() (T, error) {
		attempts++
		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
			defer cancel()
		}

		result, err := fn(attemptCtx)
		if err == nil {
			return result, nil
		}
		if ctx.Err() != nil || !IsTransient(err) {
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	maxElapsed := p.MaxElapsed
	if maxElapsed <= 0 {
		maxElapsed = 2 * time.Minute
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&jitterBackOff{base: p.BaseDelay}),
		backoff.WithMaxTries(uint(max(p.MaxRetries, 0)+1)),
		backoff.WithMaxElapsedTime(maxElapsed),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Debug().Str("op", op).Int("attempt", attempts).Dur("wait", wait).Err(err).Msg("retrying")
		}),
	)
	if err != nil && attempts > 1 {
		return result, fmt.Errorf("%s failed after %d attempts: %w", op, attempts, err)
	}
	return result, err
}

// StatusError carries an HTTP status from a provider response
type StatusError struct {
	Code int
	Err  error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("status %d %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	return e.Err
}

// IsRetryableStatus returns true for HTTP status codes worth retrying
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsTransient reports whether err is worth retrying: throttling, 5xx, network, or timeout
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.Code)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
