// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and transient versus permanent classification
package util

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"
	"time"
)

func TestCalculateBackoff_Bounds(t *testing.T) {
	tests := []struct {
		name     string
		base     time.Duration
		attempt  int
		min, max time.Duration
	}{
		{"zero attempt", time.Second, 0, 0, 0},
		{"negative attempt", time.Second, -100, 0, 0},
		{"zero base", 0, 3, 0, 0},
		{"first retry", 100 * time.Millisecond, 1, 150 * time.Millisecond, 250 * time.Millisecond},
		{"fourth retry", 100 * time.Millisecond, 4, 1200 * time.Millisecond, 2 * time.Second},
		{"capped", time.Second, 10, 22500 * time.Millisecond, 37500 * time.Millisecond},
		{"huge attempt", time.Millisecond, 100, 22500 * time.Millisecond, 37500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				got := CalculateBackoff(tt.base, tt.attempt)
				if got < tt.min || got > tt.max {
					t.Fatalf("CalculateBackoff(%v, %d) = %v, want within [%v, %v]", tt.base, tt.attempt, got, tt.min, tt.max)
				}
			}
		})
	}
}

func TestCalculateBackoff_Jitter(t *testing.T) {
	seen := map[time.Duration]bool{}
	for i := 0; i < 50; i++ {
		seen[CalculateBackoff(time.Second, 2)] = true
	}
	if len(seen) < 2 {
		t.Error("jitter should vary the delay across calls")
	}
}

func testPolicy(retries int) RetryPolicy {
	return RetryPolicy{MaxRetries: retries, BaseDelay: 0, AttemptTimeout: time.Second}
}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	got, err := Retry(context.Background(), testPolicy(3), "test", func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", &StatusError{Code: http.StatusServiceUnavailable}
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if got != "ok" {
		t.Errorf("Retry() = %q, want ok", got)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := &StatusError{Code: http.StatusUnauthorized}
	_, err := Retry(context.Background(), testPolicy(5), "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, permanent
	})
	if !errors.Is(err, permanent) {
		t.Errorf("Retry() error = %v, want %v", err, permanent)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_BoundedAttempts(t *testing.T) {
	calls := 0
	_, err := Retry(context.Background(), testPolicy(2), "test", func(ctx context.Context) (int, error) {
		calls++
		return 0, &StatusError{Code: http.StatusTooManyRequests}
	})
	if err == nil {
		t.Fatal("Retry() expected error after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3 (1 + 2 retries)", calls)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("Retry() error = %v, want wrapped 429", err)
	}
}

func TestRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := Retry(ctx, testPolicy(5), "test", func(ctx context.Context) (int, error) {
		calls++
		cancel()
		return 0, &StatusError{Code: http.StatusBadGateway}
	})
	if err == nil {
		t.Fatal("Retry() expected error on cancelled context")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRetry_AttemptTimeoutApplied(t *testing.T) {
	policy := RetryPolicy{MaxRetries: 0, AttemptTimeout: 50 * time.Millisecond}
	_, err := Retry(context.Background(), policy, "test", func(ctx context.Context) (int, error) {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("attempt context has no deadline")
		}
		<-ctx.Done()
		return 0, ctx.Err()
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Retry() error = %v, want deadline exceeded", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "429", err: &StatusError{Code: 429}, want: true},
		{name: "500", err: &StatusError{Code: 500}, want: true},
		{name: "503 wrapped", err: fmt.Errorf("call: %w", &StatusError{Code: 503}), want: true},
		{name: "400", err: &StatusError{Code: 400}, want: false},
		{name: "401", err: &StatusError{Code: 401}, want: false},
		{name: "404", err: &StatusError{Code: 404}, want: false},
		{name: "deadline", err: context.DeadlineExceeded, want: true},
		{name: "canceled", err: context.Canceled, want: false},
		{name: "dial error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, want: true},
		{name: "temporary dns", err: &net.DNSError{IsTemporary: true}, want: true},
		{name: "missing host", err: &net.DNSError{IsNotFound: true}, want: false},
		{name: "plain error", err: errors.New("bad request body"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
