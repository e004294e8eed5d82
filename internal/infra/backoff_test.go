package infra

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

func TestBackoff_SucceedsAfterFailures(t *testing.T) {
	b := Backoff{Attempts: 3, Initial: time.Millisecond, Max: 5 * time.Millisecond, Factor: 2}

	calls := 0
	err := b.Retry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestBackoff_SingleAttemptMeansNoRetry(t *testing.T) {
	b := DefaultBackoff(1)

	calls := 0
	err := b.Retry(context.Background(), func() error {
		calls++
		return errors.New("boom")
	})

	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestBackoff_ContextCancellationNotRetried(t *testing.T) {
	b := Backoff{Attempts: 5, Initial: time.Millisecond, Max: time.Millisecond, Factor: 1}

	calls := 0
	err := b.Retry(context.Background(), func() error {
		calls++
		return context.Canceled
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls: got %d, want 1", calls)
	}
}

func TestIsRetryableHTTPStatus(t *testing.T) {
	retryable := []int{http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusGatewayTimeout}
	for _, code := range retryable {
		if !IsRetryableHTTPStatus(code) {
			t.Errorf("%d should be retryable", code)
		}
	}
	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound} {
		if IsRetryableHTTPStatus(code) {
			t.Errorf("%d should not be retryable", code)
		}
	}
}
