package fetcher

import (
	"context"
	"net/http"
	"testing"
	"time"
)

var budgetNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestBudget(remaining int, reset time.Time) *RequestBudget {
	b := NewRequestBudgetWithLimit(remaining)
	b.now = func() time.Time { return budgetNow }
	b.reset = reset
	return b
}

func rateLimitResponse(headers map[string]string) *http.Response {
	resp := &http.Response{Header: make(http.Header)}
	for k, v := range headers {
		resp.Header.Set(k, v)
	}
	return resp
}

func shortCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	t.Cleanup(cancel)
	return ctx
}

func TestNewRequestBudget_Limits(t *testing.T) {
	if got := NewRequestBudget().Remaining(); got != AuthenticatedRateLimit {
		t.Fatalf("default remaining = %d, want %d", got, AuthenticatedRateLimit)
	}
	if got := NewRequestBudgetWithLimit(AnonymousRateLimit).Remaining(); got != AnonymousRateLimit {
		t.Fatalf("anonymous remaining = %d, want %d", got, AnonymousRateLimit)
	}
	if got := NewRequestBudgetWithLimit(-3).Remaining(); got != 0 {
		t.Fatalf("negative limit remaining = %d, want 0", got)
	}
}

func TestRequestBudget_AcquireDecrements(t *testing.T) {
	b := newTestBudget(3, budgetNow.Add(time.Hour))
	if err := b.Acquire(context.Background(), 2); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if got := b.Remaining(); got != 1 {
		t.Fatalf("remaining = %d, want 1", got)
	}
}

func TestRequestBudget_UpdateFromResponse(t *testing.T) {
	b := newTestBudget(AnonymousRateLimit, budgetNow.Add(time.Hour))
	b.UpdateFromResponse(rateLimitResponse(map[string]string{
		"X-RateLimit-Remaining": "10",
		"X-RateLimit-Reset":     "1773480000",
	}))

	snap := b.Snapshot()
	if snap.Remaining != 10 {
		t.Errorf("remaining = %d, want 10", snap.Remaining)
	}
	if !snap.Reset.Equal(time.Unix(1773480000, 0)) {
		t.Errorf("reset = %v", snap.Reset)
	}
}

func TestRequestBudget_IgnoresInvalidHeaders(t *testing.T) {
	reset := time.Unix(123, 0)
	b := newTestBudget(7, reset)
	b.UpdateFromResponse(rateLimitResponse(map[string]string{
		"X-RateLimit-Remaining": "nope",
		"X-RateLimit-Reset":     "not-a-time",
		"Retry-After":           "Wed, 21 Oct 2015 07:28:00 GMT",
	}))

	snap := b.Snapshot()
	if snap.Remaining != 7 || !snap.Reset.Equal(reset) || !snap.Cooldown.IsZero() {
		t.Fatalf("snapshot changed: %+v", snap)
	}
}

func TestRequestBudget_RetryAfterCooldown(t *testing.T) {
	b := newTestBudget(AuthenticatedRateLimit, budgetNow.Add(-time.Hour))

	b.UpdateFromResponse(rateLimitResponse(map[string]string{"Retry-After": "60"}))
	b.UpdateFromResponse(rateLimitResponse(map[string]string{"Retry-After": "10"}))

	if got, want := b.Snapshot().Cooldown, budgetNow.Add(60*time.Second); !got.Equal(want) {
		t.Fatalf("cooldown = %v, want %v", got, want)
	}
	if err := b.Acquire(shortCtx(t), 1); err == nil {
		t.Fatalf("expected Acquire to block during cooldown")
	}
}

func TestRequestBudget_ExhaustedBeforeReset(t *testing.T) {
	b := newTestBudget(0, budgetNow.Add(time.Hour))
	if err := b.Acquire(shortCtx(t), 1); err == nil {
		t.Fatalf("expected Acquire to block until reset")
	}
}

func TestRequestBudget_SingleProbeAfterReset(t *testing.T) {
	b := newTestBudget(0, budgetNow.Add(-time.Second))

	if err := b.Acquire(context.Background(), 1); err != nil {
		t.Fatalf("probe Acquire: %v", err)
	}
	if got := b.Remaining(); got != 0 {
		t.Fatalf("remaining after probe = %d, want 0", got)
	}
	if err := b.Acquire(shortCtx(t), 1); err == nil {
		t.Fatalf("expected second Acquire to wait for the probe's response")
	}
}

func TestRequestBudget_UpdateWakesWaiters(t *testing.T) {
	b := newTestBudget(0, budgetNow.Add(time.Hour))

	errCh := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		errCh <- b.Acquire(ctx, 1)
	}()

	time.Sleep(10 * time.Millisecond)
	b.UpdateFromResponse(rateLimitResponse(map[string]string{
		"X-RateLimit-Remaining": "1",
		"X-RateLimit-Reset":     "1773480000",
	}))

	if err := <-errCh; err != nil {
		t.Fatalf("Acquire after update: %v", err)
	}
}

func TestRequestBudget_InvalidInputs(t *testing.T) {
	b := newTestBudget(1, budgetNow.Add(time.Hour))

	tests := []struct {
		name string
		ctx  context.Context
		n    int
	}{
		{name: "nil ctx", ctx: nil, n: 1},
		{name: "zero", ctx: context.Background(), n: 0},
		{name: "negative", ctx: context.Background(), n: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Acquire(tt.ctx, tt.n); err == nil {
				t.Fatalf("expected error")
			}
		})
	}

	var zero RequestBudget
	if err := zero.Acquire(context.Background(), 1); err == nil {
		t.Fatalf("expected error for uninitialized budget")
	}
}

func TestSleep(t *testing.T) {
	wake := make(chan struct{})
	close(wake)
	if err := sleep(context.Background(), time.Hour, wake); err != nil {
		t.Fatalf("woken sleep: %v", err)
	}
	if err := sleep(context.Background(), 0, make(chan struct{})); err != nil {
		t.Fatalf("zero sleep: %v", err)
	}
	if err := sleep(shortCtx(t), -1, make(chan struct{})); err == nil {
		t.Fatalf("expected ctx error for untimed sleep")
	}
}
