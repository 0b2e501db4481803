package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const (
	// AuthenticatedRateLimit is GitHub's hourly core limit for a token.
	AuthenticatedRateLimit = 5000
	// AnonymousRateLimit is GitHub's hourly core limit without a token.
	AnonymousRateLimit = 60
)

// RequestBudget tracks GitHub's advertised rate limit across all fetches of
// a lint run. Acquire blocks while the budget is spent or a Retry-After
// cooldown is active; UpdateFromResponse refreshes it from response headers.
type RequestBudget struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	cooldown  time.Time
	probed    bool
	now       func() time.Time
	wake      chan struct{}
}

// BudgetSnapshot is a point-in-time view of a RequestBudget.
type BudgetSnapshot struct {
	Remaining int
	Reset     time.Time
	Cooldown  time.Time
}

func NewRequestBudget() *RequestBudget {
	return NewRequestBudgetWithLimit(AuthenticatedRateLimit)
}

// NewRequestBudgetWithLimit starts the budget at limit requests, refreshed an
// hour from now unless a response says otherwise.
func NewRequestBudgetWithLimit(limit int) *RequestBudget {
	if limit < 0 {
		limit = 0
	}
	return &RequestBudget{
		remaining: limit,
		reset:     time.Now().Add(time.Hour),
		now:       time.Now,
		wake:      make(chan struct{}),
	}
}

func (b *RequestBudget) Remaining() int {
	return b.Snapshot().Remaining
}

func (b *RequestBudget) Snapshot() BudgetSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return BudgetSnapshot{Remaining: b.remaining, Reset: b.reset, Cooldown: b.cooldown}
}

// Acquire takes n requests from the budget, waiting as needed.
func (b *RequestBudget) Acquire(ctx context.Context, n int) error {
	switch {
	case ctx == nil:
		return fmt.Errorf("Acquire: nil context")
	case n <= 0:
		return fmt.Errorf("Acquire: n must be > 0 (got %d)", n)
	case b == nil:
		return fmt.Errorf("Acquire: nil RequestBudget")
	case b.now == nil || b.wake == nil:
		return fmt.Errorf("Acquire: RequestBudget not initialized (use NewRequestBudget)")
	}

	for i := 0; i < n; i++ {
		if err := b.acquireOne(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (b *RequestBudget) acquireOne(ctx context.Context) error {
	for {
		b.mu.Lock()
		now := b.now()
		wake := b.wake

		if now.Before(b.cooldown) {
			until := b.cooldown
			b.mu.Unlock()
			if err := sleep(ctx, until.Sub(now), wake); err != nil {
				return err
			}
			continue
		}

		if b.remaining > 0 {
			b.remaining--
			b.mu.Unlock()
			return nil
		}

		// Past the reset with no refreshed headers yet: one probe request goes
		// through, everyone else waits for its response.
		if !now.Before(b.reset) {
			if !b.probed {
				b.probed = true
				b.mu.Unlock()
				return nil
			}
			b.mu.Unlock()
			if err := sleep(ctx, -1, wake); err != nil {
				return err
			}
			continue
		}

		reset := b.reset
		b.mu.Unlock()
		if err := sleep(ctx, reset.Sub(now), wake); err != nil {
			return err
		}
	}
}

// sleep waits for d, a wake signal, or ctx cancellation. A negative d waits
// without a timer.
func sleep(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	if d < 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
	case <-timer.C:
	}
	return nil
}

// UpdateFromResponse applies Retry-After and X-RateLimit-* headers and wakes
// waiters if anything changed.
func (b *RequestBudget) UpdateFromResponse(resp *http.Response) {
	if resp == nil || b == nil || b.now == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	changed := false

	if seconds, ok := headerInt64(resp.Header, "Retry-After"); ok && seconds > 0 {
		until := b.now().Add(time.Duration(seconds) * time.Second)
		if until.After(b.cooldown) {
			b.cooldown = until
			changed = true
		}
	}

	if val, ok := headerInt64(resp.Header, "X-RateLimit-Remaining"); ok && val >= 0 && int(val) != b.remaining {
		b.remaining = int(val)
		changed = true
	}

	if val, ok := headerInt64(resp.Header, "X-RateLimit-Reset"); ok && val > 0 {
		reset := time.Unix(val, 0)
		if !b.reset.Equal(reset) {
			b.reset = reset
			changed = true
		}
	}

	if changed {
		b.probed = false
		close(b.wake)
		b.wake = make(chan struct{})
	}
}

func headerInt64(h http.Header, name string) (int64, bool) {
	raw := h.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
