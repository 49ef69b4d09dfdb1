// Package writer serializes appends to the persisted store, enforcing the
// store's write-rate ceiling and retrying transient failures.
package writer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tnt-robotics/sponsorscout/internal/domain"
	"github.com/tnt-robotics/sponsorscout/internal/ports"
)

// Default retry policy values, matching the store collaborator's observed
// transient-failure behavior.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 1500 * time.Millisecond
	DefaultRatePerMin  = 60
)

// RetryPolicy bounds write attempts against the store. The inter-attempt
// delay is fixed and independent of the rate-limit spacing.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// DefaultRetryPolicy returns the default bounded retry policy.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay}
}

// Limited routes all appends through a single write slot, spacing
// successful writes at least 60s/rate apart regardless of which producer
// issues them. Concurrent producers queue behind the slot, which bounds
// effective throughput to the configured rate no matter how many fetch
// tasks are active.
type Limited struct {
	store   ports.RowStore
	policy  RetryPolicy
	spacing time.Duration
	logger  ports.Logger

	mu        sync.Mutex // the single write slot
	lastWrite time.Time

	// injectable for tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewLimited creates a writer over store allowing ratePerMinute successful
// writes per minute.
func NewLimited(store ports.RowStore, ratePerMinute int, policy RetryPolicy, logger ports.Logger) *Limited {
	if ratePerMinute <= 0 {
		ratePerMinute = DefaultRatePerMin
	}
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = DefaultMaxAttempts
	}
	return &Limited{
		store:   store,
		policy:  policy,
		spacing: time.Minute / time.Duration(ratePerMinute),
		logger:  logger,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Append writes one entry to the store, waiting out the global inter-write
// spacing first and retrying transient failures up to the policy bound.
// A returned error wraps domain.ErrWriteExhausted; the caller must not
// mark the name as recorded.
func (w *Limited) Append(ctx context.Context, entry domain.Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if wait := w.spacing - w.now().Sub(w.lastWrite); wait > 0 && !w.lastWrite.IsZero() {
		w.sleep(wait)
	}

	var lastErr error
	for attempt := 1; attempt <= w.policy.MaxAttempts; attempt++ {
		lastErr = w.store.Append(ctx, entry)
		if lastErr == nil {
			w.lastWrite = w.now()
			return nil
		}
		w.logger.Warn("store append failed",
			ports.String("name", entry.Name),
			ports.Int("attempt", attempt),
			ports.Err(lastErr),
		)
		if attempt < w.policy.MaxAttempts {
			w.sleep(w.policy.Delay)
		}
	}
	return fmt.Errorf("%w: %q after %d attempts: %v",
		domain.ErrWriteExhausted, entry.Name, w.policy.MaxAttempts, lastErr)
}
