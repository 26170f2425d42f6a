package translation

import (
	"context"
	"sync"
	"time"
)

// rateLimiter spaces requests so that no more than requestsPerMinute start
// in any one minute window. A nil limiter never waits.
type rateLimiter struct {
	mu                sync.Mutex
	requestsPerMinute int
	requests          []time.Time
	now               func() time.Time
}

func newRateLimiter(rpm int) *rateLimiter {
	if rpm <= 0 {
		return nil
	}
	return &rateLimiter{
		requestsPerMinute: rpm,
		requests:          make([]time.Time, 0, rpm),
		now:               time.Now,
	}
}

// wait blocks until the caller may issue a request or ctx is done
func (rl *rateLimiter) wait(ctx context.Context) error {
	if rl == nil {
		return nil
	}

	rl.mu.Lock()
	now := rl.now()

	// Remove requests older than 1 minute
	cutoff := now.Add(-1 * time.Minute)
	i := 0
	for i < len(rl.requests) && !rl.requests[i].After(cutoff) {
		i++
	}
	rl.requests = rl.requests[i:]

	// Reserve the earliest slot that keeps the window within the limit
	slot := now
	if len(rl.requests) >= rl.requestsPerMinute {
		slot = rl.requests[len(rl.requests)-rl.requestsPerMinute].Add(time.Minute)
	}
	rl.requests = append(rl.requests, slot)
	rl.mu.Unlock()

	delay := slot.Sub(now)
	if delay <= 0 {
		return nil
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
