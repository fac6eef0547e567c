package ratelimit

import "go.uber.org/atomic"

// DefaultMaxRequests is used when NewCounter receives a non-positive limit.
const DefaultMaxRequests int64 = 5

// Limiter decides whether a request may proceed.
type Limiter interface {
	// Allow reports whether the current request is within the limit.
	Allow() bool
}

// Counter is a process-wide request limiter.
//
// It counts requests with no time decay: every allowed request increments the
// counter, and once the limit is reached the counter resets to zero and that
// request is denied. Denials therefore repeat on a fixed cycle rather than
// within a time window. The counter is shared by all callers holding the same
// instance.
type Counter struct {
	count *atomic.Int64
	max   int64
}

// NewCounter creates a Counter that denies every max-th request.
func NewCounter(max int64) *Counter {
	if max < 1 {
		max = DefaultMaxRequests
	}

	return &Counter{
		count: atomic.NewInt64(0),
		max:   max,
	}
}

// Allow increments the counter and reports whether the request may proceed.
//
// When the incremented count reaches the limit, the counter resets to zero
// and Allow returns false for that request.
func (c *Counter) Allow() bool {
	for {
		n := c.count.Load()
		if n+1 >= c.max {
			if c.count.CompareAndSwap(n, 0) {
				return false
			}
			continue
		}
		if c.count.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// Count returns the current counter value.
func (c *Counter) Count() int64 {
	return c.count.Load()
}
