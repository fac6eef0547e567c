package ratelimit

import (
	"sync"
	"testing"
)

func TestCounterAllow(t *testing.T) {

	t.Run("DeniesTheLimitThRequest", func(t *testing.T) {

		// Arrange
		c := NewCounter(5)

		// Act & Assert
		for i := 1; i <= 4; i++ {
			if !c.Allow() {
				t.Fatalf("request %d should be allowed", i)
			}
		}
		if c.Allow() {
			t.Fatalf("request 5 should be denied")
		}
	})

	t.Run("ResetsAfterDenial", func(t *testing.T) {

		// Arrange
		c := NewCounter(5)
		for range 4 {
			c.Allow()
		}
		c.Allow() // denied, resets counter

		// Act & Assert
		if got := c.Count(); got != 0 {
			t.Fatalf("expected counter reset to 0, got %d", got)
		}
		for i := 1; i <= 4; i++ {
			if !c.Allow() {
				t.Fatalf("request %d after reset should be allowed", i)
			}
		}
		if c.Allow() {
			t.Fatalf("request 5 after reset should be denied")
		}
	})

	t.Run("DefaultLimit", func(t *testing.T) {

		// Arrange
		c := NewCounter(0)

		// Act
		denied := 0
		for range 5 {
			if !c.Allow() {
				denied++
			}
		}

		// Assert
		if denied != 1 {
			t.Fatalf("expected exactly 1 denial in 5 requests, got %d", denied)
		}
	})

	t.Run("ConcurrentRequests", func(t *testing.T) {

		// Arrange
		const total = 1000
		c := NewCounter(5)

		var mu sync.Mutex
		denied := 0

		// Act
		var wg sync.WaitGroup
		for range total {
			wg.Go(func() {
				if !c.Allow() {
					mu.Lock()
					denied++
					mu.Unlock()
				}
			})
		}
		wg.Wait()

		// Assert: every denial resets the counter, so out of 1000 requests
		// exactly one in five is denied.
		if denied != total/5 {
			t.Fatalf("expected %d denials, got %d", total/5, denied)
		}
	})
}
