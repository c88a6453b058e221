package auth

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginRateLimiterBlocksAfterMaxFailures(t *testing.T) {
	limiter := NewLoginRateLimiter(5, 15*time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("10.0.0.1"), "attempt %d should be allowed", i+1)
		limiter.RecordFailure("10.0.0.1")
	}

	require.False(t, limiter.Allow("10.0.0.1"), "6th attempt should be blocked")
	require.True(t, limiter.Allow("10.0.0.2"), "other IPs are unaffected")
}

func TestLoginRateLimiterResetOnSuccess(t *testing.T) {
	limiter := NewLoginRateLimiter(5, 15*time.Minute)

	for i := 0; i < 4; i++ {
		limiter.RecordFailure("10.0.0.1")
	}
	limiter.Reset("10.0.0.1")

	require.True(t, limiter.Allow("10.0.0.1"))
	limiter.RecordFailure("10.0.0.1")
	require.True(t, limiter.Allow("10.0.0.1"), "counter restarted after reset")
}

func TestLoginRateLimiterWindowExpiry(t *testing.T) {
	now := time.Now()
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	limiter := NewLoginRateLimiterWithClock(5, 15*time.Minute, clock)

	for i := 0; i < 5; i++ {
		limiter.RecordFailure("10.0.0.1")
	}
	require.False(t, limiter.Allow("10.0.0.1"))

	advance(14 * time.Minute)
	require.False(t, limiter.Allow("10.0.0.1"), "still inside the window")

	advance(2 * time.Minute)
	require.True(t, limiter.Allow("10.0.0.1"), "window elapsed, counter cleared")
}

func TestLoginRateLimiterConcurrentFailuresCompose(t *testing.T) {
	limiter := NewLoginRateLimiter(5, 15*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			limiter.RecordFailure("10.0.0.1")
		}()
	}
	wg.Wait()

	require.False(t, limiter.Allow("10.0.0.1"), "concurrent failures add up")
}
