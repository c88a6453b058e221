package auth

import (
	"sync"
	"time"
)

// LoginRateLimiter throttles failed login attempts per client IP with a
// sliding window. State is process-local: a restart clears all counters,
// which is acceptable for a coarse abuse deterrent.
type LoginRateLimiter struct {
	mu       sync.Mutex
	max      int
	window   time.Duration
	now      func() time.Time
	failures map[string][]time.Time
}

// NewLoginRateLimiter builds a limiter using the wall clock.
func NewLoginRateLimiter(maxFailures int, window time.Duration) *LoginRateLimiter {
	return NewLoginRateLimiterWithClock(maxFailures, window, time.Now)
}

// NewLoginRateLimiterWithClock builds a limiter with an injectable clock so
// tests can simulate window expiry deterministically.
func NewLoginRateLimiterWithClock(maxFailures int, window time.Duration, now func() time.Time) *LoginRateLimiter {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginRateLimiter{
		max:      maxFailures,
		window:   window,
		now:      now,
		failures: make(map[string][]time.Time),
	}
}

// Allow reports whether the IP may attempt a login. Once the failure budget
// is spent inside the window, every attempt is rejected until the window
// elapses, regardless of credential correctness.
func (l *LoginRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.prune(ip)) < l.max
}

// RecordFailure charges a failed attempt against the IP.
func (l *LoginRateLimiter) RecordFailure(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[ip] = append(l.prune(ip), l.now())
}

// Reset clears the counter for the IP after a successful authentication.
func (l *LoginRateLimiter) Reset(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, ip)
}

// prune drops failures that fell out of the window. Caller holds the lock.
func (l *LoginRateLimiter) prune(ip string) []time.Time {
	cutoff := l.now().Add(-l.window)
	kept := l.failures[ip][:0]
	for _, ts := range l.failures[ip] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(l.failures, ip)
		return nil
	}
	l.failures[ip] = kept
	return kept
}
