// Package ratelimiter limits how often a client may call an endpoint.
package ratelimiter

import (
	"sync"
	"time"
)

// Limiter decides whether another call for key is allowed now.
type Limiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

type window struct {
	count     int
	lastReset time.Time
}

// RateLimiter is a fixed-window counter per key. Each key may make limit
// calls per interval; the window resets interval after its first call.
type RateLimiter struct {
	limit    int
	interval time.Duration
	now      func() time.Time

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

// NewRateLimiter returns a limiter allowing limit calls per interval per key.
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		now:      time.Now,
		windows:  make(map[string]*window),
	}
}

// Allow counts a call for key. When the window is exhausted it reports how
// long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	// Expired windows are dropped at most once per interval.
	if now.Sub(rl.lastSweep) >= rl.interval {
		rl.sweep(now)
		rl.lastSweep = now
	}

	w, ok := rl.windows[key]
	if !ok || now.Sub(w.lastReset) >= rl.interval {
		w = &window{lastReset: now}
		rl.windows[key] = w
	}

	if w.count >= rl.limit {
		return false, rl.interval - now.Sub(w.lastReset)
	}
	w.count++
	return true, 0
}

func (rl *RateLimiter) sweep(now time.Time) {
	for k, w := range rl.windows {
		if now.Sub(w.lastReset) >= rl.interval {
			delete(rl.windows, k)
		}
	}
}
