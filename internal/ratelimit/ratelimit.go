// Package ratelimit throttles actions per key with a token bucket.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter gives every key its own independent bucket
type KeyedRateLimiter struct {
	mu      sync.Mutex
	entries map[string]*entry
	limit   rate.Limit
	burst   int
	idle    time.Duration
}

// New allows one action per interval per key with the given burst.
// Buckets unused for longer than idle are dropped by Prune.
func New(interval time.Duration, burst int, idle time.Duration) *KeyedRateLimiter {
	return &KeyedRateLimiter{
		entries: make(map[string]*entry),
		limit:   rate.Every(interval),
		burst:   burst,
		idle:    idle,
	}
}

// Allow reports whether the key may act now, consuming a token if so
func (k *KeyedRateLimiter) Allow(key string) bool {
	return k.AllowAt(key, time.Now())
}

// AllowAt is Allow evaluated at the given instant
func (k *KeyedRateLimiter) AllowAt(key string, now time.Time) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	e, ok := k.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Prune drops buckets idle since before now-idle and returns how many were removed
func (k *KeyedRateLimiter) Prune(now time.Time) int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, e := range k.entries {
		if now.Sub(e.lastSeen) > k.idle {
			delete(k.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (k *KeyedRateLimiter) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.entries)
}
