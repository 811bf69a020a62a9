package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles callers independently with one token bucket per
// key. Safe for concurrent use.
type Limiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	limit     rate.Limit
	burst     int
	idleFor   time.Duration
	lastPrune time.Time
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a Limiter allowing perMinute events per key with the
// given burst.
func New(perMinute, burst int) *Limiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	if burst <= 0 {
		burst = perMinute
	}
	return &Limiter{
		buckets:   map[string]*bucket{},
		limit:     rate.Limit(float64(perMinute) / 60),
		burst:     burst,
		idleFor:   10 * time.Minute,
		lastPrune: time.Now(),
	}
}

// Allow reports whether the caller identified by key may proceed.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	if now.Sub(l.lastPrune) > l.idleFor {
		l.prune(now)
	}

	return b.limiter.Allow()
}

// prune drops buckets idle past the horizon. Caller holds the lock.
func (l *Limiter) prune(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleFor {
			delete(l.buckets, key)
		}
	}
	l.lastPrune = now
}
