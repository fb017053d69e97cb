// Package ratelimit provides a keyed token-bucket limiter used to protect
// the API per client address. Each key gets an independent bucket; idle
// buckets are evicted so the key map stays bounded.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const evictInterval = 5 * time.Minute

// Limiter manages per-key rate limiting.
type Limiter struct {
	mu       sync.RWMutex
	buckets  map[string]*bucket
	limit    rate.Limit
	burst    int

	done     chan struct{}
	stopOnce sync.Once
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a keyed limiter allowing rps requests per second with the
// given burst per key.
func New(rps float64, burst int) *Limiter {
	l := &Limiter{
		buckets: make(map[string]*bucket),
		limit:   rate.Limit(rps),
		burst:   burst,
		done:    make(chan struct{}),
	}

	go l.evictLoop()

	return l
}

// Allow reports whether a request for the key may proceed right now.
func (l *Limiter) Allow(key string) bool {
	return l.getBucket(key).Allow()
}

// Wait blocks until a request for the key may proceed or the context is
// canceled.
func (l *Limiter) Wait(ctx context.Context, key string) error {
	return l.getBucket(key).Wait(ctx)
}

func (l *Limiter) getBucket(key string) *rate.Limiter {
	now := time.Now()

	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()

	if exists {
		l.mu.Lock()
		b.lastSeen = now
		l.mu.Unlock()
		return b.limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Re-check under the write lock.
	if b, exists = l.buckets[key]; exists {
		b.lastSeen = now
		return b.limiter
	}

	b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst), lastSeen: now}
	l.buckets[key] = b
	return b.limiter
}

// Stop shuts down the eviction goroutine.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() {
		close(l.done)
	})
}

func (l *Limiter) evictLoop() {
	ticker := time.NewTicker(evictInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case now := <-ticker.C:
			l.evict(now)
		}
	}
}

// evict drops buckets idle for more than one eviction interval. A dropped
// bucket simply re-fills on the key's next request.
func (l *Limiter) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > evictInterval {
			delete(l.buckets, key)
		}
	}
}
