package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		calls    int
		wantPass int
	}{
		{"burst allows initial requests", 1, 3, 3, 3},
		{"exceeding burst blocks", 1, 2, 5, 2},
		{"single token", 1, 1, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(tt.rps, tt.burst)
			defer l.Stop()

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if l.Allow("client") {
					passed++
				}
			}
			assert.Equal(t, tt.wantPass, passed)
		})
	}
}

func TestLimiter_IndependentKeys(t *testing.T) {
	l := New(1, 1)
	defer l.Stop()

	require.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	l := New(0.1, 1)
	defer l.Stop()

	l.Allow("client") // drain the bucket

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx, "client")
	require.Error(t, err)
}

func TestLimiter_EvictDropsIdleBuckets(t *testing.T) {
	l := New(1, 1)
	defer l.Stop()

	l.Allow("old")
	l.mu.Lock()
	l.buckets["old"].lastSeen = time.Now().Add(-2 * evictInterval)
	l.mu.Unlock()

	l.evict(time.Now())

	l.mu.RLock()
	_, exists := l.buckets["old"]
	l.mu.RUnlock()
	assert.False(t, exists)

	// A refilled bucket means the evicted key is usable again.
	assert.True(t, l.Allow("old"))
}
