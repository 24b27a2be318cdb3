// Package ratelimit provides fixed-window attempt limiters. The in-process
// limiter is the default; it is per-instance, so running several replicas
// multiplies the effective attempt budget by the replica count. The redis
// limiter exists for deployments that explicitly opt into a shared counter.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Elliot-Sones/NGAUGE-V2.0/internal/domain"
)

type memoryLimiter struct {
	now     func() time.Time
	buckets sync.Map // identity -> *memoryBucket
	size    atomic.Int64
	maxKeys int64

	gcMu sync.Mutex
}

type memoryBucket struct {
	mu        sync.Mutex
	count     int
	windowEnd time.Time
	dead      bool
}

type MemoryLimiterConfig struct {
	Now     func() time.Time
	MaxKeys int
}

func NewMemoryLimiter(cfg MemoryLimiterConfig) domain.RateLimiter {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.MaxKeys <= 0 {
		cfg.MaxKeys = 10000
	}
	return &memoryLimiter{
		now:     cfg.Now,
		maxKeys: int64(cfg.MaxKeys),
	}
}

// Allow performs one fixed-window check for key. A permitted check
// increments the window counter; a rejected check never does. Each
// identity's record is serialized by its own lock, so checks for distinct
// identities do not contend.
func (m *memoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration) (domain.RateLimitDecision, error) {
	if limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}
	now := m.now()

	for {
		bucket, err := m.bucketFor(key, now)
		if err != nil {
			return domain.RateLimitDecision{}, err
		}

		bucket.mu.Lock()
		if bucket.dead {
			// Swept between lookup and lock; take a fresh bucket.
			bucket.mu.Unlock()
			continue
		}

		if now.After(bucket.windowEnd) {
			bucket.count = 0
			bucket.windowEnd = now.Add(window)
		}

		if bucket.count < limit {
			bucket.count++
			decision := domain.RateLimitDecision{
				Allowed:   true,
				Limit:     limit,
				Remaining: limit - bucket.count,
				ResetAt:   bucket.windowEnd,
			}
			bucket.mu.Unlock()
			return decision, nil
		}

		decision := domain.RateLimitDecision{
			Allowed:   false,
			Limit:     limit,
			Remaining: 0,
			ResetAt:   bucket.windowEnd,
		}
		bucket.mu.Unlock()
		return decision, nil
	}
}

func (m *memoryLimiter) bucketFor(key string, now time.Time) (*memoryBucket, error) {
	if existing, ok := m.buckets.Load(key); ok {
		return existing.(*memoryBucket), nil
	}

	if m.size.Load() >= m.maxKeys {
		m.gc(now)
		if m.size.Load() >= m.maxKeys {
			return nil, errors.New("rate limiter capacity exceeded")
		}
	}

	fresh := &memoryBucket{windowEnd: now.Add(-time.Second)}
	actual, loaded := m.buckets.LoadOrStore(key, fresh)
	if !loaded {
		m.size.Add(1)
	}
	return actual.(*memoryBucket), nil
}

// gc sweeps buckets whose window has elapsed. Runs only when the key count
// reaches the cap, keeping the table bounded without a background goroutine.
func (m *memoryLimiter) gc(now time.Time) {
	m.gcMu.Lock()
	defer m.gcMu.Unlock()

	m.buckets.Range(func(key, value any) bool {
		bucket := value.(*memoryBucket)
		bucket.mu.Lock()
		if now.After(bucket.windowEnd) {
			bucket.dead = true
			m.buckets.Delete(key)
			m.size.Add(-1)
		}
		bucket.mu.Unlock()
		return true
	})
}
