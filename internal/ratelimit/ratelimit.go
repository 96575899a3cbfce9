package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter throttles actions per key (a chat, a download host, ...).
type Limiter interface {
	Allow(key string) bool
	Wait(ctx context.Context, key string) error
}

// InMemoryLimiter keeps one token bucket per key.
type InMemoryLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
	r        rate.Limit
	b        int
}

// NewInMemoryLimiter allows `requests` actions every `per`, with bursts of `burst`.
// Example: NewInMemoryLimiter(1, 5*time.Second, 3) allows one action every 5 seconds, bursts of 3.
func NewInMemoryLimiter(requests int, per time.Duration, burst int) *InMemoryLimiter {
	return NewWithLimit(rate.Every(per/time.Duration(requests)), burst)
}

// NewPerSecond allows perSecond actions per second per key; zero or less disables limiting.
func NewPerSecond(perSecond float64, burst int) *InMemoryLimiter {
	if perSecond <= 0 {
		return NewWithLimit(rate.Inf, burst)
	}
	return NewWithLimit(rate.Limit(perSecond), burst)
}

func NewWithLimit(r rate.Limit, burst int) *InMemoryLimiter {
	if burst < 1 {
		burst = 1
	}
	return &InMemoryLimiter{
		limiters: make(map[string]*rate.Limiter),
		r:        r,
		b:        burst,
	}
}

var _ Limiter = (*InMemoryLimiter)(nil)

func (l *InMemoryLimiter) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	limiter, exists := l.limiters[key]
	if !exists {
		limiter = rate.NewLimiter(l.r, l.b)
		l.limiters[key] = limiter
	}
	return limiter
}

func (l *InMemoryLimiter) Allow(key string) bool {
	return l.get(key).Allow()
}

// Wait blocks until key may proceed or ctx is done.
func (l *InMemoryLimiter) Wait(ctx context.Context, key string) error {
	return l.get(key).Wait(ctx)
}
