package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type entry struct {
	lim  *rate.Limiter
	last time.Time
}

// Limiter keeps one token bucket per key. Buckets idle longer than ttl are dropped on the next sweep.
type Limiter struct {
	mu    sync.Mutex
	m     map[string]*entry
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time
	sweep time.Time
}

func New(rps float64, burst int, ttl time.Duration) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		m:     make(map[string]*entry),
		rps:   rate.Limit(rps),
		burst: burst,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Allow returns true if one token can be consumed for key.
func (l *Limiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.m[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(l.rps, l.burst)}
		l.m[key] = e
	}
	e.last = now
	l.evict(now)
	return e.lim.AllowN(now, 1)
}

// Len reports the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

func (l *Limiter) evict(now time.Time) {
	if l.ttl <= 0 || now.Sub(l.sweep) < l.ttl {
		return
	}
	l.sweep = now
	for k, e := range l.m {
		if now.Sub(e.last) > l.ttl {
			delete(l.m, k)
		}
	}
}
