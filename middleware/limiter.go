package middleware

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/AmbHasan/My-quran-journey/dto"
)

type RateLimitConfig struct {
	EndpointType string
	MaxRequests  int
	WindowSize   time.Duration
	Description  string
}

// ring holds the accepted request times for one key, oldest first. Its
// capacity equals the limit so it never grows.
type ring struct {
	stamps []time.Time
	head   int
	size   int
}

func newRing(capacity int) *ring {
	return &ring{stamps: make([]time.Time, capacity)}
}

func (r *ring) expire(now time.Time, window time.Duration) {
	for r.size > 0 && now.Sub(r.stamps[r.head]) >= window {
		r.stamps[r.head] = time.Time{}
		r.head = (r.head + 1) % len(r.stamps)
		r.size--
	}
}

func (r *ring) oldest() time.Time {
	return r.stamps[r.head]
}

func (r *ring) push(now time.Time) {
	r.stamps[(r.head+r.size)%len(r.stamps)] = now
	r.size++
}

// Limiter is a sliding-window limiter over a bounded key table. When the
// table is full the least recently seen key is evicted.
type Limiter struct {
	mu     sync.Mutex
	config RateLimitConfig
	keys   *simplelru.LRU[string, *ring]
	now    func() time.Time
}

func NewLimiter(config RateLimitConfig, maxKeys int, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	if maxKeys < 1 {
		maxKeys = 1
	}
	// Only fails for a non-positive size.
	keys, _ := simplelru.NewLRU[string, *ring](maxKeys, nil)
	return &Limiter{
		config: config,
		keys:   keys,
		now:    now,
	}
}

func (l *Limiter) Allow(key string) *dto.RateLimitInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	r, ok := l.keys.Get(key)
	if !ok {
		r = newRing(l.config.MaxRequests)
		l.keys.Add(key, r)
	}
	r.expire(now, l.config.WindowSize)

	if r.size >= l.config.MaxRequests {
		resetTime := r.oldest().Add(l.config.WindowSize)
		return &dto.RateLimitInfo{
			Allowed:      false,
			Remaining:    0,
			ResetTime:    &resetTime,
			BlockedUntil: &resetTime,
		}
	}

	r.push(now)
	resetTime := r.oldest().Add(l.config.WindowSize)
	return &dto.RateLimitInfo{
		Allowed:   true,
		Remaining: l.config.MaxRequests - r.size,
		ResetTime: &resetTime,
	}
}

// Sweep drops keys whose windows hold no live requests and returns how many
// were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for _, k := range l.keys.Keys() {
		r, ok := l.keys.Peek(k)
		if !ok {
			continue
		}
		r.expire(now, l.config.WindowSize)
		if r.size == 0 {
			l.keys.Remove(k)
			removed++
		}
	}
	return removed
}

func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.keys.Len()
}
