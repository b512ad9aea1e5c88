package middleware

import (
	"fmt"
	"testing"
	"time"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestLimiterSlidingWindow(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 3, WindowSize: time.Minute}, 10, clock.Now)

	for i := 0; i < 3; i++ {
		info := limiter.Allow("1.1.1.1")
		if !info.Allowed {
			t.Fatalf("request %d rejected", i+1)
		}
		if info.Remaining != 2-i {
			t.Fatalf("request %d: expected remaining %d, got %d", i+1, 2-i, info.Remaining)
		}
		clock.Advance(10 * time.Second)
	}

	info := limiter.Allow("1.1.1.1")
	if info.Allowed {
		t.Fatal("fourth request inside the window must be rejected")
	}
	wantReset := time.Date(2026, 1, 1, 0, 1, 0, 0, time.UTC)
	if info.BlockedUntil == nil || !info.BlockedUntil.Equal(wantReset) {
		t.Fatalf("expected blocked until %v, got %v", wantReset, info.BlockedUntil)
	}

	// The first request leaves the window at 60s.
	clock.now = wantReset
	if !limiter.Allow("1.1.1.1").Allowed {
		t.Fatal("request after the oldest expired must be allowed")
	}
	if limiter.Allow("1.1.1.1").Allowed {
		t.Fatal("window is full again")
	}
}

func TestLimiterRejectionsDoNotExtendWindow(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 1, WindowSize: time.Minute}, 10, clock.Now)

	limiter.Allow("k")
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		if limiter.Allow("k").Allowed {
			t.Fatalf("attempt %d should be rejected", i)
		}
	}

	clock.Advance(10 * time.Second)
	if !limiter.Allow("k").Allowed {
		t.Fatal("rejected attempts must not count against the window")
	}
}

func TestLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 1, WindowSize: time.Minute}, 10, newTestClock().Now)

	if !limiter.Allow("a").Allowed || !limiter.Allow("b").Allowed {
		t.Fatal("first request per key must be allowed")
	}
	if limiter.Allow("a").Allowed {
		t.Fatal("second request for a must be rejected")
	}
}

func TestLimiterEvictsStalestKey(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 1, WindowSize: time.Hour}, 2, clock.Now)

	limiter.Allow("old")
	clock.Advance(time.Second)
	limiter.Allow("recent")
	clock.Advance(time.Second)
	limiter.Allow("new")

	if got := limiter.Len(); got != 2 {
		t.Fatalf("expected the table to stay at 2 keys, got %d", got)
	}
	if !limiter.Allow("old").Allowed {
		t.Fatal("evicted key should start a fresh window")
	}
	if limiter.Allow("new").Allowed {
		t.Fatal("new key must keep its window")
	}
}

func TestLimiterSweep(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 5, WindowSize: time.Minute}, 10, clock.Now)

	limiter.Allow("a")
	clock.Advance(30 * time.Second)
	limiter.Allow("b")
	clock.Advance(45 * time.Second)

	if removed := limiter.Sweep(); removed != 1 {
		t.Fatalf("expected 1 key swept, got %d", removed)
	}
	if got := limiter.Len(); got != 1 {
		t.Fatalf("expected 1 key left, got %d", got)
	}
}

func TestLimiterStaysBoundedUnderManyKeys(t *testing.T) {
	clock := newTestClock()
	limiter := NewLimiter(RateLimitConfig{MaxRequests: 2, WindowSize: time.Hour}, 100, clock.Now)

	limiter.Allow("busy")
	for i := 0; i < 5000; i++ {
		limiter.Allow(fmt.Sprintf("203.0.113.%d/%d", i%256, i))
		if i%50 == 0 {
			// Keep the busy key recent so eviction passes over it.
			limiter.Allow("busy")
		}
	}

	if got := limiter.Len(); got != 100 {
		t.Fatalf("expected the table capped at 100 keys, got %d", got)
	}
	if limiter.Allow("busy").Allowed {
		t.Fatal("recently used key must keep its window")
	}
}
