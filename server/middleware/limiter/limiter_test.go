// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarylisk/clarylisk-backend/config"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// newTestLimiter returns a limiter with a burst of 3 and 2 tokens per second.
func newTestLimiter(t *testing.T) (*Limiter, *fakeClock) {
	t.Helper()

	cfg := config.Default()
	cfg.Limiter.Enabled = true
	cfg.Limiter.Rate = 2
	cfg.Limiter.Burst = 3
	cfg.Limiter.PassIPs = []string{"198.51.100.0/24"}

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}

	l := New(cfg)
	l.now = clock.Now

	return l, clock
}

func (l *Limiter) bucketCount() int {
	count := 0

	l.buckets.Range(func(any, any) bool {
		count++

		return true
	})

	return count
}

func TestBucketTake(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(t)
	b := l.bucketFor("203.0.113.0/24")

	for i := range 3 {
		got := b.take(clock.Now())
		assert.True(t, got.allowed, "request %d", i+1)
		assert.Equal(t, 3, got.limit)
		assert.Equal(t, 2-i, got.remaining)
	}

	blocked := b.take(clock.Now())
	assert.False(t, blocked.allowed)
	assert.Equal(t, 0, blocked.remaining)
	assert.Equal(t, int64(2), blocked.reset)

	clock.Sleep(time.Second)

	refilled := b.take(clock.Now())
	assert.True(t, refilled.allowed)
	assert.Equal(t, 1, refilled.remaining)
}

func TestBucketForIsShared(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(t)

	assert.Same(t, l.bucketFor("203.0.113.0/24"), l.bucketFor("203.0.113.0/24"))
	assert.NotSame(t, l.bucketFor("203.0.113.0/24"), l.bucketFor("192.0.2.0/24"))
	assert.Equal(t, 2, l.bucketCount())
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func(remoteAddr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/creators", nil)
		req.RemoteAddr = remoteAddr

		rr := httptest.NewRecorder()
		l.Evaluate(rr, req, next)

		return rr
	}

	// the whole /24 shares one bucket
	for _, addr := range []string{"203.0.113.5:1000", "203.0.113.77:1000", "203.0.113.200:1000"} {
		rr := serve(addr)
		require.Equal(t, http.StatusOK, rr.Code, addr)
		assert.Equal(t, "3", rr.Header().Get(HeaderRateLimitLimit))
	}

	blocked := serve("203.0.113.5:1000")
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.Equal(t, `{"error":"too many requests"}`, blocked.Body.String())
	assert.Equal(t, "0", blocked.Header().Get(HeaderRateLimitRemaining))
	assert.Equal(t, "2", blocked.Header().Get("Retry-After"))

	// another network is unaffected
	assert.Equal(t, http.StatusOK, serve("192.0.2.1:1000").Code)

	// pass-listed clients never consume tokens
	for range 10 {
		rr := serve("198.51.100.9:1000")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, rr.Header().Get(HeaderRateLimitLimit))
	}

	// unparseable peers are served
	assert.Equal(t, http.StatusOK, serve("not-an-address").Code)
}

func TestEvaluateMalformedForwardedHeader(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(t)
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		req.RemoteAddr = "10.1.2.3:4000"
		req.Header.Set("X-Real-IP", "unknown")

		rr := httptest.NewRecorder()
		l.Evaluate(rr, req, next)

		return rr
	}

	// the private peer is charged in place of the unparseable header
	for range 3 {
		rr := serve()
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotEmpty(t, rr.Header().Get(HeaderRateLimitLimit))
	}

	assert.Equal(t, http.StatusTooManyRequests, serve().Code)
}

func TestCleanup(t *testing.T) {
	t.Parallel()

	l, clock := newTestLimiter(t)

	l.bucketFor("203.0.113.0/24").take(clock.Now())
	clock.Sleep(50 * time.Minute)
	l.bucketFor("192.0.2.0/24").take(clock.Now())
	clock.Sleep(20 * time.Minute)

	// expiry is one hour: only the first bucket is stale
	assert.Equal(t, 1, l.cleanup())
	assert.Equal(t, 1, l.bucketCount())

	_, ok := l.buckets.Load("192.0.2.0/24")
	assert.True(t, ok)
}

func TestRunStopsWithContext(t *testing.T) {
	t.Parallel()

	l, _ := newTestLimiter(t)
	l.cfg.Limiter.CleanupInterval = time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.NoError(t, l.Run(ctx))
}
