// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/clarylisk/clarylisk-backend/config"
)

// Limiter holds one token bucket per client network.
type Limiter struct {
	cfg     *config.ServerConfig
	buckets sync.Map // network string -> *bucket

	// now is replaced in tests.
	now func() time.Time
}

// bucket is the rate limiter of a single network.
type bucket struct {
	limiter    *rate.Limiter
	network    string
	lastAccess time.Time
	mu         sync.Mutex
}

// decision is the outcome of taking a token from a bucket.
type decision struct {
	allowed   bool
	limit     int
	remaining int
	// reset is the number of seconds until the bucket is full again.
	reset int64
}

// New returns a Limiter using the rate, burst and network prefixes of cfg.
func New(cfg *config.ServerConfig) *Limiter {
	return &Limiter{cfg: cfg, now: time.Now}
}

// bucketFor returns the bucket of network, creating it on first use.
func (l *Limiter) bucketFor(network string) *bucket {
	if value, ok := l.buckets.Load(network); ok {
		if b, ok := value.(*bucket); ok {
			return b
		}
	}

	fresh := &bucket{
		limiter:    rate.NewLimiter(rate.Limit(l.cfg.Limiter.Rate), l.cfg.Limiter.Burst),
		network:    network,
		lastAccess: l.now(),
	}

	actual, _ := l.buckets.LoadOrStore(network, fresh)

	b, ok := actual.(*bucket)
	if !ok {
		return fresh
	}

	return b
}

// take consumes one token at time now.
func (b *bucket) take(now time.Time) decision {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastAccess = now

	allowed := b.limiter.AllowN(now, 1)

	tokens := b.limiter.TokensAt(now)
	burst := b.limiter.Burst()
	limit := b.limiter.Limit()

	remaining := max(0, int(math.Floor(math.Min(float64(burst), tokens))))

	var reset int64
	if tokens < float64(burst) && limit > 0 {
		reset = int64(math.Ceil((float64(burst) - tokens) / float64(limit)))
	}

	return decision{
		allowed:   allowed,
		limit:     burst,
		remaining: remaining,
		reset:     reset,
	}
}

// idleSince reports whether the bucket was last used before cutoff.
func (b *bucket) idleSince(cutoff time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lastAccess.Before(cutoff)
}
