// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Run drops buckets that have been idle for longer than the configured expiry,
// once per cleanup interval, until ctx is done.
func (l *Limiter) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.cfg.Limiter.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			start := time.Now()
			removed := l.cleanup()

			log.Debug().
				Int("removed", removed).
				Dur("dur", time.Since(start)).
				Msg("Limiter cleanup")
		}
	}
}

// cleanup removes expired buckets and returns how many were removed.
func (l *Limiter) cleanup() int {
	cutoff := l.now().Add(-l.cfg.Limiter.Expiry)
	removed := 0

	l.buckets.Range(func(key, value any) bool {
		b, ok := value.(*bucket)
		if !ok || b.idleSince(cutoff) {
			l.buckets.Delete(key)

			removed++
		}

		return true
	})

	return removed
}
