// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/core/responseerror"
	"github.com/clarylisk/clarylisk-backend/server/middleware"
)

// Rate limiting header names.
//
// ref: https://www.ietf.org/archive/id/draft-polli-ratelimit-headers-02.html
const (
	HeaderRateLimitLimit     string = "RateLimit-Limit"
	HeaderRateLimitRemaining string = "RateLimit-Remaining"
	HeaderRateLimitReset     string = "RateLimit-Reset"
)

// tooManyRequestsMessage is the error text of rejected requests.
const tooManyRequestsMessage = "too many requests"

// Evaluate is the entrypoint to the limiter middleware.
//
// Pass-listed clients and clients whose address cannot be determined are
// served without consuming tokens.
func (l *Limiter) Evaluate(w http.ResponseWriter, r *http.Request, next http.Handler) {
	addr, ok := clientAddr(r)
	if !ok {
		log.Warn().
			Str("remote_addr", r.RemoteAddr).
			Msg("Could not parse client IP, skipping rate limit")
		next.ServeHTTP(w, r)

		return
	}

	if inPassList(addr, l.cfg.Limiter.PassIPs) {
		next.ServeHTTP(w, r)

		return
	}

	network := networkKey(addr, l.cfg.Limiter.IPv4Prefix, l.cfg.Limiter.IPv6Prefix)

	result := l.bucketFor(network).take(l.now())
	addRateLimitHeaders(w, result)

	if !result.allowed {
		log.Warn().
			Str("ip", addr.String()).
			Str("network", network).
			Msg("Request blocked, exceeded rate limit")

		middleware.RespondError(w, r, responseerror.TooManyRequests(tooManyRequestsMessage), l.cfg)

		return
	}

	next.ServeHTTP(w, r)
}

// addRateLimitHeaders adds rate limiting information to the response headers.
func addRateLimitHeaders(w http.ResponseWriter, result decision) {
	resetStr := strconv.FormatInt(result.reset, 10)

	w.Header().Set(HeaderRateLimitLimit, strconv.Itoa(result.limit))
	w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(result.remaining))
	w.Header().Set(HeaderRateLimitReset, resetStr)

	// Retry-After should be seconds.
	if !result.allowed {
		w.Header().Set("Retry-After", resetStr)
	}
}
