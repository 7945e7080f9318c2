// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

// Package idgen makes short identifiers for tracing requests through logs.
package idgen

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// MaxLength bounds request IDs accepted from clients.
const MaxLength = 64

// Make makes a short ID with a 6 byte timestamp and 3 bytes of entropy.
func Make() string {
	entropy := [3]byte{'a', 'a', 'a'}

	_, _ = rand.Read(entropy[:])

	return maketime(time.Now()) + base64.RawURLEncoding.EncodeToString(entropy[:])
}

// Valid reports whether id can be reused as a request ID.
//
// Only non-empty IDs of at most MaxLength characters drawn from the URL-safe
// base64 alphabet are accepted, so they can be echoed into headers and logs.
func Valid(id string) bool {
	if id == "" || len(id) > MaxLength {
		return false
	}

	for i := range len(id) {
		c := id[i]

		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}

	return true
}

func maketime(t time.Time) string {
	return t.Format("150405")
}
