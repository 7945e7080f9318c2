// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package limiter is a middleware that rate limits HTTP requests per client network.

Clients are grouped by their IP network (a /24 for IPv4 and a /48 for IPv6 by
default) and every network shares one token bucket. Requests beyond the bucket
are answered with 429 Too Many Requests through the error responder.
*/
package limiter
