// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package limiter

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientAddr returns the address the request is rate limited by.
//
// X-Real-IP, then the last X-Forwarded-For hop, are used only when the peer
// is on a private or loopback network. Otherwise, or when the forwarded value
// does not parse, the peer address is used.
func clientAddr(r *http.Request) (netip.Addr, bool) {
	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}

	peer, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}

	peer = peer.Unmap()

	if !peer.IsPrivate() && !peer.IsLoopback() {
		return peer, true
	}

	forwarded := strings.TrimSpace(r.Header.Get("X-Real-IP"))
	if forwarded == "" {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			forwarded = strings.TrimSpace(xff[strings.LastIndex(xff, ",")+1:])
		}
	}

	if forwarded == "" {
		return peer, true
	}

	addr, err := netip.ParseAddr(forwarded)
	if err != nil {
		return peer, true
	}

	return addr.Unmap(), true
}

// inPassList reports whether addr equals, or lies within, any entry. Entries
// are single addresses or CIDR prefixes; malformed ones never match.
func inPassList(addr netip.Addr, entries []string) bool {
	for _, entry := range entries {
		if strings.Contains(entry, "/") {
			if prefix, err := netip.ParsePrefix(entry); err == nil && prefix.Contains(addr) {
				return true
			}

			continue
		}

		if other, err := netip.ParseAddr(entry); err == nil && other.Unmap() == addr {
			return true
		}
	}

	return false
}

// networkKey names the bucket addr belongs to: its IPv4 or IPv6 network of the
// configured prefix length.
func networkKey(addr netip.Addr, ipv4Prefix, ipv6Prefix int) string {
	bits := ipv6Prefix
	if addr.Is4() {
		bits = ipv4Prefix
	}

	prefix, err := addr.Prefix(bits)
	if err != nil {
		return addr.String()
	}

	return prefix.String()
}
