// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/url"

	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

// ParseCookies reads the request cookies into RequestContext.Cookies.
//
// When a name repeats, the first value wins. Percent-encoded values are
// decoded; values that fail to decode are kept as sent.
func ParseCookies(w http.ResponseWriter, r *http.Request, next http.Handler) {
	ctx := request_context.FromRequest(r)

	for _, cookie := range r.Cookies() {
		if _, seen := ctx.Cookies[cookie.Name]; seen {
			continue
		}

		value := cookie.Value
		if decoded, err := url.PathUnescape(value); err == nil {
			value = decoded
		}

		ctx.Cookies[cookie.Name] = value
	}

	next.ServeHTTP(w, r)
}
