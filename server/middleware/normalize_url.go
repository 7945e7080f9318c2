// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"strings"

	"github.com/clarylisk/clarylisk-backend/config"
)

// NormalizeURL returns a middleware that removes trailing slashes from URLs
// (except root) with a permanent redirect.
//
// Paths under the documentation prefix are left alone; the docs UI lives at
// "<docs path>/" and its assets are resolved relative to it.
func NormalizeURL(cfg *config.ServerConfig) Middleware {
	docsPrefix := cfg.Docs.Path + "/"

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		if hasTrailingSlash(r) && !strings.HasPrefix(r.URL.Path, docsPrefix) {
			removeTrailingSlash(w, r)

			return
		}

		next.ServeHTTP(w, r)
	}
}

// hasTrailingSlash checks if a request path has a trailing slash (except root).
func hasTrailingSlash(r *http.Request) bool {
	return r.URL.Path != "/" && strings.HasSuffix(r.URL.Path, "/")
}

// removeTrailingSlash removes trailing slashes and redirects.
func removeTrailingSlash(w http.ResponseWriter, r *http.Request) {
	target := *r.URL

	// a single leading slash keeps the target on this host; "//host" would be
	// read as a scheme-relative URL
	target.Path = "/" + strings.Trim(target.Path, "/")

	target.RawPath = ""

	// 308 keeps the method and body of the original request
	http.Redirect(w, r, target.String(), http.StatusPermanentRedirect)
}
