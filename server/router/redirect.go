// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
)

// redirectPreservingQuery redirects every request to targetPath, keeping the
// query string.
//
// Example:   /api-docs-clarylisk?x=1   ->   /api-docs-clarylisk/index.html?x=1
func redirectPreservingQuery(targetPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := targetPath
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	}
}
