// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"maps"
	"net/http"
	"strings"

	"github.com/clarylisk/clarylisk-backend/config"
)

// baseHeaders defines the default headers to be set in responses.
//
// Clarylisk-Version and Clarylisk-Revision are added dynamically in SetResponseHeaders.
var baseHeaders = http.Header{
	"Referrer-Policy":        {"no-referrer"},
	"X-Frame-Options":        {"DENY"},
	"X-Content-Type-Options": {"nosniff"},
}

// SetResponseHeaders returns a middleware adding default headers to HTTP responses.
func SetResponseHeaders(cfg *config.ServerConfig) Middleware {
	revision := cfg.Build.Revision()
	docsPrefix := cfg.Docs.Path + "/"

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		headers := w.Header()

		maps.Insert(headers, maps.All(baseHeaders))

		setCacheControl(headers, r.URL.Path, docsPrefix, cfg.Development.InDevelopment)

		headers.Set("Clarylisk-Version", config.BuildVersion)
		headers.Set("Clarylisk-Revision", revision)

		next.ServeHTTP(w, r)
	}
}

// setCacheControl sets appropriate cache control headers.
//
// API responses are never stored. Documentation assets are cached for a day
// outside of development.
func setCacheControl(headers http.Header, path, docsPrefix string, inDevelopment bool) {
	cacheDuration := "no-store"

	if !inDevelopment && strings.HasPrefix(path, docsPrefix) {
		cacheDuration = "max-age=86400"
	}

	headers.Set("Cache-Control", cacheDuration)
}
