// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

// Body parsing failures. They are not ResponseErrors, so clients get a 500
// carrying their text.
var (
	errInvalidJSONBody = errors.New("invalid JSON body")
	errBodyTooLarge    = errors.New("request entity too large")
)

// ParseJSONBody returns a middleware that reads JSON request bodies.
//
// Requests with an application/json (or +json) media type have their body
// read up to cfg.Body.MaxBytes, checked to be a JSON object or array and stored
// in RequestContext.Body. r.Body is replaced with a reader over the same bytes,
// so handlers may still decode it. Other requests pass through untouched.
func ParseJSONBody(cfg *config.ServerConfig) Middleware {
	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		if r.Body == nil || r.Body == http.NoBody || !isJSONContentType(r.Header.Get("Content-Type")) {
			next.ServeHTTP(w, r)

			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.Body.MaxBytes))
		if err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				RespondError(w, r, fmt.Errorf("%w (limit %d bytes)", errBodyTooLarge, maxBytesErr.Limit), cfg)
			} else {
				RespondError(w, r, fmt.Errorf("%w: %w", errInvalidJSONBody, err), cfg)
			}

			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))

		if len(bytes.TrimSpace(body)) == 0 {
			next.ServeHTTP(w, r)

			return
		}

		if !gjson.ValidBytes(body) {
			RespondError(w, r, errInvalidJSONBody, cfg)

			return
		}

		// only objects and arrays, like a strict JSON body parser
		if parsed := gjson.ParseBytes(body); !parsed.IsObject() && !parsed.IsArray() {
			RespondError(w, r, errInvalidJSONBody, cfg)

			return
		}

		request_context.FromRequest(r).Body = body

		next.ServeHTTP(w, r)
	}
}

// isJSONContentType reports whether a Content-Type header names JSON.
func isJSONContentType(contentType string) bool {
	if contentType == "" {
		return false
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
