// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/clarylisk/clarylisk-backend/core/idgen"
	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// WithRequestContext is a middleware that attaches a RequestContext to each HTTP request.
//
// A well-formed X-Request-ID from the client is kept; otherwise a new ID is
// generated. The ID is echoed back in the response.
func WithRequestContext(w http.ResponseWriter, r *http.Request, next http.Handler) {
	requestID := r.Header.Get(RequestIDHeader)
	if !idgen.Valid(requestID) {
		requestID = idgen.Make()
	}

	w.Header().Set(RequestIDHeader, requestID)

	next.ServeHTTP(w, r.WithContext(request_context.WithRequestContext(r.Context(), requestID)))
}
