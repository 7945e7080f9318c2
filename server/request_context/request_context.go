// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requestcontext provides per-request state management for HTTP handlers.

This package is separate because Go disallows a cyclic import graph.
*/
package request_context

import (
	"context"
	"net/http"
	"sync/atomic"

	"github.com/tidwall/gjson"
)

// RequestContext carries request-scoped data through the middleware chain.
//
// This data survives the entire lifetime of a single HTTP request.
type RequestContext struct {
	// RequestID is an identifier for tracing requests.
	RequestID string

	// Holds any critical error encountered during request processing.
	//
	// Automatically populated by middleware.CatchError when handlers return errors.
	RequestError error

	// HTTP status code to be sent in the response. Defaults to 200 OK.
	StatusCode int

	// Body is the raw JSON request body, set by middleware.ParseJSONBody.
	// It is nil when the request carried no JSON body.
	Body []byte

	// Cookies maps cookie names to values, set by middleware.ParseCookies.
	// Never nil once the middleware ran.
	Cookies map[string]string

	responded atomic.Bool
}

// requestContextKeyType defines a unique type for a RequestContext key.
type requestContextKeyType struct{}

// requestContextKey is a unique key used to access RequestContext
// values from a context.Context.
var requestContextKey = requestContextKeyType{}

// WithRequestContext initializes a new request context and attaches it to
// the parent context.
//
// This is called once per request, early in the middleware chain.
func WithRequestContext(ctx context.Context, requestID string) context.Context {
	rc := &RequestContext{
		RequestID:  requestID,
		StatusCode: http.StatusOK,
		Cookies:    map[string]string{},
	}

	return context.WithValue(ctx, requestContextKey, rc)
}

// FromContext extracts the RequestContext from a context, always returning
// a valid pointer.
//
// If no context is found, returns a zero-value instance.
func FromContext(ctx context.Context) *RequestContext {
	if v := ctx.Value(requestContextKey); v != nil {
		if rc, ok := v.(*RequestContext); ok {
			return rc
		}
	}

	return &RequestContext{Cookies: map[string]string{}}
}

// FromRequest is a convenience wrapper for extracting RequestContext
// directly from HTTP requests.
//
// Prefer this in handlers that have access to the *http.Request object.
func FromRequest(r *http.Request) *RequestContext {
	return FromContext(r.Context())
}

// JSON returns the value at path in the parsed request body, using gjson path
// syntax. The result does not exist when there was no body.
func (rc *RequestContext) JSON(path string) gjson.Result {
	if rc.Body == nil {
		return gjson.Result{}
	}

	return gjson.GetBytes(rc.Body, path)
}

// Cookie returns the value of the named cookie and whether it was sent.
func (rc *RequestContext) Cookie(name string) (string, bool) {
	v, ok := rc.Cookies[name]

	return v, ok
}

// MarkResponded records that a response has been committed for this request.
//
// It returns false when a response had already been committed.
func (rc *RequestContext) MarkResponded() bool {
	return rc.responded.CompareAndSwap(false, true)
}

// Responded reports whether a response has been committed for this request.
func (rc *RequestContext) Responded() bool {
	return rc.responded.Load()
}
