// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package responseerror defines the error type route handlers return to signal
an intended, client-facing failure with a specific HTTP status code.

Any error that is not (and does not wrap) a *ResponseError is treated as an
unexpected failure and answered with 500 Internal Server Error.
*/
package responseerror

import (
	"fmt"
	"net/http"
)

// Valid HTTP status code range accepted by ResponseError.
const (
	minStatusCode = 100
	maxStatusCode = 599
)

// ResponseError is a failure whose status and message are meant to be shown to
// the client as-is.
type ResponseError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is written to the "error" field of the response body.
	Message string

	cause error
}

// New returns a ResponseError with the given status and message.
func New(status int, message string) *ResponseError {
	return &ResponseError{Status: status, Message: message}
}

// Newf is like New but formats the message.
func Newf(status int, format string, args ...any) *ResponseError {
	return &ResponseError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns a ResponseError that uses err's text as its message and keeps err
// reachable through errors.Is and errors.As.
//
// Wrap returns a nil error if err is nil, so `return responseerror.Wrap(s, err)`
// is safe in a function returning error.
func Wrap(status int, err error) error {
	if err == nil {
		return nil
	}

	return &ResponseError{Status: status, Message: err.Error(), cause: err}
}

// WrapMessage is like Wrap but shows message to the client instead of err's text.
func WrapMessage(status int, message string, err error) error {
	if err == nil {
		return nil
	}

	return &ResponseError{Status: status, Message: message, cause: err}
}

// Error implements the error interface. A nil *ResponseError reads as an
// internal server error.
func (e *ResponseError) Error() string {
	if e == nil {
		return http.StatusText(http.StatusInternalServerError)
	}

	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *ResponseError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// StatusCode returns the status to respond with.
//
// Status codes that net/http cannot write are reported as 500.
func (e *ResponseError) StatusCode() int {
	if e.Status < minStatusCode || e.Status > maxStatusCode {
		return http.StatusInternalServerError
	}

	return e.Status
}

// BadRequest returns a 400 ResponseError.
func BadRequest(message string) *ResponseError {
	return New(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 ResponseError.
func Unauthorized(message string) *ResponseError {
	return New(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 ResponseError.
func Forbidden(message string) *ResponseError {
	return New(http.StatusForbidden, message)
}

// NotFound returns a 404 ResponseError.
func NotFound(message string) *ResponseError {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 ResponseError.
func Conflict(message string) *ResponseError {
	return New(http.StatusConflict, message)
}

// TooManyRequests returns a 429 ResponseError.
func TooManyRequests(message string) *ResponseError {
	return New(http.StatusTooManyRequests, message)
}

// Internal returns a 500 ResponseError. Unlike an arbitrary error, its message is
// never hidden from the client.
func Internal(message string) *ResponseError {
	return New(http.StatusInternalServerError, message)
}

// Body is the JSON envelope of every error response.
type Body struct {
	Error string `json:"error" example:"Not found"`
}
