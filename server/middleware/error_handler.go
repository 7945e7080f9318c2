// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"net/http/httptest"
	"runtime/debug"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/core/audit"
	"github.com/clarylisk/clarylisk-backend/core/responseerror"
	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

// bufferedResponse is the writer a CatchError handler writes to. An error
// answered into it with RespondError is sent once the handler returns.
type bufferedResponse struct {
	*httptest.ResponseRecorder

	errorWritten bool
}

// FallibleHandler is an HTTP handler that reports failure by returning an error.
type FallibleHandler func(w http.ResponseWriter, r *http.Request) error

// internalErrorMessage replaces unclassified messages when errors.hideInternal is set.
const internalErrorMessage = "Internal Server Error"

// CatchError wraps HTTP handlers that return an error, providing centralized error handling,
// response buffering, and request logging.
//
// It operates as follows:
//  1. It times the request for logging purposes.
//  2. It runs the handler against an httptest.ResponseRecorder, so nothing
//     reaches the client until the handler is done. A panic in the handler is
//     recovered and treated as a returned error.
//  3. Any error returned by the handler is stored in the request context.
//
// After the handler runs, it decides on the final response:
//   - If the handler returned an error, the buffered response is discarded and
//     the error is answered by RespondError.
//   - Otherwise the buffered response is written to the client.
//
// Finally, it logs the completed request details (status, duration, error, etc.)
// via the audit package.
func CatchError(handler FallibleHandler, cfg *config.ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		span := audit.Span{
			Destination: audit.ToClient,
			RequestID:   ctx.RequestID,
			Method:      r.Method,
			URL:         r.URL.String(),
		}

		r = r.WithContext(span.Begin(r.Context()))

		buffered := &bufferedResponse{ResponseRecorder: httptest.NewRecorder()}

		err := runHandler(handler, buffered, r)
		if err != nil {
			span.Length = respondError(w, r, err, cfg)
		} else {
			span.Length = flushRecorder(w, r, buffered.ResponseRecorder)
		}

		span.End()

		span.StatusCode = ctx.StatusCode
		span.Error = ctx.RequestError
		span.Log()
	}
}

// RespondError writes the JSON error response for err.
//
// A nil err writes nothing and returns false, leaving the response to the
// caller. Any other error returns true: either the response was written, or
// one had already been written for this request and the call did nothing.
//
// Middleware that rejects a request before routing uses this directly. Inside
// a CatchError handler the error response is buffered like any other output;
// returning the error is still the usual way to fail.
func RespondError(w http.ResponseWriter, r *http.Request, err error, cfg *config.ServerConfig) bool {
	if err == nil {
		return false
	}

	respondError(w, r, err, cfg)

	return true
}

func respondError(w http.ResponseWriter, r *http.Request, err error, cfg *config.ServerConfig) int {
	failure := responseerror.Classify(err)
	ctx := request_context.FromRequest(r)

	if !claimResponse(w, ctx) {
		log.Warn().
			Err(err).
			Str("request_id", ctx.RequestID).
			Str("url", r.URL.String()).
			Msg("Response already sent, dropping error")

		return 0
	}

	ctx.RequestError = err
	ctx.StatusCode = failure.StatusCode()
	message := failure.ErrorMessage()

	switch failure.(type) {
	case responseerror.Classified:
		log.Debug().
			Err(err).
			Int("status_code", ctx.StatusCode).
			Str("request_id", ctx.RequestID).
			Msg("Request failed")

	case responseerror.Unclassified:
		log.Error().
			Err(err).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Str("request_id", ctx.RequestID).
			Msg("Unhandled error while serving request")

		if cfg.Errors.HideInternal {
			message = internalErrorMessage
		}
	}

	return writeJSONError(w, ctx.StatusCode, message)
}

// claimResponse reports whether an error response may still be written to w.
//
// The client-facing writer is claimed once per request. A CatchError buffer is
// claimed once per buffer; its contents reach the client through flushRecorder.
func claimResponse(w http.ResponseWriter, ctx *request_context.RequestContext) bool {
	if buffered, ok := w.(*bufferedResponse); ok {
		if buffered.errorWritten || ctx.Responded() {
			return false
		}

		buffered.errorWritten = true

		return true
	}

	return ctx.MarkResponded()
}

// writeJSONError writes {"error": message} the way res.json would: no HTML
// escaping and no trailing newline.
func writeJSONError(w http.ResponseWriter, status int, message string) int {
	var buf bytes.Buffer

	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(responseerror.Body{Error: message}); err != nil {
		// a string field cannot fail to encode
		panic(err)
	}

	body := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))

	headers := w.Header()
	headers.Set("Content-Type", "application/json; charset=utf-8")
	headers.Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)

	n, err := w.Write(body)
	if err != nil {
		log.Err(err).Msg("Failed to write error response")
	}

	return n
}

// flushRecorder copies a successful buffered response to the client.
func flushRecorder(w http.ResponseWriter, r *http.Request, recorder *httptest.ResponseRecorder) int {
	ctx := request_context.FromRequest(r)

	if !ctx.MarkResponded() {
		log.Warn().
			Str("request_id", ctx.RequestID).
			Str("url", r.URL.String()).
			Msg("Response already sent, dropping handler output")

		return 0
	}

	if recorder.Code == 0 {
		recorder.Code = http.StatusOK
	}

	ctx.StatusCode = recorder.Code
	maps.Copy(w.Header(), recorder.Header())
	w.WriteHeader(recorder.Code)

	n, err := recorder.Body.WriteTo(w)
	if err != nil {
		log.Err(err).Msg("Failed to write response body")
	}

	return int(n)
}

// runHandler calls handler and turns a panic into a returned error.
func runHandler(handler FallibleHandler, w http.ResponseWriter, r *http.Request) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		if recovered == http.ErrAbortHandler { //nolint:errorlint // sentinel panic value
			panic(recovered)
		}

		if recoveredErr, ok := recovered.(error); ok {
			err = recoveredErr
		} else {
			err = fmt.Errorf("%v", recovered)
		}

		log.Error().
			Str("request_id", request_context.FromRequest(r).RequestID).
			Bytes("stack", debug.Stack()).
			Msg("Recovered from panic in handler")
	}()

	return handler(w, r)
}
