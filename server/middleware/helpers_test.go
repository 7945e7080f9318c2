// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

// createTestRequest creates a test HTTP request with request context.
func createTestRequest(t *testing.T, method, target string, body io.Reader) *http.Request {
	t.Helper()

	req := httptest.NewRequest(method, target, body)

	return req.WithContext(request_context.WithRequestContext(req.Context(), "test-request"))
}

// okHandler answers 200 with a fixed body.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("next"))
})
