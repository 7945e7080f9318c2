// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clarylisk/clarylisk-backend/config"
)

func TestWithCORS_AnyOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/debug-cors", nil)
	req.Header.Set("Origin", "https://app.clarylisk.test")

	rr := httptest.NewRecorder()
	Wrap(WithCORS(config.Default()), okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rr.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, http.CanonicalHeaderKey(RequestIDHeader), rr.Header().Get("Access-Control-Expose-Headers"))
	assert.Equal(t, "next", rr.Body.String())
}

func TestWithCORS_AllowList(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.CORS.AllowedOrigins = []string{"https://app.clarylisk.test", "http://localhost:5173"}

	tests := []struct {
		name       string
		origin     string
		wantOrigin string
	}{
		{"listed origin", "http://localhost:5173", "http://localhost:5173"},
		{"unlisted origin", "https://evil.test", ""},
		{"no origin", "", ""},
	}

	cors := WithCORS(cfg)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/user/login", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rr := httptest.NewRecorder()
			Wrap(cors, okHandler).ServeHTTP(rr, req)

			// CORS never blocks the request itself
			assert.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, tt.wantOrigin, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestWithCORS_Preflight(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodOptions, "/creators", nil)
	req.Header.Set("Origin", "https://app.clarylisk.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	req.Header.Set("Access-Control-Request-Headers", "content-type,authorization")

	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rr := httptest.NewRecorder()
	Wrap(WithCORS(config.Default()), next).ServeHTTP(rr, req)

	assert.False(t, called, "preflight stops the chain")
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.MethodPatch, rr.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "content-type,authorization", rr.Header().Get("Access-Control-Allow-Headers"))
}

func TestWithCORS_PreflightDisallowedMethod(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.CORS.AllowedMethods = []string{http.MethodGet}

	req := httptest.NewRequest(http.MethodOptions, "/creators", nil)
	req.Header.Set("Origin", "https://app.clarylisk.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	rr := httptest.NewRecorder()
	Wrap(WithCORS(cfg), okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}
