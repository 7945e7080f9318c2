// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

func TestParseCookies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   map[string]string
	}{
		{
			name:   "no cookies",
			header: "",
			want:   map[string]string{},
		},
		{
			name:   "several cookies",
			header: "token=abc123; theme=dark",
			want:   map[string]string{"token": "abc123", "theme": "dark"},
		},
		{
			name:   "first value wins",
			header: "token=first; token=second",
			want:   map[string]string{"token": "first"},
		},
		{
			name:   "percent encoded value is decoded",
			header: "wallet=0xAB%2FCD",
			want:   map[string]string{"wallet": "0xAB/CD"},
		},
		{
			name:   "undecodable value is kept",
			header: "raw=100%zz",
			want:   map[string]string{"raw": "100%zz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := createTestRequest(t, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Cookie", tt.header)
			}

			ParseCookies(httptest.NewRecorder(), req, okHandler)

			assert.Equal(t, tt.want, request_context.FromRequest(req).Cookies)
		})
	}
}
