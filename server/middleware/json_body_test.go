// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/server/request_context"
)

func TestParseJSONBody(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Body.MaxBytes = 64

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
		wantStored  bool
	}{
		{
			name:        "object is stored",
			contentType: "application/json",
			body:        `{"email":"ana@clarylisk.test"}`,
			wantStatus:  http.StatusOK,
			wantStored:  true,
		},
		{
			name:        "array with charset is stored",
			contentType: "application/json; charset=utf-8",
			body:        `[1,2,3]`,
			wantStatus:  http.StatusOK,
			wantStored:  true,
		},
		{
			name:        "vendor json is stored",
			contentType: "application/merge-patch+json",
			body:        `{"name":null}`,
			wantStatus:  http.StatusOK,
			wantStored:  true,
		},
		{
			name:        "malformed json is rejected",
			contentType: "application/json",
			body:        `{"email":`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"error":"invalid JSON body"}`,
		},
		{
			name:        "bare string is rejected",
			contentType: "application/json",
			body:        `"hello"`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"error":"invalid JSON body"}`,
		},
		{
			name:        "bare number is rejected",
			contentType: "application/json",
			body:        `123`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"error":"invalid JSON body"}`,
		},
		{
			name:        "oversized body is rejected",
			contentType: "application/json",
			body:        `{"bio":"` + strings.Repeat("a", 100) + `"}`,
			wantStatus:  http.StatusInternalServerError,
			wantBody:    `{"error":"request entity too large (limit 64 bytes)"}`,
		},
		{
			name:        "empty json body passes",
			contentType: "application/json",
			body:        "  ",
			wantStatus:  http.StatusOK,
		},
		{
			name:        "other media types pass untouched",
			contentType: "text/plain",
			body:        `{"not":"parsed"`,
			wantStatus:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := createTestRequest(t, http.MethodPost, "/user/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)

			var handlerBody string

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				b, err := io.ReadAll(r.Body)
				assert.NoError(t, err)

				handlerBody = string(b)

				w.WriteHeader(http.StatusOK)
			})

			rr := httptest.NewRecorder()
			Wrap(ParseJSONBody(cfg), next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			}

			ctx := request_context.FromRequest(req)
			if tt.wantStored {
				assert.Equal(t, tt.body, string(ctx.Body))
			} else {
				assert.Nil(t, ctx.Body)
			}

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.body, handlerBody, "handlers can still read the body")
			}
		})
	}
}

func TestParseJSONBody_FailuresAreUnclassified(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Errors.HideInternal = true

	req := createTestRequest(t, http.MethodPost, "/ai/prompt", strings.NewReader(`{"a":`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	Wrap(ParseJSONBody(cfg), okHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, `{"error":"Internal Server Error"}`, rr.Body.String())
	assert.ErrorIs(t, request_context.FromRequest(req).RequestError, errInvalidJSONBody)
}

func TestParseJSONBody_PathAccess(t *testing.T) {
	t.Parallel()

	req := createTestRequest(t, http.MethodPost, "/creators", strings.NewReader(`{"creator":{"name":"Ana","links":["a","b"]}}`))
	req.Header.Set("Content-Type", "application/json")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := request_context.FromRequest(r)

		var decoded struct {
			Creator struct {
				Name string `json:"name"`
			} `json:"creator"`
		}

		require.NoError(t, json.NewDecoder(r.Body).Decode(&decoded))
		assert.Equal(t, "Ana", decoded.Creator.Name)
		assert.Equal(t, "Ana", ctx.JSON("creator.name").String())
		assert.Equal(t, int64(2), ctx.JSON("creator.links.#").Int())
	})

	Wrap(ParseJSONBody(config.Default()), next).ServeHTTP(httptest.NewRecorder(), req)
}
