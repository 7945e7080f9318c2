// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithCompression(t *testing.T) {
	t.Parallel()

	compression, err := WithCompression()
	require.NoError(t, err)

	large := strings.Repeat(`{"creator":"ana"},`, 200)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.URL.Path == "/small" {
			_, _ = w.Write([]byte(`{"ok":true}`))

			return
		}

		_, _ = w.Write([]byte(large))
	})

	t.Run("large response is gzipped", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/large", nil)
		req.Header.Set("Accept-Encoding", "gzip")

		rr := httptest.NewRecorder()
		Wrap(compression, next).ServeHTTP(rr, req)

		require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

		reader, err := gzip.NewReader(rr.Body)
		require.NoError(t, err)

		body, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, large, string(body))
	})

	t.Run("small response is plain", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/small", nil)
		req.Header.Set("Accept-Encoding", "gzip")

		rr := httptest.NewRecorder()
		Wrap(compression, next).ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
	})

	t.Run("client without gzip", func(t *testing.T) {
		t.Parallel()

		rr := httptest.NewRecorder()
		Wrap(compression, next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/large", nil))

		assert.Empty(t, rr.Header().Get("Content-Encoding"))
		assert.Equal(t, large, rr.Body.String())
	})
}
