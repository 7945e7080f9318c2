// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/server/request_context"
	"github.com/clarylisk/clarylisk-backend/server/utils"
)

// LogOrigin logs the Origin header of every request at debug level.
func LogOrigin(w http.ResponseWriter, r *http.Request, next http.Handler) {
	log.Debug().
		Str("origin", utils.GetRequestOrigin(r, "none")).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Bool("secure", utils.IsConnectionSecure(r)).
		Str("request_id", request_context.FromRequest(r).RequestID).
		Msg("Request origin")

	next.ServeHTTP(w, r)
}
