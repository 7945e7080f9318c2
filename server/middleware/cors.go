// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package middleware

import (
	"net/http"

	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/config"
)

// WithCORS returns a middleware answering CORS preflights and decorating
// cross-origin responses.
//
// An empty allow-list admits every origin. Preflight requests stop here with
// 204 No Content.
func WithCORS(cfg *config.ServerConfig) Middleware {
	options := cors.Options{
		AllowedOrigins:       cfg.CORS.AllowedOrigins,
		AllowedMethods:       cfg.CORS.AllowedMethods,
		AllowedHeaders:       []string{"*"},
		ExposedHeaders:       []string{RequestIDHeader},
		AllowCredentials:     cfg.CORS.AllowCredentials,
		OptionsSuccessStatus: http.StatusNoContent,
	}

	if cfg.Development.InDevelopment {
		logger := log.With().Str("sys", "cors").Logger()
		options.Logger = &logger
	}

	c := cors.New(options)

	return func(w http.ResponseWriter, r *http.Request, next http.Handler) {
		c.ServeHTTP(w, r, next.ServeHTTP)
	}
}
