// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"fmt"

	"github.com/clarylisk/clarylisk-backend/server/middleware"
	"github.com/clarylisk/clarylisk-backend/server/middleware/limiter"
)

// RegisterMiddleware installs the middleware chain. A nil lim leaves rate
// limiting off.
func (router *Router) RegisterMiddleware(lim *limiter.Limiter) error {
	compression, err := middleware.WithCompression()
	if err != nil {
		return fmt.Errorf("failed to set up response compression: %w", err)
	}

	// the first middleware is the most outer / first executed one
	router.Use(middleware.WithServerTiming)
	router.Use(compression)
	router.Use(middleware.WithRequestContext) // needed for everything else
	router.Use(middleware.LogOrigin)
	router.Use(middleware.WithCORS(router.cfg)) // preflights end here
	router.Use(middleware.SetResponseHeaders(router.cfg))
	router.Use(middleware.NormalizeURL(router.cfg))

	if lim != nil {
		router.Use(lim.Evaluate)
	}

	router.Use(middleware.ParseCookies)
	router.Use(middleware.ParseJSONBody(router.cfg))

	return nil
}
