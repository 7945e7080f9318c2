// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package router

import (
	"net/http"
	"net/http/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/clarylisk/clarylisk-backend/docs" // registers the API document
	"github.com/clarylisk/clarylisk-backend/server/middleware"
	"github.com/clarylisk/clarylisk-backend/server/routes"
)

// DefineRoutes sets up all the routes for the application using our custom Router.
//
// It mounts every route module registered under routes.ModulePrefixes. The
// Router is left without middleware.
func (router *Router) DefineRoutes() {
	cfg := router.cfg

	// Index page route
	// /{$} matches only the root path
	router.HandleFunc("GET /{$}", middleware.CatchError(routes.IndexPage, cfg))
	router.HandleFunc("GET /debug-cors", middleware.CatchError(routes.DebugCORS(cfg), cfg))

	// API docs. Patterns ending in "/" are prefix matches.
	docsPath := cfg.Docs.Path
	router.HandleFunc("GET "+docsPath, redirectPreservingQuery(docsPath+"/index.html"))
	router.Handle("GET "+docsPath+"/", httpSwagger.Handler(httpSwagger.URL(docsPath+"/doc.json")))

	for _, prefix := range routes.ModulePrefixes {
		module, ok := routes.Lookup(prefix)
		if !ok {
			log.Warn().
				Str("prefix", prefix).
				Msg("No route module registered, leaving prefix unmounted")

			continue
		}

		router.Mount(prefix, module)
	}

	if cfg.Development.InDevelopment {
		registerDebugRoutes(router)
	}
}

// Mount registers every route of module under prefix. Route handlers answer
// their errors through middleware.CatchError.
func (router *Router) Mount(prefix string, module routes.Module) {
	mounted := 0

	for _, route := range module.Routes() {
		pattern := route.Pattern(prefix)

		if route.Handler == nil {
			log.Warn().
				Str("pattern", pattern).
				Msg("Skipping route without handler")

			continue
		}

		router.HandleFunc(pattern, middleware.CatchError(route.Handler, router.cfg))

		mounted++
	}

	log.Debug().
		Str("prefix", prefix).
		Int("routes", mounted).
		Msg("Mounted route module")
}

var (
	flightRecorder     = trace.NewFlightRecorder(trace.FlightRecorderConfig{MinAge: time.Minute})
	flightRecorderOnce sync.Once
)

func registerDebugRoutes(router *Router) {
	flightRecorderOnce.Do(func() {
		if err := flightRecorder.Start(); err != nil {
			log.Warn().Err(err).Msg("Failed to start flight recorder")
		}
	})

	router.HandleFunc("GET /debug/pprof/", pprof.Index)
	router.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	router.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	router.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	router.HandleFunc("GET /debug/pprof/trace", pprof.Trace)
	router.HandleFunc("GET /debug/flight", func(w http.ResponseWriter, r *http.Request) {
		_, _ = flightRecorder.WriteTo(w)
	})
}
