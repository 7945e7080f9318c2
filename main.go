// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Clarylisk backend is the HTTP API of Clarylisk.
*/
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/core/audit"
	"github.com/clarylisk/clarylisk-backend/docs"
	"github.com/clarylisk/clarylisk-backend/server/middleware/limiter"
	"github.com/clarylisk/clarylisk-backend/server/router"
)

const (
	// Values for http.Server timeouts.
	// ref: gosec: G112
	readHeaderTimeout time.Duration = 15 * time.Second
	readTimeout       time.Duration = 15 * time.Second
	writeTimeout      time.Duration = 10 * time.Second
	idleTimeout       time.Duration = 30 * time.Second

	serverShutdownDeadline time.Duration = 5 * time.Second
)

// main is the entry point of the application.
//
//	@title			Clarylisk API
//	@version		1.0.0
//	@description	API documentation
//	@license.name	AGPL-3.0-only
//	@license.url	https://www.gnu.org/licenses/agpl-3.0.html
//	@host			localhost:3000
//	@BasePath		/
//	@schemes		http
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application failed")
	}
}

// run orchestrates the application startup and graceful shutdown.
func run() error {
	audit.SetDefaultLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	docs.Configure(cfg)

	handler, lim, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	// Create http.Server instance
	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listener, err := listen(ctx, cfg)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	})

	if lim != nil {
		g.Go(func() error {
			return lim.Run(gctx)
		})
	}

	// Block until a shutdown signal or a server error is received
	g.Go(func() error {
		<-gctx.Done()

		if ctx.Err() != nil {
			log.Info().Msg("Shutdown signal received")
		}

		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownDeadline)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info().Msg("Server exited gracefully")

	return nil
}

// buildHandler assembles the router for cfg. The returned limiter is nil
// unless rate limiting is enabled.
func buildHandler(cfg *config.ServerConfig) (http.Handler, *limiter.Limiter, error) {
	var lim *limiter.Limiter
	if cfg.Limiter.Enabled {
		lim = limiter.New(cfg)
	}

	r := router.New(cfg)
	r.DefineRoutes()

	if err := r.RegisterMiddleware(lim); err != nil {
		return nil, nil, fmt.Errorf("failed to register middleware: %w", err)
	}

	return r, lim, nil
}

func listen(ctx context.Context, cfg *config.ServerConfig) (net.Listener, error) {
	addr := cfg.Addr()

	tcpListener, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start TCP listener on %v: %w", addr, err)
	}

	addr = tcpListener.Addr().String()

	// Extract the port for logging
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		_ = tcpListener.Close()

		return nil, fmt.Errorf("failed to parse listener address %q: %w", addr, err)
	}

	log.Info().
		Str("address", addr).
		Str("port", port).
		Str("url", fmt.Sprintf("http://localhost:%v/", port)).
		Str("docs", cfg.App.BaseURL.String()+cfg.Docs.Path).
		Msg("Listening on address")

	return tcpListener, nil
}
