// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"net/http"
	"net/url"
	"time"
)

const (
	// Default JSON body limit, the same as express.json().
	defaultBodyMaxBytes = 100 * 1024

	// Default limiter bucket: 120 tokens per minute with a burst of 120.
	defaultLimiterRate  = 2.0
	defaultLimiterBurst = 120

	defaultLimiterExpiry          = time.Hour
	defaultLimiterCleanupInterval = 5 * time.Minute

	// DefaultBaseURL is used for the API docs when BASE_URL_APP is unset.
	DefaultBaseURL = "http://localhost:3000"
)

// Default returns a configuration holding only default values, with the
// fields validation would derive already populated.
func Default() *ServerConfig {
	cfg := &ServerConfig{}
	cfg.SetDefaults()

	// DefaultBaseURL is a constant known to parse
	baseURL, _ := url.Parse(DefaultBaseURL)
	cfg.App.BaseURL = *baseURL

	return cfg
}

// SetDefaults populates the configuration with default values.
func (cfg *ServerConfig) SetDefaults() {
	cfg.Basic.Host = "localhost"
	cfg.Basic.Port = "3000"

	cfg.App.RawBaseURL = DefaultBaseURL
	cfg.App.Environment = ""

	cfg.CORS.AllowedOrigins = nil
	cfg.CORS.AllowedMethods = []string{
		http.MethodGet,
		http.MethodHead,
		http.MethodPut,
		http.MethodPatch,
		http.MethodPost,
		http.MethodDelete,
	}
	cfg.CORS.AllowCredentials = true

	cfg.Body.MaxBytes = defaultBodyMaxBytes

	cfg.Docs.Path = "/api-docs-clarylisk"
	cfg.Docs.Title = "Clarylisk API"
	cfg.Docs.Version = "1.0.0"
	cfg.Docs.Description = "API documentation"

	cfg.Errors.HideInternal = false

	cfg.Limiter.Enabled = false
	cfg.Limiter.Rate = defaultLimiterRate
	cfg.Limiter.Burst = defaultLimiterBurst
	cfg.Limiter.IPv4Prefix = 24
	cfg.Limiter.IPv6Prefix = 48
	cfg.Limiter.PassIPs = nil
	cfg.Limiter.Expiry = defaultLimiterExpiry
	cfg.Limiter.CleanupInterval = defaultLimiterCleanupInterval

	cfg.Log.Level = "info"
	cfg.Log.Outputs = []string{"/dev/stderr"}
	cfg.Log.Format = "console"

	cfg.Development.InDevelopment = false
}
