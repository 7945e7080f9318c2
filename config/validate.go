package config

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/server/utils"
)

// validation errors.
var (
	errInvalidPort            = errors.New("port must be a number between 0 and 65535")
	errInvalidBodyLimit       = errors.New("body.maxBytes must be greater than zero")
	errInvalidDocsPath        = errors.New("docs.path must start with '/' and must not end with '/'")
	errInvalidCORSOrigin      = errors.New("invalid CORS origin")
	errInvalidLogLevel        = errors.New("invalid log level")
	errInvalidLogFormat       = errors.New("invalid log format")
	errInvalidLimiterRate     = errors.New("limiter rate and burst must be greater than zero")
	errInvalidIPv4Prefix      = errors.New("IPv4 prefix must be between 0 and 32")
	errInvalidIPv6Prefix      = errors.New("IPv6 prefix must be between 0 and 128")
	errInvalidLimiterPassList = errors.New("limiter pass list entries must be IPs or CIDRs")
	errInvalidLimiterTimings  = errors.New("limiter expiry and cleanup interval must be greater than zero")
)

const maxPort = 65535

// validateAndSet validates the server configuration and populates derived fields.
func (cfg *ServerConfig) validateAndSet() error {
	if cfg.Basic.Host == "" {
		cfg.Basic.Host = "localhost"
		log.Info().
			Str("host", cfg.Basic.Host).
			Msg("Binding to default host")
	}

	if cfg.Basic.Port == "" {
		cfg.Basic.Port = "3000"
		log.Info().
			Str("port", cfg.Basic.Port).
			Msg("Using default port")
	}

	if port, err := strconv.Atoi(cfg.Basic.Port); err != nil || port < 0 || port > maxPort {
		return fmt.Errorf("%w: %q", errInvalidPort, cfg.Basic.Port)
	}

	if cfg.App.RawBaseURL == "" {
		cfg.App.RawBaseURL = DefaultBaseURL
	}

	baseURL, err := utils.ParseURL(cfg.App.RawBaseURL, "base")
	if err != nil {
		return fmt.Errorf("invalid BASE_URL_APP: %w", err)
	}

	cfg.App.BaseURL = *baseURL

	origins, err := normalizeOrigins(cfg.CORS.AllowedOrigins)
	if err != nil {
		return err
	}

	cfg.CORS.AllowedOrigins = origins
	cfg.CORS.AllowedMethods = normalizeMethods(cfg.CORS.AllowedMethods)

	if cfg.Body.MaxBytes <= 0 {
		return errInvalidBodyLimit
	}

	if !strings.HasPrefix(cfg.Docs.Path, "/") || strings.HasSuffix(cfg.Docs.Path, "/") {
		return fmt.Errorf("%w: %q", errInvalidDocsPath, cfg.Docs.Path)
	}

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, cfg.Log.Level) {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, cfg.Log.Level)
	}

	cfg.Log.Outputs = trimEntries(cfg.Log.Outputs)

	switch cfg.Log.Format {
	case "console", "json":
		// valid
	default:
		return fmt.Errorf("%w: %q", errInvalidLogFormat, cfg.Log.Format)
	}

	// Skip validating Limiter configuration if it's not enabled
	if !cfg.Limiter.Enabled {
		return nil
	}

	return cfg.validateLimiter()
}

func (cfg *ServerConfig) validateLimiter() error {
	if cfg.Limiter.Rate <= 0 || cfg.Limiter.Burst <= 0 {
		return errInvalidLimiterRate
	}

	if cfg.Limiter.IPv4Prefix < 0 || cfg.Limiter.IPv4Prefix > 32 {
		return errInvalidIPv4Prefix
	}

	if cfg.Limiter.IPv6Prefix < 0 || cfg.Limiter.IPv6Prefix > 128 {
		return errInvalidIPv6Prefix
	}

	if cfg.Limiter.Expiry <= 0 || cfg.Limiter.CleanupInterval <= 0 {
		return errInvalidLimiterTimings
	}

	cfg.Limiter.PassIPs = trimEntries(cfg.Limiter.PassIPs)
	for _, entry := range cfg.Limiter.PassIPs {
		if net.ParseIP(entry) != nil {
			continue
		}

		if _, _, err := net.ParseCIDR(entry); err != nil {
			return fmt.Errorf("%w: %q", errInvalidLimiterPassList, entry)
		}
	}

	return nil
}

// normalizeOrigins trims the allow-list and checks every entry is a bare origin.
//
// A single "*" entry is the same as an empty list.
func normalizeOrigins(raw []string) ([]string, error) {
	origins := trimEntries(raw)
	if len(origins) == 1 && origins[0] == "*" {
		return nil, nil
	}

	for i, origin := range origins {
		parsed, err := utils.ParseURL(origin, "CORS origin")
		if err != nil || parsed.Path != "" || parsed.RawQuery != "" {
			return nil, fmt.Errorf("%w: %q", errInvalidCORSOrigin, origin)
		}

		origins[i] = utils.GetOriginFromURL(*parsed)
	}

	return origins, nil
}

func normalizeMethods(raw []string) []string {
	methods := trimEntries(raw)
	for i, method := range methods {
		methods[i] = strings.ToUpper(method)
	}

	return methods
}

// trimEntries drops blank entries and surrounding whitespace; envconfig splits on
// commas without trimming.
func trimEntries(values []string) []string {
	trimmed := make([]string, 0, len(values))

	for _, value := range values {
		if v := strings.TrimSpace(value); v != "" {
			trimmed = append(trimmed, v)
		}
	}

	if len(trimmed) == 0 {
		return nil
	}

	return trimmed
}
