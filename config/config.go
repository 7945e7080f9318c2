// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// ServerConfig holds the application configuration.
//
// It is built once by Load and handed by reference to whatever serves HTTP.
// Environment variable names follow the `envconfig` tags; fields tagged
// `ignored:"true"` are derived during validation.
type ServerConfig struct {
	Build buildInfo `ignored:"true" yaml:"-"`

	Basic struct {
		Host string `envconfig:"HOST" yaml:"host"`
		Port string `envconfig:"PORT" yaml:"port"`
	} `yaml:"basic"`

	App struct {
		RawBaseURL  string  `envconfig:"BASE_URL_APP" yaml:"baseUrl"`
		BaseURL     url.URL `ignored:"true"           yaml:"-"`
		Environment string  `envconfig:"NODE_ENV"     yaml:"environment"`
	} `yaml:"app"`

	CORS struct {
		// AllowedOrigins is the raw allow-list. Empty means every origin.
		AllowedOrigins   []string `envconfig:"ALLOWED_CORS"                yaml:"allowedOrigins"`
		AllowedMethods   []string `envconfig:"CLARYLISK_CORS_METHODS"      yaml:"allowedMethods"`
		AllowCredentials bool     `envconfig:"CLARYLISK_CORS_CREDENTIALS"  yaml:"allowCredentials"`
	} `yaml:"cors"`

	Body struct {
		MaxBytes int64 `envconfig:"CLARYLISK_BODY_MAX_BYTES" yaml:"maxBytes"`
	} `yaml:"body"`

	Docs struct {
		Path        string `envconfig:"CLARYLISK_DOCS_PATH"        yaml:"path"`
		Title       string `envconfig:"CLARYLISK_DOCS_TITLE"       yaml:"title"`
		Version     string `envconfig:"CLARYLISK_DOCS_VERSION"     yaml:"version"`
		Description string `envconfig:"CLARYLISK_DOCS_DESCRIPTION" yaml:"description"`
	} `yaml:"docs"`

	Errors struct {
		// HideInternal replaces the message of unclassified errors with a generic text.
		HideInternal bool `envconfig:"CLARYLISK_HIDE_INTERNAL_ERRORS" yaml:"hideInternal"`
	} `yaml:"errors"`

	Limiter struct {
		Enabled         bool          `envconfig:"CLARYLISK_LIMITER"                  yaml:"enabled"`
		Rate            float64       `envconfig:"CLARYLISK_LIMITER_RATE"             yaml:"rate"`
		Burst           int           `envconfig:"CLARYLISK_LIMITER_BURST"            yaml:"burst"`
		IPv4Prefix      int           `envconfig:"CLARYLISK_LIMITER_IPV4_PREFIX"      yaml:"ipv4Prefix"`
		IPv6Prefix      int           `envconfig:"CLARYLISK_LIMITER_IPV6_PREFIX"      yaml:"ipv6Prefix"`
		PassIPs         []string      `envconfig:"CLARYLISK_LIMITER_PASS_IPS"         yaml:"passList"`
		Expiry          time.Duration `envconfig:"CLARYLISK_LIMITER_EXPIRY"           yaml:"expiry"`
		CleanupInterval time.Duration `envconfig:"CLARYLISK_LIMITER_CLEANUP_INTERVAL" yaml:"cleanupInterval"`
	} `yaml:"limiter"`

	Log struct {
		Level   string   `envconfig:"CLARYLISK_LOG_LEVEL"   yaml:"logLevel"`
		Outputs []string `envconfig:"CLARYLISK_LOG_OUTPUTS" yaml:"logOutputs"`
		Format  string   `envconfig:"CLARYLISK_LOG_FORMAT"  yaml:"logFormat"`
	} `yaml:"log"`

	Development struct {
		InDevelopment bool `envconfig:"CLARYLISK_DEV" yaml:"inDevelopment"`
	} `yaml:"development"`
}

// Load builds the configuration from defaults, the YAML config file, a .env file
// and the environment, in that order of increasing precedence.
func Load() (*ServerConfig, error) {
	parsedConfigFlagValue := parseCommandLineArgs()

	// Check if the -config flag was explicitly set by the user.
	configFlagUserSet := false

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			configFlagUserSet = true
		}
	})

	var configFilePath string

	switch {
	case configFlagUserSet:
		configFilePath = parsedConfigFlagValue
	case os.Getenv("CLARYLISK_CONFIGFILE") != "":
		configFilePath = os.Getenv("CLARYLISK_CONFIGFILE")
	default:
		configFilePath = parsedConfigFlagValue
		if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
			ymlPath := "./config.yml"
			if _, statErr := os.Stat(ymlPath); statErr == nil {
				configFilePath = ymlPath
			}
		}
	}

	cfg := &ServerConfig{}
	if err := cfg.load(configFilePath); err != nil {
		return nil, err
	}

	cfg.print()

	return cfg, nil
}

// load runs every loading stage except printing.
func (cfg *ServerConfig) load(configFilePath string) error {
	cfg.SetDefaults()

	cfg.Build.load()

	if err := cfg.readYAML(configFilePath); err != nil {
		return fmt.Errorf("error loading YAML config: %w", err)
	}

	if err := useDotEnv(); err != nil {
		return fmt.Errorf("error using .env file: %w", err)
	}

	if err := readEnv(cfg); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	if err := cfg.validateAndSet(); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	cfg.setupAudit()

	return nil
}

// Addr returns the TCP address to listen on.
func (cfg *ServerConfig) Addr() string {
	return net.JoinHostPort(cfg.Basic.Host, cfg.Basic.Port)
}

// AllowsAnyOrigin reports whether CORS headers are sent for every origin.
func (cfg *ServerConfig) AllowsAnyOrigin() bool {
	return len(cfg.CORS.AllowedOrigins) == 0
}

// GetDurationEncoderOption returns a YAML encoder option that marshals
// time.Duration into a human-readable string format (e.g., "30m", "1h").
func GetDurationEncoderOption() yaml.EncodeOption {
	return yaml.CustomMarshaler[time.Duration](
		func(d time.Duration) ([]byte, error) {
			return yaml.Marshal(d.String())
		},
	)
}
