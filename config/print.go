// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog/log"
)

const redactedValue = "[redacted]"

func (cfg *ServerConfig) print() {
	log.Info().
		Str("version", BuildVersion).
		Str("revision", cfg.Build.Revision()).
		Msg("Starting Clarylisk backend")

	configYAML, err := cfg.redactedYAML()
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal config to YAML for printing")

		return
	}

	log.Info().Msg("Application configuration:")
	fmt.Fprintln(os.Stderr, string(configYAML))
}

// redactedYAML marshals a copy of cfg with credentials in the base URL hidden.
func (cfg *ServerConfig) redactedYAML() ([]byte, error) {
	printableConfig := *cfg

	if cfg.App.BaseURL.User != nil {
		u := cfg.App.BaseURL
		u.User = nil
		printableConfig.App.RawBaseURL = u.String() + " " + redactedValue
	}

	return yaml.MarshalWithOptions(printableConfig, GetDurationEncoderOption())
}
