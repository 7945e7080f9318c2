// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/core/audit"
)

const (
	envOutputFile  = "deploy/.env.example"
	yamlOutputFile = "deploy/config.yaml.example"
	outputDir      = "deploy"
	filePerm       = 0o644
	dirPerm        = 0o755

	envFileHeader = `# Clarylisk backend configuration (via environment variables)
#
# Copy this file to .env and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`
	yamlFileHeader = `# Clarylisk backend configuration (via configuration file)
#
# Copy this file to config.yaml and customize the values below.
#
# This file was auto-generated using go run ./cmd/genconfig.
`

	// envUsageFormat is executed by envconfig.Usagef once per variable.
	// PORT and HOST stay uncommented; lists are left without a value to
	// prompt user input.
	envUsageFormat = `{{range .}}
# {{usage_type .}}
{{- if or (eq .Alt "PORT") (eq .Alt "HOST")}}
{{.Alt}}="{{.Field.Interface}}"
{{- else if eq .Field.Kind.String "slice"}}
# {{.Alt}}=
{{- else}}
# {{.Alt}}={{.Field.Interface}}
{{- end}}
{{end}}`
)

func main() {
	audit.SetDefaultLogger()

	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		log.Fatal().Err(err).Str("path", outputDir).Msg("Failed to create output directory")
	}

	generateEnvFile()
	generateYAMLFile()
}

// generateEnvFile generates the deploy/.env.example file.
func generateEnvFile() {
	cfg := config.Default()

	var sb strings.Builder
	sb.WriteString(envFileHeader)

	if err := envconfig.Usagef("", cfg, &sb, envUsageFormat); err != nil {
		log.Fatal().Err(err).Msg("Failed to describe environment variables")
	}

	if err := os.WriteFile(envOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", envOutputFile).Msg("Failed to write .env.example file")
	}

	log.Info().Str("path", envOutputFile).Msg("Successfully generated .env.example")
}

// generateYAMLFile generates the deploy/config.yaml.example file.
func generateYAMLFile() {
	cfg := config.Default()

	var yamlContent strings.Builder
	// Marshal the config to YAML.
	encoderOpts := []yaml.EncodeOption{
		config.GetDurationEncoderOption(),
		yaml.Indent(2),
	}
	if err := yaml.NewEncoder(&yamlContent, encoderOpts...).Encode(cfg); err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal config to YAML")
	}

	var sb strings.Builder
	sb.WriteString(yamlFileHeader)

	// Process the marshaled YAML line-by-line to create a clean template.
	for line := range strings.SplitSeq(yamlContent.String(), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Top-level keys (e.g., "basic:") are treated as section headers.
		if !strings.HasPrefix(line, " ") {
			fmt.Fprintf(&sb, "\n%s\n", line)
			continue
		}

		// By default, comment out the line.
		indentSize := len(line) - len(strings.TrimLeft(line, " "))
		fmt.Fprintf(&sb, "%s# %s\n", strings.Repeat(" ", indentSize), trimmed)
	}

	if err := os.WriteFile(yamlOutputFile, []byte(sb.String()), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", yamlOutputFile).Msg("Failed to write config file")
	}

	log.Info().Str("path", yamlOutputFile).Msg("Successfully generated config.yaml.example")
}
