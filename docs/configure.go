// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package docs

import (
	"github.com/clarylisk/clarylisk-backend/config"
)

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.3 init --generalInfo main.go --dir ../ --output . --outputTypes go --parseInternal

// Configure points SwaggerInfo at the server described by cfg.
//
// SwaggerInfo is process-wide, so Configure is called once before serving.
func Configure(cfg *config.ServerConfig) {
	SwaggerInfo.Host = cfg.App.BaseURL.Host
	SwaggerInfo.Schemes = []string{cfg.App.BaseURL.Scheme}

	SwaggerInfo.BasePath = cfg.App.BaseURL.Path
	if SwaggerInfo.BasePath == "" {
		SwaggerInfo.BasePath = "/"
	}

	SwaggerInfo.Title = cfg.Docs.Title
	SwaggerInfo.Version = cfg.Docs.Version
	SwaggerInfo.Description = cfg.Docs.Description
}
