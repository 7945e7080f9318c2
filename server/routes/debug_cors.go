// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/clarylisk/clarylisk-backend/config"
	"github.com/clarylisk/clarylisk-backend/server/utils"
)

// Placeholders of DebugCORSResponse fields that have no value.
const (
	noOriginPlaceholder   = "No origin"
	notDefinedPlaceholder = "Not defined"
)

// DebugCORSResponse describes how the server sees a cross-origin request.
type DebugCORSResponse struct {
	RequestOrigin  string   `json:"requestOrigin"  example:"http://localhost:5173"`
	AllowedOrigins []string `json:"allowedOrigins"`
	NodeEnv        string   `json:"nodeEnv"        example:"production"`
	AllowedCorsEnv string   `json:"allowedCorsEnv" example:"http://localhost:5173,https://clarylisk.app"`
}

// DebugCORS returns the handler for /debug-cors.
//
// It reports the effective CORS allow-list; an empty list means every origin
// is allowed.
//
// @Summary      CORS diagnostics
// @Description  Reports the request origin and the CORS settings the server runs with.
// @Tags         meta
// @Produce      json
// @Success      200  {object}  routes.DebugCORSResponse
// @Failure      500  {object}  responseerror.Body
// @Router       /debug-cors [get]
func DebugCORS(cfg *config.ServerConfig) func(w http.ResponseWriter, r *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		allowedOrigins := cfg.CORS.AllowedOrigins
		if allowedOrigins == nil {
			allowedOrigins = []string{}
		}

		resp := DebugCORSResponse{
			RequestOrigin:  utils.GetRequestOrigin(r, noOriginPlaceholder),
			AllowedOrigins: allowedOrigins,
			NodeEnv:        orPlaceholder(cfg.App.Environment),
			AllowedCorsEnv: orPlaceholder(strings.Join(allowedOrigins, ",")),
		}

		body, err := json.Marshal(resp)
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		_, err = w.Write(body)

		return err
	}
}

func orPlaceholder(value string) string {
	if value == "" {
		return notDefinedPlaceholder
	}

	return value
}
