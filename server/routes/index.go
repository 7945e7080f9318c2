// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
)

// IndexPage is the handler for the / page.
//
// @Summary      Liveness greeting
// @Description  Answers with a fixed greeting so deployments can be checked.
// @Tags         meta
// @Produce      html
// @Success      200  {string}  string  "Hello World!"
// @Router       / [get]
func IndexPage(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err := w.Write([]byte("Hello World!"))

	return err
}
