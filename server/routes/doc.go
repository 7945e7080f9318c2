// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package routes holds the HTTP handlers of the Clarylisk backend and the registry
of route modules mounted under /user, /ai and /creators.

Handlers return an error instead of writing failures themselves; the router
wraps each of them with middleware.CatchError.
*/
package routes
