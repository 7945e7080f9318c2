// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package middleware provides the HTTP request pipeline of the Clarylisk backend.

Every middleware has the Middleware signature and is registered on the router in
a fixed order (see router.RegisterMiddleware). Route handlers are FallibleHandlers
wrapped by CatchError, which turns returned errors into {"error": "..."} JSON
responses. Middleware that rejects a request before routing answers through
RespondError so clients see the same envelope.
*/
package middleware
