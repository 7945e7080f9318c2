// Copyright 2025, the Clarylisk contributors
// SPDX-License-Identifier: AGPL-3.0-only

package routes

import (
	"net/http"
	"sort"
	"strings"
	"sync"
)

// Prefixes the router mounts route modules under.
const (
	UserPrefix     = "/user"
	AIPrefix       = "/ai"
	CreatorsPrefix = "/creators"
)

// ModulePrefixes lists the route module prefixes in mount order.
var ModulePrefixes = []string{UserPrefix, AIPrefix, CreatorsPrefix}

// Route is one endpoint of a Module.
type Route struct {
	// Method is an HTTP method; empty matches every method.
	Method string
	// Path is relative to the module prefix and starts with "/". It may use
	// http.ServeMux wildcards such as "/{id}". Empty means the prefix itself.
	Path string
	// Handler serves the route. Returned errors are answered as JSON.
	Handler func(w http.ResponseWriter, r *http.Request) error
}

// Pattern returns the http.ServeMux pattern of r mounted under prefix.
func (r Route) Pattern(prefix string) string {
	pattern := strings.TrimSuffix(prefix, "/") + r.Path
	if pattern == "" {
		pattern = "/"
	}

	if r.Method == "" {
		return pattern
	}

	return r.Method + " " + pattern
}

// Module is a group of routes mounted under a common prefix.
type Module interface {
	Routes() []Route
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func() []Route

func (f ModuleFunc) Routes() []Route {
	return f()
}

var (
	modulesMu sync.RWMutex
	modules   = make(map[string]Module)
)

// Register makes a route module available under prefix.
//
// It is meant to be called from the init function of the package providing
// the module. If Register is called twice with the same prefix or if module is
// nil, it panics.
func Register(prefix string, module Module) {
	modulesMu.Lock()
	defer modulesMu.Unlock()

	if module == nil {
		panic("routes: Register module is nil")
	}

	if _, dup := modules[prefix]; dup {
		panic("routes: Register called twice for prefix " + prefix)
	}

	modules[prefix] = module
}

// Lookup returns the module registered under prefix.
func Lookup(prefix string) (Module, bool) {
	modulesMu.RLock()
	defer modulesMu.RUnlock()

	module, ok := modules[prefix]

	return module, ok
}

// Registered returns a sorted list of the prefixes with a registered module.
func Registered() []string {
	modulesMu.RLock()
	defer modulesMu.RUnlock()

	prefixes := make([]string, 0, len(modules))
	for prefix := range modules {
		prefixes = append(prefixes, prefix)
	}

	sort.Strings(prefixes)

	return prefixes
}

// unregisterAllModules is used by tests.
func unregisterAllModules() {
	modulesMu.Lock()
	defer modulesMu.Unlock()

	modules = make(map[string]Module)
}
