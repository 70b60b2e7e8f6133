// Package routes declares HTTP routes as nested prefix groups and registers
// them on a ServeMux using method-qualified patterns.
package routes

import "net/http"

// Route binds a method and a pattern relative to its group prefix.
// An empty Method matches every method.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group shares a path prefix across its routes and child groups.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux and returns the patterns it
// registered, in declaration order.
func Register(mux *http.ServeMux, groups ...Group) []string {
	var patterns []string
	for _, group := range groups {
		patterns = register(mux, "", group, patterns)
	}
	return patterns
}

func register(mux *http.ServeMux, parent string, group Group, patterns []string) []string {
	prefix := parent + group.Prefix

	for _, route := range group.Routes {
		pattern := prefix + route.Pattern
		if pattern == "" {
			pattern = "/"
		}
		if route.Method != "" {
			pattern = route.Method + " " + pattern
		}

		mux.HandleFunc(pattern, route.Handler)
		patterns = append(patterns, pattern)
	}

	for _, child := range group.Children {
		patterns = register(mux, prefix, child, patterns)
	}

	return patterns
}
