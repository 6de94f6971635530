// Package strings holds small string and list helpers shared by the API and CLIs
package strings

import std "strings"

// IfEmpty returns def when in has no elements
func IfEmpty[T any](in, def []T) []T {
	if len(in) > 0 {
		return in
	}
	return def
}

// MustString panics with "<name> is required" when s is blank
func MustString(s, name string) string {
	if std.TrimSpace(s) != "" {
		return s
	}
	panic(name + " is required")
}

// MustPrefix turns " translit/ " into "/translit"; a blank or bare "/" prefix panics
func MustPrefix(s string) string {
	trimmed := std.Trim(s, " /")
	if trimmed == "" {
		panic("route prefix is required")
	}
	return "/" + trimmed
}
