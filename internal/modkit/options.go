package modkit

import "net/http"

// Option adjusts how a module is built
type Option func(*Built)

// WithName sets the module name used in logs and the port registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts the module under a path prefix
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares adds middleware that wraps only this module's routes, in order
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects the values a module needs from its caller
// the concrete type is owned by the module
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}
