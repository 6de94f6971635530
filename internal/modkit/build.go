package modkit

import (
	"net/http"

	"eltranslit/internal/modkit/httpkit"
	str "eltranslit/internal/platform/strings"
)

// Built is the result of applying Options; modules keep it and mount through it
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// Mount routes register under the prefix with the module middleware applied
// An empty prefix panics
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		register(rr)
	})
}
