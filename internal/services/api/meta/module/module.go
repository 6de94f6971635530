// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/version"
	modkit "eltranslit/internal/modkit"
	"eltranslit/internal/modkit/httpkit"
	modreg "eltranslit/internal/modkit/module"
	str "eltranslit/internal/platform/strings"

	metahttp "eltranslit/internal/services/api/meta/http"
	tdomain "eltranslit/internal/services/api/translit/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// Ports are optional injected values the meta endpoints report on
type Ports struct {
	Registry *registry.Registry
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	hd := metahttp.Deps{
		ServiceName: version.Info().Service,
		StartedAt:   time.Now(),
		Registry:    injected.Registry,
		Translit: func() (tdomain.ServicePort, bool) {
			return modreg.PortsAs[tdomain.ServicePort]("translit")
		},
	}
	// unset stores stay nil interfaces and report as skipped
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		hd.PG = p
	}
	if p, ok := deps.Lite.(metahttp.Pinger); ok {
		hd.Lite = p
	}
	return &Module{built: b, deps: hd}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.built.Name, "meta") }

// Ports implements the modkit.Module interface; meta offers nothing to other modules
func (m *Module) Ports() any { return nil }
