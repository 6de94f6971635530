// Package module wires translit into the API using modkit
package module

import (
	"eltranslit/internal/core/ldml"
	"eltranslit/internal/core/translit"
	modkit "eltranslit/internal/modkit"
	"eltranslit/internal/modkit/httpkit"
	str "eltranslit/internal/platform/strings"

	"eltranslit/internal/services/api/translit/domain"
	thttp "eltranslit/internal/services/api/translit/http"
	tsvc "eltranslit/internal/services/api/translit/service"
)

// Module implements the translit API module
type Module struct {
	built modkit.Built
	svc   tsvc.Service
}

// Ports declares what the module needs injected
type Ports struct {
	Engine *translit.Engine
	Rules  *ldml.Registry
}

// New constructs the translit module; it panics without an Engine port
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("translit"),
		modkit.WithPrefix("/translit"),
	}, opts...)...)

	injected, _ := b.Ports.(Ports)
	if injected.Engine == nil {
		panic("translit API module requires an Engine port")
	}

	cfg := FromConfig(deps.Cfg)
	log := deps.Log.With().Str("module", b.Name).Logger()
	svc := tsvc.New(injected.Engine, injected.Rules, tsvc.Options{
		MaxBatch: cfg.MaxBatch,
		Strict:   cfg.Strict,
		Log:      &log,
	})
	return &Module{built: b, svc: svc}
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { thttp.Register(rr, m.svc) })
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.built.Name, "module name") }

// Ports exposes the service to other modules as a domain.ServicePort
func (m *Module) Ports() any { return domain.ServicePort(m.svc) }
