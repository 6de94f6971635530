// Package http serves the /meta endpoints: liveness, readiness, build and registry info
package http

import (
	"net/http"
	"time"

	"eltranslit/internal/core/registry"
	"eltranslit/internal/core/version"
	"eltranslit/internal/modkit/httpkit"

	tdomain "eltranslit/internal/services/api/translit/domain"
)

// Deps are the handler dependencies; nil stores are reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	Lite        Pinger
	Registry    *registry.Registry
	// Translit is looked up per request since modules mount in any order
	Translit func() (tdomain.ServicePort, bool)
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/registry", h.registry)
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Loaded language registry
// @Tags Meta
// @Produce json
// @Success 200 {object} RegistryResponse
// @Router /meta/registry [get]
func (h *handlers) registry(*http.Request) (any, error) {
	out := RegistryResponse{Languages: []string{}, Build: version.Info()}
	reg := h.deps.Registry
	if reg == nil {
		return out, nil
	}
	for _, l := range reg.Languages() {
		out.Languages = append(out.Languages, l.Code)
	}
	out.Version = reg.Version
	out.Tables = len(reg.Tables())
	return out, nil
}
