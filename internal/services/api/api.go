// Package api provides the HTTP API for the application
package api

import (
	"eltranslit/internal/core/ldml"
	"eltranslit/internal/core/translit"
	"eltranslit/internal/platform/config"
	"eltranslit/internal/platform/logger"
	phttp "eltranslit/internal/platform/net/http"
	"eltranslit/internal/platform/net/middleware"
	"eltranslit/internal/platform/store"

	"eltranslit/internal/modkit"
	"eltranslit/internal/modkit/httpkit"
	"eltranslit/internal/modkit/module"
	"eltranslit/internal/modkit/swaggerkit"

	metamod "eltranslit/internal/services/api/meta/module"
	translitmod "eltranslit/internal/services/api/translit/module")

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	Engine         *translit.Engine
	Rules          *ldml.Registry
	Auth           middleware.AuthPort // nil leaves the translit routes open
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	if opt.Engine == nil {
		panic("api.Mount requires a translit Engine")
	}

	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.Lite = opt.Store.Lite
	}

	public := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Registry: opt.Engine.Registry()})),
	}
	guarded := []module.Module{
		translitmod.New(deps,
			modkit.WithPorts(translitmod.Ports{Engine: opt.Engine, Rules: opt.Rules}),
			modkit.WithMiddlewares(middleware.AllowContentType("application/json")),
		),
	}

	stack := httpkit.CommonStack()
	if n := opt.Config.MayInt("MAX_INFLIGHT", 0); n > 0 {
		stack = append(stack, middleware.Throttle(n))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		mount(api, public)
		httpkit.Protected(api, opt.Auth, func(pr httpkit.Router) { mount(pr, guarded) })
	})
}

func mount(r httpkit.Router, mods []module.Module) {
	for _, m := range mods {
		// register each module's ports under its own name (for cross-module lookups)
		module.Register(m.Name(), m.Ports())

		// mount module routes under its Prefix()
		m.MountRoutes(r)
	}
}
