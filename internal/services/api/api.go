// Package api composes the http modules into one mounted surface
package api

import (
	modkit "paylens/internal/modkit"
	"paylens/internal/modkit/httpkit"
	"paylens/internal/modkit/module"
	"paylens/internal/modkit/swaggerkit"
	"paylens/internal/platform/cache"
	"paylens/internal/platform/config"
	"paylens/internal/platform/logger"
	phttp "paylens/internal/platform/net/http"
	"paylens/internal/platform/net/middleware"
	"paylens/internal/platform/store"

	dashmod "paylens/internal/services/api/dashboard/module"
	metamod "paylens/internal/services/api/meta/module"
	recmod "paylens/internal/services/api/records/module"
)

// Options carries everything Mount needs from main
type Options struct {
	Cfg   config.Conf
	Log   logger.Logger
	Store *store.Store
	Cache cache.Cache

	// Auth guards the records endpoints, nil leaves them open for local dev
	Auth middleware.AuthPort

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount wires all modules under /api/v1 plus the non-versioned surfaces.
// returned modules are already registered in the port registry
func Mount(r httpkit.Router, o Options) []module.Module {
	deps := modkit.Deps{
		Log:   o.Log,
		Cfg:   o.Cfg,
		PG:    o.Store.PG,
		Cache: o.Cache,
	}

	mods := []module.Module{
		metamod.New(deps),
		dashmod.New(deps),
		recmod.New(deps, modkit.WithMiddlewares(httpkit.Auth(o.Auth))),
	}

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, o.EnableSwagger)
	phttp.MountProfiler(r, "/debug", o.EnableProfiler)

	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}
	return mods
}
