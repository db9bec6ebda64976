// Package module wires the dashboard vertical into the API
package module

import (
	"net/http"

	"paylens/internal/core/privacy"
	modkit "paylens/internal/modkit"
	"paylens/internal/modkit/httpkit"
	str "paylens/internal/platform/strings"

	dashhttp "paylens/internal/services/api/dashboard/http"
	"paylens/internal/services/api/dashboard/repo"
	"paylens/internal/services/api/dashboard/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps      modkit.Deps
	name      string
	prefix    string
	mws       []func(http.Handler) http.Handler
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc   *service.Svc
	ports Ports
}

// New constructs the dashboard module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("dashboard"),
		modkit.WithPrefix("/dashboard"),
	}, opts...)...)

	guard := privacy.New(deps.Cfg.MayInt("DASHBOARD_MIN_COHORT", privacy.DefaultThreshold))
	svc := service.New(deps.PG, repo.NewPG(), deps.Cache, guard, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		ports:     Ports{Service: svc},
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dashhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}

	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(rr httpkit.Router) {
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "dashboard") }

// Prefix implements the modkit.Module interface
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares implements the modkit.Module interface
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return m.ports }
