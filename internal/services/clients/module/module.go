// Package module wires clients into the API using modkit
package module

import (
	"net/http"

	modkit "clientele/internal/modkit"
	"clientele/internal/modkit/httpkit"
	str "clientele/internal/platform/strings"
	clientshttp "clientele/internal/services/clients/http"
	clientsrepo "clientele/internal/services/clients/repo"
	clientssvc "clientele/internal/services/clients/service"
	"clientele/internal/services/clients/view"
)

// Module implements the modkit.Module interface
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws   []func(http.Handler) http.Handler
	ports any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc  clientssvc.Service
	ctrl *view.Controller
}

// New constructs a clients module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("clients"), modkit.WithPrefix("/clients")}, opts...)...)

	repo := clientsrepo.NewPG()
	svc := clientssvc.New(deps.PG, repo)
	ctrl := view.NewController(svc, deps.Feed, deps.Log)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		subrouter: b.Subrouter,
		svc:       svc,
		ctrl:      ctrl,
	}
	m.ports = Ports{Service: svc, View: ctrl}

	external := b.Register
	m.register = func(r httpkit.Router) {
		clientshttp.Register(r, m.svc, m.ctrl)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
