// Package module wires the quantify API using modkit
package module

import (
	"net/http"

	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	qhttp "laurel/internal/services/api/quantify/http"
	qsvc "laurel/internal/services/quantify/service"
)

// Module implements the quantify API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	svc qsvc.Service
}

// Ports declares the engine port this API module requires
type Ports struct {
	Engine qsvc.Service
}

// New constructs the quantify API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("quantify-api"),
		modkit.WithPrefix("/quantify"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Engine == nil {
		panic("quantify API module requires Engine port (from services/quantify)")
	}

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    injected.Engine,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		qhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Ports returns the exposed port set (none beyond the injected engine)
func (m *Module) Ports() any { return Ports{Engine: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }
