// Package module wires the praise API using modkit
package module

import (
	"net/http"

	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	phttp "laurel/internal/services/api/praise/http"
	psvc "laurel/internal/services/praise/service"
	qsvc "laurel/internal/services/quantify/service"
)

// Module implements the praise API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)

	records psvc.Service
	engine  qsvc.Service
}

// Ports declares the injected ports this API module requires
type Ports struct {
	Records psvc.Service
	Engine  qsvc.Service
}

// New constructs the praise API module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("praise-api"),
		modkit.WithPrefix("/praise"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok || injected.Records == nil || injected.Engine == nil {
		panic("praise API module requires Records and Engine ports")
	}

	m := &Module{
		deps:    deps,
		name:    b.Name,
		prefix:  b.Prefix,
		mws:     b.Mw,
		records: injected.Records,
		engine:  injected.Engine,
	}

	external := b.Register
	m.register = func(r httpkit.Router) {
		phttp.Register(r, m.records, m.engine)
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

// Ports returns the exposed port set
func (m *Module) Ports() any { return Ports{Records: m.records, Engine: m.engine} }

// Name returns the module name
func (m *Module) Name() string { return m.name }
