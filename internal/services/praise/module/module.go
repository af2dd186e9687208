// Package module wires the praise record store using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	prepo "laurel/internal/services/praise/repo"
	psvc "laurel/internal/services/praise/service"
)

// Module implements the praise record module
type Module struct {
	deps modkit.Deps
	name string

	svc psvc.Service
}

// Ports exposes the praise record surface to other modules
type Ports struct {
	Records psvc.Service
}

// New constructs the praise module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("praise"),
	}, opts...)...)

	svc := psvc.New(deps.PG, prepo.NewPG())

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; the praise record store has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the praise port set
func (m *Module) Ports() any { return Ports{Records: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the praise service for direct wiring
func (m *Module) Service() psvc.Service { return m.svc }
