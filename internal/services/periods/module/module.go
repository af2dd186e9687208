// Package module wires the reward period provider using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	prepo "laurel/internal/services/periods/repo"
	psvc "laurel/internal/services/periods/service"
)

// Module implements the periods module
type Module struct {
	deps modkit.Deps
	name string

	svc psvc.Service
}

// Ports exposes the period provider to other modules
type Ports struct {
	Provider psvc.Service
}

// New constructs the periods module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("periods"),
	}, opts...)...)

	svc := psvc.New(deps.PG, prepo.NewPG())

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; period administration is out of scope here
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the period port set
func (m *Module) Ports() any { return Ports{Provider: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the period provider for direct wiring
func (m *Module) Service() psvc.Service { return m.svc }
