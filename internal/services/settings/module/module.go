// Package module wires the period settings reader using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	srepo "laurel/internal/services/settings/repo"
	ssvc "laurel/internal/services/settings/service"
)

// Module implements the settings module
type Module struct {
	deps modkit.Deps
	name string

	svc ssvc.Service
}

// Ports exposes the typed settings reader to other modules
type Ports struct {
	Reader ssvc.Service
}

// New constructs the settings module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("settings"),
	}, opts...)...)

	svc := ssvc.New(deps.PG, srepo.NewPG())

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; settings administration is out of scope here
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the settings port set
func (m *Module) Ports() any { return Ports{Reader: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the settings reader for direct wiring
func (m *Module) Service() ssvc.Service { return m.svc }
