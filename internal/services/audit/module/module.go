// Package module wires the audit trail using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	arepo "laurel/internal/services/audit/repo"
	asvc "laurel/internal/services/audit/service"
)

// Module implements the audit module
type Module struct {
	deps modkit.Deps
	name string

	svc asvc.Service
}

// Ports exposes the audit recorder to other modules
type Ports struct {
	Recorder asvc.Service
}

// New constructs the audit module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("audit"),
	}, opts...)...)

	svc := asvc.New(deps.PG, arepo.NewPG())

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; the audit trail has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the audit port set
func (m *Module) Ports() any { return Ports{Recorder: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the audit recorder for direct wiring
func (m *Module) Service() asvc.Service { return m.svc }
