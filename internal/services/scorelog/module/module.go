// Package module wires the score history sink using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	srepo "laurel/internal/services/scorelog/repo"
	ssvc "laurel/internal/services/scorelog/service"
)

// Module implements the scorelog module
type Module struct {
	deps modkit.Deps
	name string

	svc ssvc.Service
}

// Ports exposes the score history writer to other modules
type Ports struct {
	Writer ssvc.Service
}

// New constructs the scorelog module. Without a clickhouse seam the writer
// degrades to a no-op so the engine keeps working on Postgres alone
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("scorelog"),
	}, opts...)...)

	var svc ssvc.Service = ssvc.Nop{}
	if deps.CH != nil {
		svc = ssvc.New(srepo.NewCH(deps.CH))
	}

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; score history has no routes of its own
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the scorelog port set
func (m *Module) Ports() any { return Ports{Writer: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the history writer for direct wiring
func (m *Module) Service() ssvc.Service { return m.svc }
