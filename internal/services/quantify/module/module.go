// Package module wires the quantification engine using modkit
package module

import (
	modkit "laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"

	auditdom "laurel/internal/services/audit/domain"
	periodsdom "laurel/internal/services/periods/domain"
	qrepo "laurel/internal/services/quantify/repo"
	qsvc "laurel/internal/services/quantify/service"
	scoredom "laurel/internal/services/scorelog/domain"
	settingsdom "laurel/internal/services/settings/domain"
)

// Module implements the quantification engine module
type Module struct {
	deps modkit.Deps
	name string

	svc qsvc.Service
}

// Ports declares the collaborator ports this module consumes (injected)
// and the engine port it exposes
type Ports struct {
	Periods  periodsdom.ProviderPort
	Settings settingsdom.ReaderPort
	Audit    auditdom.RecorderPort
	History  scoredom.WriterPort
}

// EnginePorts is the exposed port set
type EnginePorts struct {
	Engine qsvc.Service
}

// New constructs the quantify module
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("quantify"),
	}, opts...)...)

	injected, ok := b.Ports.(Ports)
	if !ok {
		panic("quantify module requires Ports{Periods, Settings, ...}")
	}
	if injected.Periods == nil {
		panic("quantify module requires a period provider port")
	}
	if injected.Settings == nil {
		panic("quantify module requires a settings reader port")
	}

	svc := qsvc.New(deps.PG, qrepo.NewPG(), qsvc.Options{
		Periods:  injected.Periods,
		Settings: injected.Settings,
		Audit:    injected.Audit,
		History:  injected.History,
	})

	return &Module{
		deps: deps,
		name: b.Name,
		svc:  svc,
	}
}

// MountRoutes is a no-op; the HTTP surface lives in the api composition
func (m *Module) MountRoutes(httpkit.Router) {}

// Ports returns the engine port set
func (m *Module) Ports() any { return EnginePorts{Engine: m.svc} }

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Service returns the engine for direct wiring
func (m *Module) Service() qsvc.Service { return m.svc }
