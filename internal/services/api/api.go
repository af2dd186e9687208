// Package api provides the HTTP API for the application
package api

import (
	"laurel/internal/platform/config"
	"laurel/internal/platform/logger"
	phttp "laurel/internal/platform/net/http"
	"laurel/internal/platform/store"

	"laurel/internal/modkit"
	"laurel/internal/modkit/httpkit"
	"laurel/internal/modkit/module"

	metamod "laurel/internal/services/api/meta/module"
	apipraise "laurel/internal/services/api/praise/module"
	apiquantify "laurel/internal/services/api/quantify/module"

	auditmod "laurel/internal/services/audit/module"
	periodsmod "laurel/internal/services/periods/module"
	praisemod "laurel/internal/services/praise/module"
	quantifymod "laurel/internal/services/quantify/module"
	scorelogmod "laurel/internal/services/scorelog/module"
	settingsmod "laurel/internal/services/settings/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Engine collaborators first, so their ports can be injected downstream
	periods := periodsmod.New(deps)
	settings := settingsmod.New(deps)
	audit := auditmod.New(deps)
	scorelog := scorelogmod.New(deps)
	praise := praisemod.New(deps)

	quantify := quantifymod.New(deps, modkit.WithPorts(quantifymod.Ports{
		Periods:  periods.Service(),
		Settings: settings.Service(),
		Audit:    audit.Service(),
		History:  scorelog.Service(),
	}))

	apiQuantify := apiquantify.New(deps, modkit.WithPorts(apiquantify.Ports{
		Engine: quantify.Service(),
	}))
	apiPraise := apipraise.New(deps, modkit.WithPorts(apipraise.Ports{
		Records: praise.Service(),
		Engine:  quantify.Service(),
	}))

	mods := []module.Module{
		metamod.New(deps),
		periods,
		settings,
		audit,
		scorelog,
		praise,
		quantify,
		apiQuantify,
		apiPraise,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		phttp.MountSwagger(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
