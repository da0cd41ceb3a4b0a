// Package api provides the HTTP API for the application
package api

import (
	"clientele/internal/platform/config"
	"clientele/internal/platform/logger"
	phttp "clientele/internal/platform/net/http"
	"clientele/internal/platform/store"

	"clientele/internal/modkit"
	"clientele/internal/modkit/httpkit"
	"clientele/internal/modkit/module"

	clientsmod "clientele/internal/services/clients/module"
	"clientele/internal/services/clients/view"
	tagsmod "clientele/internal/services/tags/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger
}

// Mount mounts the API service onto the given router and returns the shared
// derived view controller so the caller can run its change feed loop
func Mount(r phttp.Router, opt Options) *view.Controller {
	// shared deps for modules
	deps := modkit.Deps{
		Log:  *opt.Logger,
		Cfg:  opt.Config,
		PG:   opt.Store.PG,
		Feed: opt.Store.Feed,
	}

	clients := clientsmod.New(deps)

	mods := []module.Module{
		clients,
		tagsmod.New(deps),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its prefix
			m.MountRoutes(api)
		}
	})

	return module.MustPortsOf[clientsmod.Ports](clients).View
}
