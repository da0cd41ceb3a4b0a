package module

import (
	"clientele/internal/services/clients/domain"
	"clientele/internal/services/clients/view"
)

// Ports bundles what other modules and main may need from clients
type Ports struct {
	Service domain.ServicePort
	View    *view.Controller
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
