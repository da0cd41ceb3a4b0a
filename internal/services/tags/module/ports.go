package module

import (
	"clientele/internal/services/tags/domain"
)

// Ports bundles what other modules may need from tags
type Ports struct {
	Service domain.ServicePort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
