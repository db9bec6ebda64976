package module

import "paylens/internal/services/api/dashboard/domain"

// Ports exposes the dashboard service to other modules via the registry
type Ports struct {
	Service domain.ServicePort
}
