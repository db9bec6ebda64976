package module

import "paylens/internal/services/api/records/domain"

// Ports exposes the records service to other modules via the registry
type Ports struct {
	Service domain.ServicePort
}
