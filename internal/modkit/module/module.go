// Package module holds the module contract and the port registry modules find each other through
package module

import (
	phttp "eltranslit/internal/platform/net/http"
)

// Module is something the API can mount
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is what the module offers other modules; nil for nothing
	Ports() any
	Name() string
}
