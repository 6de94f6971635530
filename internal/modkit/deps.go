// Package modkit builds API modules from shared deps and options
package modkit

import (
	"eltranslit/internal/modkit/repokit"
	"eltranslit/internal/platform/config"
	"eltranslit/internal/platform/logger"
)

// Deps holds what every module receives
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// table stores, nil when not configured
	PG   repokit.TxRunner
	Lite repokit.TxRunner
}
