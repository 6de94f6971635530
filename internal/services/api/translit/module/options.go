package module

import "eltranslit/internal/platform/config"

// Options controls request limits for the translit API
type Options struct {
	MaxBatch int
	Strict   bool
}

// FromConfig reads MAX_BATCH and STRICT under the service prefix
// (ELTRANSLIT_API_* when wired from main)
func FromConfig(cfg config.Conf) Options {
	return Options{
		MaxBatch: cfg.MayInt("MAX_BATCH", 1000),
		Strict:   cfg.MayBool("STRICT", false),
	}
}
