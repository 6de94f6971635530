package modkit

import "eltranslit/internal/modkit/module"

// Module is what the API mounts; see module.Module
type Module = module.Module
