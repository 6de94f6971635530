package module

import "sync"

// process wide port registry, filled while the API mounts its modules
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores the ports of the named module, replacing earlier ones
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	reg[name] = ports
}

// PortsAs returns the named module's ports as T; ok is false when missing or of another type
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, found := reg[name]
	mu.RUnlock()
	out, ok := v.(T)
	return out, found && ok
}

// Reset empties the registry (tests)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	reg = map[string]any{}
}
