package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory opens an Engine.
type Factory func(Options) (Engine, error)

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: make(map[string]Factory)}

// Register makes an engine available under name. It panics if name is
// empty, f is nil or name is already registered; engines call it from init.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		panic("engine: Register with empty name or nil factory")
	}
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.factories[name]; dup {
		panic(fmt.Sprintf("engine: Register called twice for %q", name))
	}
	registry.factories[name] = f
}

// Open opens the engine registered under name.
func Open(name string, opts Options) (Engine, error) {
	registry.RLock()
	f, ok := registry.factories[name]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnavailable, name, Names())
	}
	return f(opts)
}

// Names returns the registered engine names in sorted order.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
