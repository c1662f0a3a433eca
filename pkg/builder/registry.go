package builder

import (
	"fmt"
	"sort"
	"sync"
)

// Backend is a toolkit adapter: it names itself and creates widgets for
// fields. Interactive backends additionally run an event loop; that
// surface is backend-specific and not part of the shared contract.
type Backend interface {
	Name() string
	WidgetFactory
}

// Registry stores backends by name. Selection is an explicit value
// threaded through the caller, never process-global state; the registry
// only provides discovery and duplicate protection.
type Registry struct {
	mu       sync.RWMutex
	backends map[string]Backend
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{backends: make(map[string]Backend)}
}

// Register adds a backend by its Name(). Duplicate names return an
// error.
func (r *Registry) Register(backend Backend) error {
	if backend == nil {
		return fmt.Errorf("builder: backend is required")
	}
	name := backend.Name()
	if name == "" {
		return fmt.Errorf("builder: backend name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.backends[name]; exists {
		return fmt.Errorf("builder: backend %q already registered", name)
	}
	r.backends[name] = backend
	return nil
}

// MustRegister panics on registration failure. Useful for init-time
// wiring.
func (r *Registry) MustRegister(backend Backend) {
	if err := r.Register(backend); err != nil {
		panic(err)
	}
}

// Get retrieves a backend by name.
func (r *Registry) Get(name string) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	backend, ok := r.backends[name]
	if !ok {
		return nil, fmt.Errorf("builder: backend %q not found", name)
	}
	return backend, nil
}

// List returns a sorted list of backend names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a backend is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.backends[name]
	return ok
}
