package schema

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds immutable StructType descriptions keyed by type name.
// Types are registered during program initialization and only read
// afterwards; the mutex exists so init-order across packages is not a
// correctness concern.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*StructType
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*StructType)}
}

// Register adds a struct type to the registry. It panics on a duplicate or
// unnamed type: both are programming errors, not runtime conditions.
func (r *Registry) Register(st *StructType) {
	if st.Name == "" {
		panic("schema: cannot register unnamed struct type")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[st.Name]; ok {
		panic(fmt.Sprintf("schema: struct type %q already registered", st.Name))
	}
	r.types[st.Name] = st
}

// Lookup returns the struct type registered under name.
func (r *Registry) Lookup(name string) (*StructType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	st, ok := r.types[name]
	return st, ok
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the process-wide registry used by MustRegister.
var DefaultRegistry = NewRegistry()

// MustRegister registers st with the default registry and returns it, so a
// package can declare its schema as a var initializer.
func MustRegister(st *StructType) *StructType {
	DefaultRegistry.Register(st)
	return st
}
