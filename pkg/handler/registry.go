package handler

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores descriptors by handler name, providing discovery and
// duplication safeguards for wiring code and declaration files.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]*Descriptor
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		descriptors: make(map[string]*Descriptor),
	}
}

// Register adds a descriptor by its Name(). Duplicate names return an error.
func (r *Registry) Register(d *Descriptor) error {
	if d == nil {
		return fmt.Errorf("handler: descriptor is required")
	}
	name := d.Name()
	if name == "" {
		return fmt.Errorf("handler: descriptor name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[name]; exists {
		return fmt.Errorf("handler: descriptor %q already registered", name)
	}

	r.descriptors[name] = d
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(d *Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Define creates a descriptor, registers it, and returns it. The parent, if
// named, must already be registered.
func (r *Registry) Define(name, parent string, opts ...Option) (*Descriptor, error) {
	if parent != "" {
		parentDesc, err := r.Get(parent)
		if err != nil {
			return nil, fmt.Errorf("handler: parent of %q: %w", name, err)
		}
		opts = append([]Option{WithParent(parentDesc)}, opts...)
	}
	d := New(name, opts...)
	if err := r.Register(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Get retrieves a descriptor by name.
func (r *Registry) Get(name string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("handler: descriptor %q not found", name)
	}
	return d, nil
}

// MustGet panics if the descriptor is missing.
func (r *Registry) MustGet(name string) *Descriptor {
	d, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return d
}

// List returns a sorted list of registered handler names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a descriptor is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.descriptors[name]
	return ok
}
