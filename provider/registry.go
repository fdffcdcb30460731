package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is a thread-safe registry of named presets. Multi-tenant
// services register one preset per upstream provider and look them up by
// name at request time.
type Registry struct {
	mu          sync.RWMutex
	presets     map[string]Preset
	defaultName string
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register adds a named preset. The first registered preset becomes the
// default.
func (r *Registry) Register(name string, p Preset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presets[name] = p
	if r.defaultName == "" {
		r.defaultName = name
	}
}

// Get returns the preset registered under the given name.
func (r *Registry) Get(name string) (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.presets[name]
	return p, ok
}

// Default returns the default preset.
func (r *Registry) Default() (Preset, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName == "" {
		return Preset{}, false
	}
	p, ok := r.presets[r.defaultName]
	return p, ok
}

// SetDefault sets the default preset by name. The name must already be
// registered.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.presets[name]; !ok {
		return fmt.Errorf("provider: preset %q not registered", name)
	}
	r.defaultName = name
	return nil
}

// Names returns all registered preset names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
