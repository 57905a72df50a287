// Package registry resolves strategy identifiers to strategy instances.
// Built-in strategies are registered by name; anything else is looked up as
// a Go plugin shared object in the configured plugin directory, the platform
// analog of loading an externally supplied class file.
package registry

import (
	"errors"
	"fmt"
	"path/filepath"
	"plugin"
	"sort"
	"sync"
)

// Global error declarations.
var (
	ErrUnknownStrategy = errors.New("strategy identifier does not resolve")
	ErrBadPlugin       = errors.New("strategy plugin artifact is unusable")
)

// Factory constructs one fresh strategy instance per simulation run. The
// boxed value is deliberately untyped: the engine performs the capability
// check against its Strategy interface once per run, so a factory returning
// something unsuitable fails the run before any day is processed.
type Factory func() any

type Registry struct {
	mu        sync.RWMutex
	builtins  map[string]Factory
	pluginDir string
}

// New creates a registry. pluginDir may be empty, which disables shared
// object loading and limits resolution to registered built-ins.
func New(pluginDir string) *Registry {
	return &Registry{
		builtins:  make(map[string]Factory),
		pluginDir: pluginDir,
	}
}

func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtins[name] = factory
}

// Names lists the registered built-in strategies, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builtins))
	for name := range r.builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a fresh boxed instance for the identifier. Resolution
// either succeeds or fails; there is no partially loaded state, and a
// failure aborts the run before it starts.
func (r *Registry) Resolve(name string) (any, error) {
	r.mu.RLock()
	factory, ok := r.builtins[name]
	r.mu.RUnlock()
	if ok {
		return factory(), nil
	}

	if r.pluginDir == "" {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}
	return r.loadPlugin(name)
}

// loadPlugin opens <pluginDir>/<name>.so and calls its NewStrategy symbol,
// which must have type func() any.
func (r *Registry) loadPlugin(name string) (any, error) {
	path := filepath.Join(r.pluginDir, name+".so")
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %v", name, ErrUnknownStrategy, err)
	}

	sym, err := p.Lookup("NewStrategy")
	if err != nil {
		return nil, fmt.Errorf("%q: %w: %v", name, ErrBadPlugin, err)
	}
	factory, ok := sym.(func() any)
	if !ok {
		return nil, fmt.Errorf("%q: %w: NewStrategy has type %T, want func() any", name, ErrBadPlugin, sym)
	}
	return factory(), nil
}
