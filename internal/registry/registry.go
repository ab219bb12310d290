package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
)

// Module is the interface that all built-in and user modules implement to
// add their components to a registry.
type Module interface {
	Register(r *Registry) error
}

// ModuleFunc adapts a function to the Module interface.
type ModuleFunc func(r *Registry) error

// Register calls f.
func (f ModuleFunc) Register(r *Registry) error { return f(r) }

// Registry holds the components of a single system in registration order.
type Registry struct {
	mu         sync.RWMutex
	order      []string
	components map[string]component.Component
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		components: make(map[string]component.Component),
	}
}

// Add registers a component under its name. It fails with a *ConflictError
// if the name is taken; the registry is left unchanged in that case.
func (r *Registry) Add(c component.Component) error {
	name, err := nameOf(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, exists := r.components[name]; exists {
		return &ConflictError{
			Name:     name,
			Existing: fmt.Sprintf("%T", existing),
			Incoming: fmt.Sprintf("%T", c),
		}
	}
	r.components[name] = c
	r.order = append(r.order, name)
	return nil
}

// Update replaces the registered component that has the same name as c.
// The replacement keeps the original position.
func (r *Registry) Update(c component.Component) error {
	name, err := nameOf(c)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.components[name]; !exists {
		return fmt.Errorf("cannot update %q: %w", name, ErrComponentNotFound)
	}
	r.components[name] = c
	return nil
}

// Register runs each module's Register method in order and stops at the
// first error.
func (r *Registry) Register(ctx context.Context, modules ...Module) error {
	logger := ctxlog.FromContext(ctx)
	for _, m := range modules {
		if err := m.Register(r); err != nil {
			return fmt.Errorf("module %T: %w", m, err)
		}
	}
	logger.Debug("Modules registered.", "modules", len(modules), "components", r.Len())
	return nil
}

// Get returns the component registered under name.
func (r *Registry) Get(name string) (component.Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Components returns the registered components in registration order.
func (r *Registry) Components() []component.Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]component.Component, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.components[name])
	}
	return out
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

func nameOf(c component.Component) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: nil component", ErrInvalidComponent)
	}
	name := c.Name()
	if name == "" {
		return "", fmt.Errorf("%w: %T has an empty name", ErrInvalidComponent, c)
	}
	return name, nil
}
