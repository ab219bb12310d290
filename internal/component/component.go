package component

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/marlgrid/internal/ctxlog"
)

// Component is the interface every system component implements.
type Component interface {
	// Name returns the unique key of the component within a system.
	Name() string

	// Config returns a pointer to the component's config struct, or nil when
	// the component is not configurable. Fields are addressed by their
	// `config:"name"` tag.
	Config() any
}

// Requirer is implemented by components that only work when other named
// components are present in the same system.
type Requirer interface {
	RequiredComponents() []string
}

// Hook names a lifecycle extension point.
type Hook string

// HookError reports a failure inside a single component's hook.
type HookError struct {
	Hook      Hook
	Component string
	Err       error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %s of component %q failed: %v", e.Hook, e.Component, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Dispatch calls fn for every component implementing H, in order. It stops
// at the first error.
func Dispatch[H any](ctx context.Context, components []Component, hook Hook, fn func(H) error) error {
	logger := ctxlog.FromContext(ctx)
	called := 0
	for _, c := range components {
		h, ok := c.(H)
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		called++
		if err := fn(h); err != nil {
			var hookErr *HookError
			if errors.As(err, &hookErr) {
				return err
			}
			return &HookError{Hook: hook, Component: c.Name(), Err: err}
		}
	}
	logger.Debug("Hook dispatched.", "hook", hook, "components_called", called)
	return nil
}

// Names returns the names of components, preserving order.
func Names(components []Component) []string {
	names := make([]string, len(components))
	for i, c := range components {
		names[i] = c.Name()
	}
	return names
}

// Sequence runs steps in order and stops at the first error.
func Sequence(steps ...func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
