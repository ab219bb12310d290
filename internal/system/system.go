// Package system assembles a registry of components, applies configuration
// to their configs and builds the system's processes.
package system

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/vk/marlgrid/internal/builder"
	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/launcher"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnknownParameter is returned when no component config declares a
	// system parameter.
	ErrUnknownParameter = errors.New("parameter not declared by any component")

	// ErrAmbiguousParameter is returned when more than one component config
	// declares a system parameter.
	ErrAmbiguousParameter = errors.New("parameter declared by more than one component")

	// ErrNotConfigurable is returned when a component block targets a
	// component without a config.
	ErrNotConfigurable = errors.New("component has no config")
)

// System is a named, ordered set of components.
type System struct {
	name      string
	registry  *registry.Registry
	converter config.Converter

	runID              uuid.UUID
	numExecutors       int
	policy             store.Policy
	environmentFactory store.EnvironmentFactory
}

// Option configures a System.
type Option func(*System)

// WithConverter sets the converter used to apply configuration.
func WithConverter(c config.Converter) Option {
	return func(s *System) { s.converter = c }
}

// WithNumExecutors sets how many executors Build creates. The evaluator is
// always created in addition.
func WithNumExecutors(n int) Option {
	return func(s *System) { s.numExecutors = n }
}

// WithPolicy sets the policy handed to every executor.
func WithPolicy(p store.Policy) Option {
	return func(s *System) { s.policy = p }
}

// WithEnvironmentFactory sets the environment factory used by executors.
func WithEnvironmentFactory(f store.EnvironmentFactory) Option {
	return func(s *System) { s.environmentFactory = f }
}

// WithRunID fixes the run id instead of generating one.
func WithRunID(id uuid.UUID) Option {
	return func(s *System) { s.runID = id }
}

// New creates a system and registers the components of modules in order.
func New(ctx context.Context, name string, modules []registry.Module, opts ...Option) (*System, error) {
	s := &System{
		name:         name,
		registry:     registry.New(),
		numExecutors: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.registry.Register(ctx, modules...); err != nil {
		return nil, fmt.Errorf("failed to design system '%s': %w", name, err)
	}
	return s, nil
}

// Name returns the system name.
func (s *System) Name() string { return s.name }

// Registry returns the underlying registry.
func (s *System) Registry() *registry.Registry { return s.registry }

// Add adds a component. A component with the same name must not exist.
func (s *System) Add(c component.Component) error {
	return s.registry.Add(c)
}

// Update replaces the component with the same name.
func (s *System) Update(c component.Component) error {
	return s.registry.Update(c)
}

// Configure applies a system configuration. Parameters are applied first,
// each to the single component whose config declares a field of that name.
// Component blocks are applied afterwards and win over parameters.
func (s *System) Configure(ctx context.Context, cfg *config.System) error {
	if cfg == nil {
		return nil
	}
	if s.converter == nil {
		return errors.New("system has no config converter")
	}
	logger := ctxlog.FromContext(ctx)

	for _, name := range sortedNames(cfg.Parameters) {
		if err := s.applyParameter(ctx, name, cfg.Parameters[name]); err != nil {
			return err
		}
	}

	for _, name := range sortedNames(cfg.Components) {
		block := cfg.Components[name]
		c, ok := s.registry.Get(name)
		if !ok {
			return fmt.Errorf("%w: component block '%s' in system '%s'", registry.ErrComponentNotFound, name, s.name)
		}
		target := c.Config()
		if target == nil {
			if len(block.Attributes) == 0 {
				continue
			}
			return fmt.Errorf("%w: '%s'", ErrNotConfigurable, name)
		}
		if err := s.converter.DecodeAttributes(ctx, target, block.Attributes); err != nil {
			return fmt.Errorf("failed to configure component '%s': %w", name, err)
		}
		logger.Debug("Applied component block.", "component", name, "attributes", len(block.Attributes))
	}
	return nil
}

func (s *System) applyParameter(ctx context.Context, name string, v cty.Value) error {
	var owners []component.Component
	for _, c := range s.registry.Components() {
		if target := c.Config(); target != nil && s.converter.HasField(target, name) {
			owners = append(owners, c)
		}
	}
	switch len(owners) {
	case 0:
		return fmt.Errorf("%w: '%s'", ErrUnknownParameter, name)
	case 1:
	default:
		return fmt.Errorf("%w: '%s' is declared by %s", ErrAmbiguousParameter, name, strings.Join(component.Names(owners), ", "))
	}
	owner := owners[0]
	if err := s.converter.DecodeAttributes(ctx, owner.Config(), map[string]cty.Value{name: v}); err != nil {
		return fmt.Errorf("failed to apply parameter '%s' to component '%s': %w", name, owner.Name(), err)
	}
	ctxlog.FromContext(ctx).Debug("Applied system parameter.", "parameter", name, "component", owner.Name())
	return nil
}

// Build validates the registry and builds the system's processes.
func (s *System) Build(ctx context.Context) (*builder.Builder, *builder.Build, error) {
	if err := s.registry.Validate(ctx); err != nil {
		return nil, nil, err
	}
	bs := store.NewBuilder(s.runID, s.name)
	bs.NumExecutors = s.numExecutors
	bs.Policy = s.policy
	bs.EnvironmentFactory = s.environmentFactory

	b := builder.New(bs, s.registry.Components())
	built, err := b.Build(ctx)
	if err != nil {
		return nil, nil, err
	}
	return b, built, nil
}

// Launch builds the system and runs it until it stops.
func (s *System) Launch(ctx context.Context, opts launcher.Options) error {
	b, built, err := s.Build(ctx)
	if err != nil {
		return err
	}
	return b.Launch(ctx, built, opts)
}

// Close releases components that hold resources, such as network
// connections. All components are closed; the errors are joined.
func (s *System) Close() error {
	var errs []error
	for _, c := range s.registry.Components() {
		if closer, ok := c.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, fmt.Errorf("failed to close component '%s': %w", c.Name(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
