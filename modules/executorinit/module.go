package executorinit

import (
	"context"
	"maps"

	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
)

// Name is the component name.
const Name = "executor_init"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the executor_init component.
type Config struct {
	// Interval holds update periods keyed by name, e.g.
	// executor_parameter_update_period.
	Interval map[string]int `config:"interval"`
}

// Component copies the configured intervals to every executor store.
type Component struct {
	cfg *Config
}

// New creates the component with default intervals.
func New() *Component {
	return &Component{cfg: &Config{Interval: map[string]int{}}}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

// OnExecutionInitStart installs the interval map.
func (c *Component) OnExecutionInitStart(_ context.Context, s *store.Executor) error {
	s.Interval = maps.Clone(c.cfg.Interval)
	if s.Interval == nil {
		s.Interval = map[string]int{}
	}
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New())
}
