// Package monitor publishes lifecycle events to a socket.io server so a
// dashboard can follow a run live.
package monitor

import (
	"context"
	"sync"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
)

// Name is the component name.
const Name = "monitor"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the monitor component.
type Config struct {
	// URL of the socket.io server. Empty disables the monitor.
	URL                string `config:"url"`
	Namespace          string `config:"namespace"`
	Event              string `config:"event"`
	Timeout            string `config:"timeout"`
	InsecureSkipVerify bool   `config:"insecure_skip_verify"`
}

// DialFunc opens an emitter for cfg.
type DialFunc func(ctx context.Context, cfg *Config) (Emitter, error)

// Component emits one event per observed hook.
type Component struct {
	cfg  *Config
	dial DialFunc

	mu             sync.Mutex
	emitter        Emitter
	system         string
	componentCount int
}

// New creates the component. A nil dial uses Dial.
func New(dial DialFunc) *Component {
	if dial == nil {
		dial = Dial
	}
	return &Component{
		cfg: &Config{
			Namespace: "/",
			Event:     "hook",
			Timeout:   "10s",
		},
		dial: dial,
	}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

// OnBuildingInitStart connects to the monitor server.
func (c *Component) OnBuildingInitStart(ctx context.Context, s *store.Builder) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.system = s.SystemName
	c.componentCount = len(s.ComponentNames)
	if c.cfg.URL == "" || c.emitter != nil {
		return nil
	}
	emitter, err := c.dial(ctx, c.cfg)
	if err != nil {
		return err
	}
	c.emitter = emitter
	return nil
}

func (c *Component) OnBuildingInitEnd(ctx context.Context, s *store.Builder) error {
	return c.emit(ctx, s.Scope, component.HookBuildingInitEnd, map[string]any{"run_id": s.RunID.String()})
}

func (c *Component) OnBuildingLaunch(ctx context.Context, s *store.Builder) error {
	return c.emit(ctx, s.Scope, component.HookBuildingLaunch, map[string]any{"executors": s.NumExecutors})
}

func (c *Component) OnParameterServerInitEnd(ctx context.Context, s *store.ParameterServer) error {
	return c.emit(ctx, s.Scope, component.HookParameterServerInitEnd, map[string]any{"parameters": s.Parameters.Names()})
}

func (c *Component) OnParameterServerRunLoopEnd(ctx context.Context, s *store.ParameterServer) error {
	return c.emit(ctx, s.Scope, component.HookParameterServerRunLoopEnd, map[string]any{"terminate": s.Terminate})
}

func (c *Component) OnExecutionObserveEnd(ctx context.Context, s *store.Executor) error {
	if !s.Last {
		return nil
	}
	return c.emit(ctx, s.Scope, component.HookExecutionObserveEnd, map[string]any{
		"executor": s.ExecutorID,
		"steps":    s.Steps,
		"rewards":  s.Rewards,
	})
}

func (c *Component) OnTrainingStepEnd(ctx context.Context, s *store.Trainer) error {
	return c.emit(ctx, s.Scope, component.HookTrainingStepEnd, map[string]any{
		"steps":   s.Steps,
		"metrics": s.Metrics,
	})
}

// emit never fails the run: a lost monitor event is logged and dropped.
func (c *Component) emit(ctx context.Context, scope store.Scope, hook component.Hook, extra map[string]any) error {
	c.mu.Lock()
	emitter := c.emitter
	payload := map[string]any{
		"system":          c.system,
		"scope":           string(scope),
		"hook":            string(hook),
		"component_count": c.componentCount,
	}
	c.mu.Unlock()

	if emitter == nil {
		return nil
	}
	for k, v := range extra {
		payload[k] = v
	}
	if err := emitter.Emit(c.cfg.Event, payload); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to emit monitor event.", "hook", hook, "error", err)
	}
	return nil
}

// Close disconnects the emitter.
func (c *Component) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.emitter == nil {
		return nil
	}
	err := c.emitter.Close()
	c.emitter = nil
	return err
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New(nil))
}
