package logger

import (
	"context"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
)

// Name is the component name.
const Name = "logger"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the logger component.
type Config struct {
	// EveryNSteps logs trainer and executor progress every n steps.
	EveryNSteps int `config:"log_every_n_steps"`
}

// Component logs the run's progress through the context logger.
type Component struct {
	cfg *Config
}

// New creates the component with defaults.
func New() *Component {
	return &Component{cfg: &Config{EveryNSteps: 100}}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

func (c *Component) due(steps int) bool {
	n := c.cfg.EveryNSteps
	return n > 0 && steps > 0 && steps%n == 0
}

func (c *Component) OnBuildingInitEnd(ctx context.Context, s *store.Builder) error {
	ctxlog.FromContext(ctx).Info("Building system.",
		"system", s.SystemName,
		"run_id", s.RunID,
		"components", s.ComponentNames,
		"executors", s.NumExecutors,
	)
	return nil
}

func (c *Component) OnBuildingLaunch(ctx context.Context, s *store.Builder) error {
	ctxlog.FromContext(ctx).Info("Launching system.", "system", s.SystemName)
	return nil
}

func (c *Component) OnParameterServerInitEnd(ctx context.Context, s *store.ParameterServer) error {
	ctxlog.FromContext(ctx).Info("Parameter server ready.", "parameters", s.Parameters.Names(), "sleep", s.NonBlockingSleep)
	return nil
}

func (c *Component) OnParameterServerRunLoopEnd(ctx context.Context, s *store.ParameterServer) error {
	ctxlog.FromContext(ctx).Debug("Parameter server loop.", "terminate", s.Terminate)
	return nil
}

func (c *Component) OnExecutionUpdateEnd(ctx context.Context, s *store.Executor) error {
	if c.due(s.Steps) {
		ctxlog.FromContext(ctx).Info("Executor progress.", "executor", s.ExecutorID, "steps", s.Steps, "evaluator", s.IsEvaluator)
	}
	return nil
}

func (c *Component) OnTrainingStepEnd(ctx context.Context, s *store.Trainer) error {
	// The step counter advances after step_end.
	if c.due(s.Steps + 1) {
		ctxlog.FromContext(ctx).Info("Trainer progress.", "steps", s.Steps+1, "metrics", s.Metrics)
	}
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New())
}
