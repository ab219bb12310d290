package parameterserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
)

// Name is the component name.
const Name = "parameter_server"

// Counters created at init.
const (
	TrainerSteps  = "trainer_steps"
	ExecutorSteps = "executor_steps"
)

var (
	// ErrUnknownParameter is returned for requests naming a parameter the
	// server does not hold.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrShapeMismatch is returned when a write does not match the stored
	// vector length.
	ErrShapeMismatch = errors.New("parameter shape mismatch")
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the parameter_server component.
type Config struct {
	NonBlockingSleepSeconds float64 `config:"non_blocking_sleep_seconds"`

	// MaxTrainerSteps terminates the run loop once trainer_steps reaches
	// it. Zero never terminates.
	MaxTrainerSteps int `config:"max_trainer_steps"`

	// InitialParameters are created alongside the step counters.
	InitialParameters map[string][]float64 `config:"initial_parameters"`
}

// Component is the default parameter server behavior: a plain in-memory
// parameter map.
type Component struct {
	cfg *Config
}

// New creates the component with defaults.
func New() *Component {
	return &Component{cfg: &Config{NonBlockingSleepSeconds: 1}}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

// OnParameterServerInit creates the parameters and sets the loop sleep.
func (c *Component) OnParameterServerInit(ctx context.Context, s *store.ParameterServer) error {
	if c.cfg.NonBlockingSleepSeconds < 0 {
		return fmt.Errorf("non_blocking_sleep_seconds must not be negative, got %v", c.cfg.NonBlockingSleepSeconds)
	}
	s.NonBlockingSleep = time.Duration(c.cfg.NonBlockingSleepSeconds * float64(time.Second))

	if s.Parameters == nil {
		s.Parameters = store.Parameters{}
	}
	s.Parameters[TrainerSteps] = []float64{0}
	s.Parameters[ExecutorSteps] = []float64{0}
	for name, v := range c.cfg.InitialParameters {
		s.Parameters[name] = append([]float64(nil), v...)
	}
	ctxlog.FromContext(ctx).Debug("Parameters created.", "names", s.Parameters.Names())
	return nil
}

// OnParameterServerGetParameters returns the requested parameters, or all
// of them when none are named.
func (c *Component) OnParameterServerGetParameters(_ context.Context, s *store.ParameterServer) error {
	names := s.ParamNames
	if len(names) == 0 {
		names = s.Parameters.Names()
	}
	result := make(store.Parameters, len(names))
	for _, name := range names {
		v, ok := s.Parameters[name]
		if !ok {
			return fmt.Errorf("%w: '%s'", ErrUnknownParameter, name)
		}
		result[name] = v
	}
	s.GetResult = result
	return nil
}

// OnParameterServerSetParameters overwrites existing parameters.
func (c *Component) OnParameterServerSetParameters(_ context.Context, s *store.ParameterServer) error {
	if err := checkWrite(s.Parameters, s.SetParams); err != nil {
		return err
	}
	for name, v := range s.SetParams {
		s.Parameters[name] = append([]float64(nil), v...)
	}
	return nil
}

// OnParameterServerAddToParameters adds element-wise to existing
// parameters.
func (c *Component) OnParameterServerAddToParameters(_ context.Context, s *store.ParameterServer) error {
	if err := checkWrite(s.Parameters, s.AddToParams); err != nil {
		return err
	}
	for name, delta := range s.AddToParams {
		current := s.Parameters[name]
		for i := range current {
			current[i] += delta[i]
		}
	}
	return nil
}

// OnParameterServerRunLoopTermination stops the loop at max_trainer_steps.
func (c *Component) OnParameterServerRunLoopTermination(ctx context.Context, s *store.ParameterServer) error {
	if c.cfg.MaxTrainerSteps <= 0 {
		return nil
	}
	steps := s.Parameters[TrainerSteps]
	if len(steps) > 0 && steps[0] >= float64(c.cfg.MaxTrainerSteps) {
		ctxlog.FromContext(ctx).Info("Max trainer steps reached, terminating.", "trainer_steps", steps[0])
		s.Terminate = true
	}
	return nil
}

// checkWrite validates every entry of req before anything is written so a
// bad request leaves the parameters untouched.
func checkWrite(current, req store.Parameters) error {
	for _, name := range req.Names() {
		v, ok := current[name]
		if !ok {
			return fmt.Errorf("%w: '%s'", ErrUnknownParameter, name)
		}
		if len(v) != len(req[name]) {
			return fmt.Errorf("%w: '%s' has length %d, got %d", ErrShapeMismatch, name, len(v), len(req[name]))
		}
	}
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New())
}
