package parameterclient

import (
	"context"
	"errors"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/executorinit"
	"github.com/vk/marlgrid/modules/parameterserver"
)

// Name is the component name.
const Name = "parameter_client"

// UpdatePeriodKey is the executor interval that controls how often
// executors pull parameters.
const UpdatePeriodKey = "executor_parameter_update_period"

// ErrNoServer is returned when a client is requested before the parameter
// server exists.
var ErrNoServer = errors.New("parameter server has not been built")

// Module implements the registry.Module interface for this package.
type Module struct{}

// Config is the configuration of the parameter_client component.
type Config struct {
	// ParameterNames restricts which parameters processes pull. Empty pulls
	// everything.
	ParameterNames []string `config:"parameter_names"`
}

// Component connects executors and the trainer to the parameter server.
type Component struct {
	cfg *Config
}

// New creates the component.
func New() *Component {
	return &Component{cfg: &Config{}}
}

func (c *Component) Name() string { return Name }

func (c *Component) Config() any { return c.cfg }

func (c *Component) RequiredComponents() []string {
	return []string{executorinit.Name, parameterserver.Name}
}

// OnBuildingExecutorParameterClient installs the parameter server as the
// executor's client.
func (c *Component) OnBuildingExecutorParameterClient(_ context.Context, s *store.Builder) error {
	if s.ParameterServer == nil {
		return ErrNoServer
	}
	s.ExecutorParameterClient = s.ParameterServer
	return nil
}

// OnBuildingTrainerParameterClient installs the parameter server as the
// trainer's client.
func (c *Component) OnBuildingTrainerParameterClient(_ context.Context, s *store.Builder) error {
	if s.ParameterServer == nil {
		return ErrNoServer
	}
	s.TrainerParameterClient = s.ParameterServer
	return nil
}

// OnExecutionInitEnd pulls the initial parameters.
func (c *Component) OnExecutionInitEnd(ctx context.Context, s *store.Executor) error {
	if s.ParameterClient == nil {
		return nil
	}
	params, err := s.ParameterClient.GetParameters(ctx, c.cfg.ParameterNames...)
	if err != nil {
		return err
	}
	s.Parameters = params
	return nil
}

// OnExecutionUpdate pushes executor steps and pulls fresh parameters every
// executor_parameter_update_period steps.
func (c *Component) OnExecutionUpdate(ctx context.Context, s *store.Executor) error {
	if s.ParameterClient == nil {
		return nil
	}
	period := s.Interval[UpdatePeriodKey]
	if period <= 0 {
		period = 1
	}
	if s.Steps%period != 0 {
		return nil
	}

	if !s.IsEvaluator {
		delta := store.Parameters{parameterserver.ExecutorSteps: {float64(period)}}
		if err := s.ParameterClient.AddToParameters(ctx, delta); err != nil {
			return err
		}
	}
	params, err := s.ParameterClient.GetParameters(ctx, c.cfg.ParameterNames...)
	if err != nil {
		return err
	}
	s.Parameters = params
	ctxlog.FromContext(ctx).Debug("Executor parameters updated.", "executor", s.ExecutorID, "steps", s.Steps)
	return nil
}

// OnTrainingInitEnd pulls the trainer's initial parameters.
func (c *Component) OnTrainingInitEnd(ctx context.Context, s *store.Trainer) error {
	if s.ParameterClient == nil {
		return nil
	}
	params, err := s.ParameterClient.GetParameters(ctx, c.cfg.ParameterNames...)
	if err != nil {
		return err
	}
	s.Parameters = params
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(New())
}
