package trainersteps

import (
	"context"

	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/parameterserver"
)

// Name is the component name.
const Name = "trainer_steps"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Component reports every trainer step to the parameter server.
type Component struct{}

func (Component) Name() string { return Name }

func (Component) Config() any { return nil }

func (Component) RequiredComponents() []string {
	return []string{parameterserver.Name}
}

// OnTrainingStep adds one to trainer_steps and records the server's count
// in the trainer metrics.
func (Component) OnTrainingStep(ctx context.Context, s *store.Trainer) error {
	if s.ParameterClient == nil {
		return nil
	}
	if err := s.ParameterClient.AddToParameters(ctx, store.Parameters{parameterserver.TrainerSteps: {1}}); err != nil {
		return err
	}
	got, err := s.ParameterClient.GetParameters(ctx, parameterserver.TrainerSteps)
	if err != nil {
		return err
	}
	if v := got[parameterserver.TrainerSteps]; len(v) > 0 {
		s.Metrics[parameterserver.TrainerSteps] = v[0]
	}
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(Component{})
}
