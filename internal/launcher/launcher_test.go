package launcher

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/executor"
	"github.com/vk/marlgrid/internal/paramserver"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/internal/trainer"
)

type oneStepEnv struct{ steps *atomic.Int64 }

func (e oneStepEnv) Reset(context.Context) (store.Timestep, error) {
	return store.Timestep{Observations: map[string]store.Observation{"agent_0": {}}}, nil
}

func (e oneStepEnv) Step(context.Context, map[string]int) (store.Timestep, error) {
	e.steps.Add(1)
	// Give the trainer a chance to run between episodes.
	time.Sleep(time.Millisecond)
	return store.Timestep{Last: true}, nil
}

// slowStep keeps the trainer busy until executors have stepped.
type slowStep struct{ steps *atomic.Int64 }

func (slowStep) Name() string { return "slow_step" }
func (slowStep) Config() any  { return nil }

func (c slowStep) OnTrainingStep(ctx context.Context, _ *store.Trainer) error {
	deadline := time.Now().Add(2 * time.Second)
	for c.steps.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	return nil
}

type failingStep struct{}

func (failingStep) Name() string { return "failing_step" }
func (failingStep) Config() any  { return nil }

func (failingStep) OnTrainingStep(context.Context, *store.Trainer) error {
	return errors.New("boom")
}

func processes(t *testing.T, numExecutors int, components ...component.Component) Processes {
	t.Helper()
	ctx := context.Background()
	ps, err := paramserver.New(ctx, store.NewParameterServer(uuid.Nil), nil)
	require.NoError(t, err)
	tr, err := trainer.New(ctx, store.NewTrainer(uuid.Nil, "trainer"), components)
	require.NoError(t, err)
	p := Processes{ParameterServer: ps, Trainer: tr}
	for range numExecutors {
		e, err := executor.New(ctx, store.NewExecutor(uuid.Nil, "executor", false), nil)
		require.NoError(t, err)
		p.Executors = append(p.Executors, e)
	}
	return p
}

func TestRun_StopsWhenTrainerFinishes(t *testing.T) {
	// Arrange
	steps := &atomic.Int64{}
	p := processes(t, 2, slowStep{steps: steps})
	opts := Options{
		MaxTrainerSteps: 2,
		EnvironmentFactory: func(bool) (store.Environment, error) {
			return oneStepEnv{steps: steps}, nil
		},
	}

	// Act
	err := Run(context.Background(), p, opts)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, p.Trainer.Store().Steps)
	assert.Positive(t, steps.Load())
}

func TestRun_WithoutEnvironmentFactory(t *testing.T) {
	p := processes(t, 1)

	err := Run(context.Background(), p, Options{MaxTrainerSteps: 1})

	require.NoError(t, err)
	assert.Equal(t, 0, p.Executors[0].Store().Steps)
}

func TestRun_TrainerFailureStopsEverything(t *testing.T) {
	p := processes(t, 0, failingStep{})

	err := Run(context.Background(), p, Options{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestRun_MissingProcesses(t *testing.T) {
	err := Run(context.Background(), Processes{}, Options{})

	require.Error(t, err)
}
