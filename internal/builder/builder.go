package builder

import (
	"context"
	"fmt"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/executor"
	"github.com/vk/marlgrid/internal/launcher"
	"github.com/vk/marlgrid/internal/paramserver"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/internal/trainer"
)

// EvaluatorID is the executor id of the evaluator.
const EvaluatorID = "evaluator"

// TrainerID is the id of the single trainer.
const TrainerID = "trainer"

// Build holds the processes produced by Builder.Build.
type Build struct {
	ParameterServer *paramserver.Server
	Executors       []*executor.Executor
	Evaluator       *executor.Executor
	Trainer         *trainer.Trainer
}

// Processes returns the launchable view of b. The evaluator runs alongside
// the executors.
func (b *Build) Processes() launcher.Processes {
	execs := append([]*executor.Executor(nil), b.Executors...)
	if b.Evaluator != nil {
		execs = append(execs, b.Evaluator)
	}
	return launcher.Processes{
		ParameterServer: b.ParameterServer,
		Executors:       execs,
		Trainer:         b.Trainer,
	}
}

// Builder runs the building hooks of one system.
type Builder struct {
	components []component.Component
	store      *store.Builder
}

// New creates a builder over components. The store must already carry the
// system name and executor count.
func New(s *store.Builder, components []component.Component) *Builder {
	s.ComponentNames = component.Names(components)
	return &Builder{components: components, store: s}
}

// Store returns the builder store.
func (b *Builder) Store() *store.Builder {
	return b.store
}

func (b *Builder) dispatchers(ctx context.Context, hooks ...func(ctx context.Context, s *store.Builder) error) error {
	steps := make([]func() error, len(hooks))
	for i, h := range hooks {
		steps[i] = func() error { return h(ctx, b.store) }
	}
	return component.Sequence(steps...)
}

// Build runs every building phase and returns the processes.
func (b *Builder) Build(ctx context.Context) (*Build, error) {
	ctx = ctxlog.With(ctx, "process", store.ScopeBuilder, "system", b.store.SystemName)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building system.", "components", b.store.ComponentNames)

	if err := b.dispatchers(ctx, b.initStart, b.initMain, b.initEnd); err != nil {
		return nil, fmt.Errorf("building init failed: %w", err)
	}

	out := &Build{}
	var err error
	if out.ParameterServer, err = b.buildParameterServer(ctx); err != nil {
		return nil, fmt.Errorf("failed to build parameter server: %w", err)
	}

	numExecutors := b.store.NumExecutors
	if numExecutors < 0 {
		numExecutors = 0
	}
	for i := range numExecutors {
		e, err := b.buildExecutor(ctx, fmt.Sprintf("executor_%d", i), false)
		if err != nil {
			return nil, err
		}
		out.Executors = append(out.Executors, e)
	}
	if out.Evaluator, err = b.buildExecutor(ctx, EvaluatorID, true); err != nil {
		return nil, err
	}

	if out.Trainer, err = b.buildTrainer(ctx); err != nil {
		return nil, fmt.Errorf("failed to build trainer: %w", err)
	}

	logger.Info("System built.", "executors", len(out.Executors))
	return out, nil
}

func (b *Builder) buildParameterServer(ctx context.Context) (*paramserver.Server, error) {
	if err := b.dispatchers(ctx, b.parameterServerStart); err != nil {
		return nil, err
	}
	srv, err := paramserver.New(ctx, store.NewParameterServer(b.store.RunID), b.components)
	if err != nil {
		return nil, err
	}
	b.store.ParameterServer = srv
	if err := b.dispatchers(ctx, b.parameterServer, b.parameterServerEnd); err != nil {
		return nil, err
	}
	return srv, nil
}

func (b *Builder) buildExecutor(ctx context.Context, id string, evaluator bool) (*executor.Executor, error) {
	b.store.ExecutorID = id
	b.store.IsEvaluator = evaluator
	b.store.ExecutorParameterClient = nil

	if err := b.dispatchers(ctx, b.executorStart, b.executorParameterClient); err != nil {
		return nil, fmt.Errorf("failed to build executor '%s': %w", id, err)
	}

	es := store.NewExecutor(b.store.RunID, id, evaluator)
	es.ParameterClient = b.store.ExecutorParameterClient
	es.Policy = b.store.Policy
	e, err := executor.New(ctx, es, b.components)
	if err != nil {
		return nil, err
	}

	if err := b.dispatchers(ctx, b.executor, b.executorEnd); err != nil {
		return nil, fmt.Errorf("failed to build executor '%s': %w", id, err)
	}
	return e, nil
}

func (b *Builder) buildTrainer(ctx context.Context) (*trainer.Trainer, error) {
	b.store.TrainerID = TrainerID
	b.store.TrainerParameterClient = nil

	if err := b.dispatchers(ctx, b.trainerStart, b.trainerParameterClient); err != nil {
		return nil, err
	}

	ts := store.NewTrainer(b.store.RunID, TrainerID)
	ts.ParameterClient = b.store.TrainerParameterClient
	t, err := trainer.New(ctx, ts, b.components)
	if err != nil {
		return nil, err
	}

	if err := b.dispatchers(ctx, b.trainer, b.trainerEnd); err != nil {
		return nil, err
	}
	return t, nil
}

// Launch runs the launch hooks and then the built processes until they
// stop.
func (b *Builder) Launch(ctx context.Context, built *Build, opts launcher.Options) error {
	ctx = ctxlog.With(ctx, "system", b.store.SystemName)
	if err := b.dispatchers(ctx, b.launchStart, b.launch, b.launchEnd); err != nil {
		return fmt.Errorf("launch hooks failed: %w", err)
	}
	if opts.EnvironmentFactory == nil {
		opts.EnvironmentFactory = b.store.EnvironmentFactory
	}
	return launcher.Run(ctx, built.Processes(), opts)
}
