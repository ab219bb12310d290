// Package executor implements the executor process: it steps environments
// with actions chosen through the select_action hooks and keeps its
// parameters in sync through the update hooks.
package executor

import (
	"context"
	"fmt"
	"maps"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/store"
)

// Executor is one executor (or evaluator) process.
type Executor struct {
	components []component.Component
	store      *store.Executor
}

// EpisodeResult summarises a finished episode.
type EpisodeResult struct {
	Steps   int
	Returns map[string]float64
}

// New creates an executor, installs its SelectAction entry point on the
// store and runs the init hooks.
func New(ctx context.Context, s *store.Executor, components []component.Component) (*Executor, error) {
	e := &Executor{components: components, store: s}
	s.SelectAction = e.SelectAction
	ctx = e.logContext(ctx)

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionInitStart, func(h component.ExecutionInitStartHook) error {
				return h.OnExecutionInitStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionInit, func(h component.ExecutionInitHook) error {
				return h.OnExecutionInit(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionInitEnd, func(h component.ExecutionInitEndHook) error {
				return h.OnExecutionInitEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise executor '%s': %w", s.ExecutorID, err)
	}
	return e, nil
}

// Store returns the executor's store.
func (e *Executor) Store() *store.Executor {
	return e.store
}

// ID returns the executor id.
func (e *Executor) ID() string {
	return e.store.ExecutorID
}

func (e *Executor) logContext(ctx context.Context) context.Context {
	return ctxlog.With(ctx, "process", store.ScopeExecutor, "executor", e.store.ExecutorID)
}

func (e *Executor) setTimestep(ts store.Timestep) {
	e.store.Observations = ts.Observations
	e.store.Rewards = ts.Rewards
	e.store.Last = ts.Last
}

// ObserveFirst records the first timestep of an episode.
func (e *Executor) ObserveFirst(ctx context.Context, ts store.Timestep) error {
	s := e.store
	e.setTimestep(ts)
	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserveFirstStart, func(h component.ExecutionObserveFirstStartHook) error {
				return h.OnExecutionObserveFirstStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserveFirst, func(h component.ExecutionObserveFirstHook) error {
				return h.OnExecutionObserveFirst(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserveFirstEnd, func(h component.ExecutionObserveFirstEndHook) error {
				return h.OnExecutionObserveFirstEnd(ctx, s)
			})
		},
	)
}

// Observe records the timestep that followed actions.
func (e *Executor) Observe(ctx context.Context, actions map[string]int, ts store.Timestep) error {
	s := e.store
	s.ActionsInfo = actions
	e.setTimestep(ts)
	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserveStart, func(h component.ExecutionObserveStartHook) error {
				return h.OnExecutionObserveStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserve, func(h component.ExecutionObserveHook) error {
				return h.OnExecutionObserve(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionObserveEnd, func(h component.ExecutionObserveEndHook) error {
				return h.OnExecutionObserveEnd(ctx, s)
			})
		},
	)
}

// SelectActions chooses actions for every agent in observations.
func (e *Executor) SelectActions(ctx context.Context, observations map[string]store.Observation) (map[string]int, error) {
	s := e.store
	s.Observations = observations
	s.ActionsInfo = map[string]int{}
	s.PoliciesInfo = map[string]map[string]float64{}

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActionsStart, func(h component.ExecutionSelectActionsStartHook) error {
				return h.OnExecutionSelectActionsStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActions, func(h component.ExecutionSelectActionsHook) error {
				return h.OnExecutionSelectActions(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActionsEnd, func(h component.ExecutionSelectActionsEndHook) error {
				return h.OnExecutionSelectActionsEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return nil, err
	}
	return maps.Clone(s.ActionsInfo), nil
}

// SelectAction chooses an action for a single agent.
func (e *Executor) SelectAction(ctx context.Context, agent string, obs store.Observation) (int, map[string]float64, error) {
	s := e.store
	s.Agent = agent
	s.Observation = obs
	s.ActionInfo = 0
	s.PolicyInfo = nil

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActionStart, func(h component.ExecutionSelectActionStartHook) error {
				return h.OnExecutionSelectActionStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActionCompute, func(h component.ExecutionSelectActionComputeHook) error {
				return h.OnExecutionSelectActionCompute(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionSelectActionEnd, func(h component.ExecutionSelectActionEndHook) error {
				return h.OnExecutionSelectActionEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return 0, nil, err
	}
	return s.ActionInfo, s.PolicyInfo, nil
}

// UpdateParameters runs the update hooks, which typically pull fresh
// parameters from the parameter server.
func (e *Executor) UpdateParameters(ctx context.Context) error {
	s := e.store
	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionUpdateStart, func(h component.ExecutionUpdateStartHook) error {
				return h.OnExecutionUpdateStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionUpdate, func(h component.ExecutionUpdateHook) error {
				return h.OnExecutionUpdate(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, e.components, component.HookExecutionUpdateEnd, func(h component.ExecutionUpdateEndHook) error {
				return h.OnExecutionUpdateEnd(ctx, s)
			})
		},
	)
}

// RunEpisode plays one episode in env. maxSteps bounds the episode length
// when positive.
func (e *Executor) RunEpisode(ctx context.Context, env store.Environment, maxSteps int) (*EpisodeResult, error) {
	ctx = e.logContext(ctx)
	logger := ctxlog.FromContext(ctx)

	ts, err := env.Reset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reset environment: %w", err)
	}
	if err := e.ObserveFirst(ctx, ts); err != nil {
		return nil, err
	}

	result := &EpisodeResult{Returns: map[string]float64{}}
	for !ts.Last {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if maxSteps > 0 && result.Steps >= maxSteps {
			break
		}
		actions, err := e.SelectActions(ctx, ts.Observations)
		if err != nil {
			return nil, err
		}
		ts, err = env.Step(ctx, actions)
		if err != nil {
			return nil, fmt.Errorf("failed to step environment: %w", err)
		}
		if err := e.Observe(ctx, actions, ts); err != nil {
			return nil, err
		}
		for agent, r := range ts.Rewards {
			result.Returns[agent] += r
		}
		result.Steps++
		e.store.Steps++
		if err := e.UpdateParameters(ctx); err != nil {
			return nil, err
		}
	}

	logger.Debug("Episode finished.", "steps", result.Steps, "returns", result.Returns)
	return result, nil
}

// Run plays episodes until ctx is done. newEnv is called once.
func (e *Executor) Run(ctx context.Context, newEnv store.EnvironmentFactory, maxEpisodeSteps int) error {
	env, err := newEnv(e.store.IsEvaluator)
	if err != nil {
		return fmt.Errorf("failed to create environment for executor '%s': %w", e.store.ExecutorID, err)
	}
	for ctx.Err() == nil {
		if _, err := e.RunEpisode(ctx, env, maxEpisodeSteps); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}
