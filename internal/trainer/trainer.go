// Package trainer implements the trainer process.
package trainer

import (
	"context"
	"fmt"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/store"
)

// Trainer runs training steps through the training hooks.
type Trainer struct {
	components []component.Component
	store      *store.Trainer
}

// New creates a trainer and runs its init hooks.
func New(ctx context.Context, s *store.Trainer, components []component.Component) (*Trainer, error) {
	t := &Trainer{components: components, store: s}
	ctx = t.logContext(ctx)

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingInitStart, func(h component.TrainingInitStartHook) error {
				return h.OnTrainingInitStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingInit, func(h component.TrainingInitHook) error {
				return h.OnTrainingInit(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingInitEnd, func(h component.TrainingInitEndHook) error {
				return h.OnTrainingInitEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise trainer '%s': %w", s.TrainerID, err)
	}
	return t, nil
}

// Store returns the trainer's store.
func (t *Trainer) Store() *store.Trainer {
	return t.store
}

func (t *Trainer) logContext(ctx context.Context) context.Context {
	return ctxlog.With(ctx, "process", store.ScopeTrainer, "trainer", t.store.TrainerID)
}

// Step runs one training step and advances the step counter.
func (t *Trainer) Step(ctx context.Context) error {
	s := t.store
	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingStepStart, func(h component.TrainingStepStartHook) error {
				return h.OnTrainingStepStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingStep, func(h component.TrainingStepHook) error {
				return h.OnTrainingStep(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, t.components, component.HookTrainingStepEnd, func(h component.TrainingStepEndHook) error {
				return h.OnTrainingStepEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return err
	}
	s.Steps++
	return nil
}

// Run steps the trainer until maxSteps steps have run or ctx is done. A
// non-positive maxSteps runs until ctx is done.
func (t *Trainer) Run(ctx context.Context, maxSteps int) error {
	ctx = t.logContext(ctx)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Trainer started.", "max_steps", maxSteps)

	for maxSteps <= 0 || t.store.Steps < maxSteps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Step(ctx); err != nil {
			return err
		}
	}
	logger.Info("Trainer finished.", "steps", t.store.Steps)
	return nil
}
