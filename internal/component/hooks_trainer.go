package component

import (
	"context"

	"github.com/vk/marlgrid/internal/store"
)

// Trainer hooks, listed in dispatch order.
const (
	// Run when the trainer is constructed.
	HookTrainingInitStart = Hook("on_training_init_start")
	HookTrainingInit      = Hook("on_training_init")
	HookTrainingInitEnd   = Hook("on_training_init_end")

	// Run by each trainer Step.
	HookTrainingStepStart = Hook("on_training_step_start")
	HookTrainingStep      = Hook("on_training_step")
	HookTrainingStepEnd   = Hook("on_training_step_end")
)

// TrainingInitStartHook is dispatched as the on_training_init_start hook.
type TrainingInitStartHook interface {
	OnTrainingInitStart(ctx context.Context, s *store.Trainer) error
}

// TrainingInitHook is dispatched as the on_training_init hook.
type TrainingInitHook interface {
	OnTrainingInit(ctx context.Context, s *store.Trainer) error
}

// TrainingInitEndHook is dispatched as the on_training_init_end hook.
type TrainingInitEndHook interface {
	OnTrainingInitEnd(ctx context.Context, s *store.Trainer) error
}

// TrainingStepStartHook is dispatched as the on_training_step_start hook.
type TrainingStepStartHook interface {
	OnTrainingStepStart(ctx context.Context, s *store.Trainer) error
}

// TrainingStepHook is dispatched as the on_training_step hook.
type TrainingStepHook interface {
	OnTrainingStep(ctx context.Context, s *store.Trainer) error
}

// TrainingStepEndHook is dispatched as the on_training_step_end hook.
type TrainingStepEndHook interface {
	OnTrainingStepEnd(ctx context.Context, s *store.Trainer) error
}
