package component

import (
	"context"

	"github.com/vk/marlgrid/internal/store"
)

// Executor hooks, listed in dispatch order.
const (
	// Run when an executor is constructed.
	HookExecutionInitStart = Hook("on_execution_init_start")
	HookExecutionInit      = Hook("on_execution_init")
	HookExecutionInitEnd   = Hook("on_execution_init_end")

	// Run on the first timestep of an episode.
	HookExecutionObserveFirstStart = Hook("on_execution_observe_first_start")
	HookExecutionObserveFirst      = Hook("on_execution_observe_first")
	HookExecutionObserveFirstEnd   = Hook("on_execution_observe_first_end")

	// Run on every later timestep.
	HookExecutionObserveStart = Hook("on_execution_observe_start")
	HookExecutionObserve      = Hook("on_execution_observe")
	HookExecutionObserveEnd   = Hook("on_execution_observe_end")

	// Run to select actions for all agents.
	HookExecutionSelectActionsStart = Hook("on_execution_select_actions_start")
	HookExecutionSelectActions      = Hook("on_execution_select_actions")
	HookExecutionSelectActionsEnd   = Hook("on_execution_select_actions_end")

	// Run to select the action of a single agent.
	HookExecutionSelectActionStart   = Hook("on_execution_select_action_start")
	HookExecutionSelectActionCompute = Hook("on_execution_select_action_compute")
	HookExecutionSelectActionEnd     = Hook("on_execution_select_action_end")

	// Run after each step to refresh parameters.
	HookExecutionUpdateStart = Hook("on_execution_update_start")
	HookExecutionUpdate      = Hook("on_execution_update")
	HookExecutionUpdateEnd   = Hook("on_execution_update_end")
)

// ExecutionInitStartHook is dispatched as the on_execution_init_start hook.
type ExecutionInitStartHook interface {
	OnExecutionInitStart(ctx context.Context, s *store.Executor) error
}

// ExecutionInitHook is dispatched as the on_execution_init hook.
type ExecutionInitHook interface {
	OnExecutionInit(ctx context.Context, s *store.Executor) error
}

// ExecutionInitEndHook is dispatched as the on_execution_init_end hook.
type ExecutionInitEndHook interface {
	OnExecutionInitEnd(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveFirstStartHook is dispatched as the on_execution_observe_first_start hook.
type ExecutionObserveFirstStartHook interface {
	OnExecutionObserveFirstStart(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveFirstHook is dispatched as the on_execution_observe_first hook.
type ExecutionObserveFirstHook interface {
	OnExecutionObserveFirst(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveFirstEndHook is dispatched as the on_execution_observe_first_end hook.
type ExecutionObserveFirstEndHook interface {
	OnExecutionObserveFirstEnd(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveStartHook is dispatched as the on_execution_observe_start hook.
type ExecutionObserveStartHook interface {
	OnExecutionObserveStart(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveHook is dispatched as the on_execution_observe hook.
type ExecutionObserveHook interface {
	OnExecutionObserve(ctx context.Context, s *store.Executor) error
}

// ExecutionObserveEndHook is dispatched as the on_execution_observe_end hook.
type ExecutionObserveEndHook interface {
	OnExecutionObserveEnd(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionsStartHook is dispatched as the on_execution_select_actions_start hook.
type ExecutionSelectActionsStartHook interface {
	OnExecutionSelectActionsStart(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionsHook selects actions for every agent in
// s.Observations and records them in s.ActionsInfo and s.PoliciesInfo.
type ExecutionSelectActionsHook interface {
	OnExecutionSelectActions(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionsEndHook is dispatched as the on_execution_select_actions_end hook.
type ExecutionSelectActionsEndHook interface {
	OnExecutionSelectActionsEnd(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionStartHook is dispatched as the on_execution_select_action_start hook.
type ExecutionSelectActionStartHook interface {
	OnExecutionSelectActionStart(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionComputeHook selects the action for s.Agent and
// stores it in s.ActionInfo and s.PolicyInfo.
type ExecutionSelectActionComputeHook interface {
	OnExecutionSelectActionCompute(ctx context.Context, s *store.Executor) error
}

// ExecutionSelectActionEndHook is dispatched as the on_execution_select_action_end hook.
type ExecutionSelectActionEndHook interface {
	OnExecutionSelectActionEnd(ctx context.Context, s *store.Executor) error
}

// ExecutionUpdateStartHook is dispatched as the on_execution_update_start hook.
type ExecutionUpdateStartHook interface {
	OnExecutionUpdateStart(ctx context.Context, s *store.Executor) error
}

// ExecutionUpdateHook is dispatched as the on_execution_update hook.
type ExecutionUpdateHook interface {
	OnExecutionUpdate(ctx context.Context, s *store.Executor) error
}

// ExecutionUpdateEndHook is dispatched as the on_execution_update_end hook.
type ExecutionUpdateEndHook interface {
	OnExecutionUpdateEnd(ctx context.Context, s *store.Executor) error
}
