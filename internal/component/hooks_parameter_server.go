package component

import (
	"context"

	"github.com/vk/marlgrid/internal/store"
)

// Parameter server hooks, listed in dispatch order.
const (
	// Run when the parameter server is constructed.
	HookParameterServerInitStart        = Hook("on_parameter_server_init_start")
	HookParameterServerInit             = Hook("on_parameter_server_init")
	HookParameterServerInitCheckpointer = Hook("on_parameter_server_init_checkpointer")
	HookParameterServerInitEnd          = Hook("on_parameter_server_init_end")

	// Run by GetParameters.
	HookParameterServerGetParametersStart = Hook("on_parameter_server_get_parameters_start")
	HookParameterServerGetParameters      = Hook("on_parameter_server_get_parameters")
	HookParameterServerGetParametersEnd   = Hook("on_parameter_server_get_parameters_end")

	// Run by SetParameters.
	HookParameterServerSetParametersStart = Hook("on_parameter_server_set_parameters_start")
	HookParameterServerSetParameters      = Hook("on_parameter_server_set_parameters")
	HookParameterServerSetParametersEnd   = Hook("on_parameter_server_set_parameters_end")

	// Run by AddToParameters.
	HookParameterServerAddToParametersStart = Hook("on_parameter_server_add_to_parameters_start")
	HookParameterServerAddToParameters      = Hook("on_parameter_server_add_to_parameters")
	HookParameterServerAddToParametersEnd   = Hook("on_parameter_server_add_to_parameters_end")

	// Run by each Step of the parameter server loop.
	HookParameterServerRunLoopStart       = Hook("on_parameter_server_run_loop_start")
	HookParameterServerRunLoopCheckpoint  = Hook("on_parameter_server_run_loop_checkpoint")
	HookParameterServerRunLoop            = Hook("on_parameter_server_run_loop")
	HookParameterServerRunLoopTermination = Hook("on_parameter_server_run_loop_termination")
	HookParameterServerRunLoopEnd         = Hook("on_parameter_server_run_loop_end")
)

// ParameterServerInitStartHook is dispatched as the on_parameter_server_init_start hook.
type ParameterServerInitStartHook interface {
	OnParameterServerInitStart(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerInitHook is dispatched as the on_parameter_server_init hook.
type ParameterServerInitHook interface {
	OnParameterServerInit(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerInitCheckpointerHook is dispatched as the on_parameter_server_init_checkpointer hook.
type ParameterServerInitCheckpointerHook interface {
	OnParameterServerInitCheckpointer(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerInitEndHook is dispatched as the on_parameter_server_init_end hook.
type ParameterServerInitEndHook interface {
	OnParameterServerInitEnd(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerGetParametersStartHook is dispatched as the on_parameter_server_get_parameters_start hook.
type ParameterServerGetParametersStartHook interface {
	OnParameterServerGetParametersStart(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerGetParametersHook fills s.GetResult for s.ParamNames.
type ParameterServerGetParametersHook interface {
	OnParameterServerGetParameters(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerGetParametersEndHook is dispatched as the on_parameter_server_get_parameters_end hook.
type ParameterServerGetParametersEndHook interface {
	OnParameterServerGetParametersEnd(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerSetParametersStartHook is dispatched as the on_parameter_server_set_parameters_start hook.
type ParameterServerSetParametersStartHook interface {
	OnParameterServerSetParametersStart(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerSetParametersHook applies s.SetParams to s.Parameters.
type ParameterServerSetParametersHook interface {
	OnParameterServerSetParameters(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerSetParametersEndHook is dispatched as the on_parameter_server_set_parameters_end hook.
type ParameterServerSetParametersEndHook interface {
	OnParameterServerSetParametersEnd(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerAddToParametersStartHook is dispatched as the on_parameter_server_add_to_parameters_start hook.
type ParameterServerAddToParametersStartHook interface {
	OnParameterServerAddToParametersStart(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerAddToParametersHook adds s.AddToParams to s.Parameters.
type ParameterServerAddToParametersHook interface {
	OnParameterServerAddToParameters(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerAddToParametersEndHook is dispatched as the on_parameter_server_add_to_parameters_end hook.
type ParameterServerAddToParametersEndHook interface {
	OnParameterServerAddToParametersEnd(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerRunLoopStartHook is dispatched as the on_parameter_server_run_loop_start hook.
type ParameterServerRunLoopStartHook interface {
	OnParameterServerRunLoopStart(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerRunLoopCheckpointHook is dispatched as the on_parameter_server_run_loop_checkpoint hook.
type ParameterServerRunLoopCheckpointHook interface {
	OnParameterServerRunLoopCheckpoint(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerRunLoopHook is dispatched as the on_parameter_server_run_loop hook.
type ParameterServerRunLoopHook interface {
	OnParameterServerRunLoop(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerRunLoopTerminationHook sets s.Terminate to stop the loop.
type ParameterServerRunLoopTerminationHook interface {
	OnParameterServerRunLoopTermination(ctx context.Context, s *store.ParameterServer) error
}

// ParameterServerRunLoopEndHook is dispatched as the on_parameter_server_run_loop_end hook.
type ParameterServerRunLoopEndHook interface {
	OnParameterServerRunLoopEnd(ctx context.Context, s *store.ParameterServer) error
}
