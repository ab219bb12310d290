package component

import (
	"context"

	"github.com/vk/marlgrid/internal/store"
)

// Builder hooks, listed in dispatch order.
const (
	// Run by Builder.Build before any process is built.
	HookBuildingInitStart = Hook("on_building_init_start")
	HookBuildingInit      = Hook("on_building_init")
	HookBuildingInitEnd   = Hook("on_building_init_end")

	// Run while the parameter server is built.
	HookBuildingParameterServerStart = Hook("on_building_parameter_server_start")
	HookBuildingParameterServer      = Hook("on_building_parameter_server")
	HookBuildingParameterServerEnd   = Hook("on_building_parameter_server_end")

	// Run once per executor and once for the evaluator.
	HookBuildingExecutorStart           = Hook("on_building_executor_start")
	HookBuildingExecutorParameterClient = Hook("on_building_executor_parameter_client")
	HookBuildingExecutor                = Hook("on_building_executor")
	HookBuildingExecutorEnd             = Hook("on_building_executor_end")

	// Run while the trainer is built.
	HookBuildingTrainerStart           = Hook("on_building_trainer_start")
	HookBuildingTrainerParameterClient = Hook("on_building_trainer_parameter_client")
	HookBuildingTrainer                = Hook("on_building_trainer")
	HookBuildingTrainerEnd             = Hook("on_building_trainer_end")

	// Run by Builder.Launch before the processes start.
	HookBuildingLaunchStart = Hook("on_building_launch_start")
	HookBuildingLaunch      = Hook("on_building_launch")
	HookBuildingLaunchEnd   = Hook("on_building_launch_end")
)

// BuildingInitStartHook is dispatched as the on_building_init_start hook.
type BuildingInitStartHook interface {
	OnBuildingInitStart(ctx context.Context, s *store.Builder) error
}

// BuildingInitHook is dispatched as the on_building_init hook.
type BuildingInitHook interface {
	OnBuildingInit(ctx context.Context, s *store.Builder) error
}

// BuildingInitEndHook is dispatched as the on_building_init_end hook.
type BuildingInitEndHook interface {
	OnBuildingInitEnd(ctx context.Context, s *store.Builder) error
}

// BuildingParameterServerStartHook is dispatched as the on_building_parameter_server_start hook.
type BuildingParameterServerStartHook interface {
	OnBuildingParameterServerStart(ctx context.Context, s *store.Builder) error
}

// BuildingParameterServerHook is dispatched as the on_building_parameter_server hook.
type BuildingParameterServerHook interface {
	OnBuildingParameterServer(ctx context.Context, s *store.Builder) error
}

// BuildingParameterServerEndHook is dispatched as the on_building_parameter_server_end hook.
type BuildingParameterServerEndHook interface {
	OnBuildingParameterServerEnd(ctx context.Context, s *store.Builder) error
}

// BuildingExecutorStartHook is dispatched as the on_building_executor_start hook.
type BuildingExecutorStartHook interface {
	OnBuildingExecutorStart(ctx context.Context, s *store.Builder) error
}

// BuildingExecutorParameterClientHook installs the parameter client the
// executor being built will use.
type BuildingExecutorParameterClientHook interface {
	OnBuildingExecutorParameterClient(ctx context.Context, s *store.Builder) error
}

// BuildingExecutorHook is dispatched as the on_building_executor hook.
type BuildingExecutorHook interface {
	OnBuildingExecutor(ctx context.Context, s *store.Builder) error
}

// BuildingExecutorEndHook is dispatched as the on_building_executor_end hook.
type BuildingExecutorEndHook interface {
	OnBuildingExecutorEnd(ctx context.Context, s *store.Builder) error
}

// BuildingTrainerStartHook is dispatched as the on_building_trainer_start hook.
type BuildingTrainerStartHook interface {
	OnBuildingTrainerStart(ctx context.Context, s *store.Builder) error
}

// BuildingTrainerParameterClientHook is dispatched as the on_building_trainer_parameter_client hook.
type BuildingTrainerParameterClientHook interface {
	OnBuildingTrainerParameterClient(ctx context.Context, s *store.Builder) error
}

// BuildingTrainerHook is dispatched as the on_building_trainer hook.
type BuildingTrainerHook interface {
	OnBuildingTrainer(ctx context.Context, s *store.Builder) error
}

// BuildingTrainerEndHook is dispatched as the on_building_trainer_end hook.
type BuildingTrainerEndHook interface {
	OnBuildingTrainerEnd(ctx context.Context, s *store.Builder) error
}

// BuildingLaunchStartHook is dispatched as the on_building_launch_start hook.
type BuildingLaunchStartHook interface {
	OnBuildingLaunchStart(ctx context.Context, s *store.Builder) error
}

// BuildingLaunchHook is dispatched as the on_building_launch hook.
type BuildingLaunchHook interface {
	OnBuildingLaunch(ctx context.Context, s *store.Builder) error
}

// BuildingLaunchEndHook is dispatched as the on_building_launch_end hook.
type BuildingLaunchEndHook interface {
	OnBuildingLaunchEnd(ctx context.Context, s *store.Builder) error
}
