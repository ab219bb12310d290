package builder

import (
	"context"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/store"
)

func (b *Builder) initStart(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingInitStart, func(h component.BuildingInitStartHook) error {
		return h.OnBuildingInitStart(ctx, s)
	})
}

func (b *Builder) initMain(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingInit, func(h component.BuildingInitHook) error {
		return h.OnBuildingInit(ctx, s)
	})
}

func (b *Builder) initEnd(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingInitEnd, func(h component.BuildingInitEndHook) error {
		return h.OnBuildingInitEnd(ctx, s)
	})
}

func (b *Builder) parameterServerStart(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingParameterServerStart, func(h component.BuildingParameterServerStartHook) error {
		return h.OnBuildingParameterServerStart(ctx, s)
	})
}

func (b *Builder) parameterServer(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingParameterServer, func(h component.BuildingParameterServerHook) error {
		return h.OnBuildingParameterServer(ctx, s)
	})
}

func (b *Builder) parameterServerEnd(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingParameterServerEnd, func(h component.BuildingParameterServerEndHook) error {
		return h.OnBuildingParameterServerEnd(ctx, s)
	})
}

func (b *Builder) executorStart(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingExecutorStart, func(h component.BuildingExecutorStartHook) error {
		return h.OnBuildingExecutorStart(ctx, s)
	})
}

func (b *Builder) executorParameterClient(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingExecutorParameterClient, func(h component.BuildingExecutorParameterClientHook) error {
		return h.OnBuildingExecutorParameterClient(ctx, s)
	})
}

func (b *Builder) executor(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingExecutor, func(h component.BuildingExecutorHook) error {
		return h.OnBuildingExecutor(ctx, s)
	})
}

func (b *Builder) executorEnd(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingExecutorEnd, func(h component.BuildingExecutorEndHook) error {
		return h.OnBuildingExecutorEnd(ctx, s)
	})
}

func (b *Builder) trainerStart(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingTrainerStart, func(h component.BuildingTrainerStartHook) error {
		return h.OnBuildingTrainerStart(ctx, s)
	})
}

func (b *Builder) trainerParameterClient(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingTrainerParameterClient, func(h component.BuildingTrainerParameterClientHook) error {
		return h.OnBuildingTrainerParameterClient(ctx, s)
	})
}

func (b *Builder) trainer(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingTrainer, func(h component.BuildingTrainerHook) error {
		return h.OnBuildingTrainer(ctx, s)
	})
}

func (b *Builder) trainerEnd(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingTrainerEnd, func(h component.BuildingTrainerEndHook) error {
		return h.OnBuildingTrainerEnd(ctx, s)
	})
}

func (b *Builder) launchStart(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingLaunchStart, func(h component.BuildingLaunchStartHook) error {
		return h.OnBuildingLaunchStart(ctx, s)
	})
}

func (b *Builder) launch(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingLaunch, func(h component.BuildingLaunchHook) error {
		return h.OnBuildingLaunch(ctx, s)
	})
}

func (b *Builder) launchEnd(ctx context.Context, s *store.Builder) error {
	return component.Dispatch(ctx, b.components, component.HookBuildingLaunchEnd, func(h component.BuildingLaunchEndHook) error {
		return h.OnBuildingLaunchEnd(ctx, s)
	})
}
