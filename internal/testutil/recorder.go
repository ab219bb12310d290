package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/store"
)

// ErrRecorderFailure is returned by a Recorder's FailOn hook.
var ErrRecorderFailure = errors.New("recorder: injected failure")

// Recorder is a component that implements every lifecycle hook and records
// the order in which they were called.
type Recorder struct {
	ComponentName string

	// FailOn, when set, makes the named hook return ErrRecorderFailure.
	FailOn component.Hook

	mu    sync.Mutex
	hooks []string
}

// NewRecorder creates a recorder registered under name.
func NewRecorder(name string) *Recorder {
	return &Recorder{ComponentName: name}
}

func (r *Recorder) Name() string { return r.ComponentName }

func (r *Recorder) Config() any { return nil }

// Hooks returns the recorded hook names in call order.
func (r *Recorder) Hooks() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hooks...)
}

// Reset clears the recorded hooks.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = nil
}

func (r *Recorder) record(h component.Hook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, string(h))
	if r.FailOn == h {
		return ErrRecorderFailure
	}
	return nil
}

func (r *Recorder) OnBuildingInitStart(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingInitStart)
}

func (r *Recorder) OnBuildingInit(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingInit)
}

func (r *Recorder) OnBuildingInitEnd(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingInitEnd)
}

func (r *Recorder) OnBuildingParameterServerStart(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingParameterServerStart)
}

func (r *Recorder) OnBuildingParameterServer(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingParameterServer)
}

func (r *Recorder) OnBuildingParameterServerEnd(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingParameterServerEnd)
}

func (r *Recorder) OnBuildingExecutorStart(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingExecutorStart)
}

func (r *Recorder) OnBuildingExecutorParameterClient(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingExecutorParameterClient)
}

func (r *Recorder) OnBuildingExecutor(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingExecutor)
}

func (r *Recorder) OnBuildingExecutorEnd(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingExecutorEnd)
}

func (r *Recorder) OnBuildingTrainerStart(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingTrainerStart)
}

func (r *Recorder) OnBuildingTrainerParameterClient(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingTrainerParameterClient)
}

func (r *Recorder) OnBuildingTrainer(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingTrainer)
}

func (r *Recorder) OnBuildingTrainerEnd(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingTrainerEnd)
}

func (r *Recorder) OnBuildingLaunchStart(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingLaunchStart)
}

func (r *Recorder) OnBuildingLaunch(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingLaunch)
}

func (r *Recorder) OnBuildingLaunchEnd(ctx context.Context, _ *store.Builder) error {
	return r.record(component.HookBuildingLaunchEnd)
}

func (r *Recorder) OnExecutionInitStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionInitStart)
}

func (r *Recorder) OnExecutionInit(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionInit)
}

func (r *Recorder) OnExecutionInitEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionInitEnd)
}

func (r *Recorder) OnExecutionObserveFirstStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserveFirstStart)
}

func (r *Recorder) OnExecutionObserveFirst(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserveFirst)
}

func (r *Recorder) OnExecutionObserveFirstEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserveFirstEnd)
}

func (r *Recorder) OnExecutionObserveStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserveStart)
}

func (r *Recorder) OnExecutionObserve(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserve)
}

func (r *Recorder) OnExecutionObserveEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionObserveEnd)
}

func (r *Recorder) OnExecutionSelectActionsStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActionsStart)
}

func (r *Recorder) OnExecutionSelectActions(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActions)
}

func (r *Recorder) OnExecutionSelectActionsEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActionsEnd)
}

func (r *Recorder) OnExecutionSelectActionStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActionStart)
}

func (r *Recorder) OnExecutionSelectActionCompute(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActionCompute)
}

func (r *Recorder) OnExecutionSelectActionEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionSelectActionEnd)
}

func (r *Recorder) OnExecutionUpdateStart(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionUpdateStart)
}

func (r *Recorder) OnExecutionUpdate(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionUpdate)
}

func (r *Recorder) OnExecutionUpdateEnd(ctx context.Context, _ *store.Executor) error {
	return r.record(component.HookExecutionUpdateEnd)
}

func (r *Recorder) OnTrainingInitStart(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingInitStart)
}

func (r *Recorder) OnTrainingInit(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingInit)
}

func (r *Recorder) OnTrainingInitEnd(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingInitEnd)
}

func (r *Recorder) OnTrainingStepStart(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingStepStart)
}

func (r *Recorder) OnTrainingStep(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingStep)
}

func (r *Recorder) OnTrainingStepEnd(ctx context.Context, _ *store.Trainer) error {
	return r.record(component.HookTrainingStepEnd)
}

func (r *Recorder) OnParameterServerInitStart(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerInitStart)
}

func (r *Recorder) OnParameterServerInit(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerInit)
}

func (r *Recorder) OnParameterServerInitCheckpointer(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerInitCheckpointer)
}

func (r *Recorder) OnParameterServerInitEnd(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerInitEnd)
}

func (r *Recorder) OnParameterServerGetParametersStart(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerGetParametersStart)
}

func (r *Recorder) OnParameterServerGetParameters(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerGetParameters)
}

func (r *Recorder) OnParameterServerGetParametersEnd(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerGetParametersEnd)
}

func (r *Recorder) OnParameterServerSetParametersStart(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerSetParametersStart)
}

func (r *Recorder) OnParameterServerSetParameters(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerSetParameters)
}

func (r *Recorder) OnParameterServerSetParametersEnd(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerSetParametersEnd)
}

func (r *Recorder) OnParameterServerAddToParametersStart(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerAddToParametersStart)
}

func (r *Recorder) OnParameterServerAddToParameters(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerAddToParameters)
}

func (r *Recorder) OnParameterServerAddToParametersEnd(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerAddToParametersEnd)
}

func (r *Recorder) OnParameterServerRunLoopStart(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerRunLoopStart)
}

func (r *Recorder) OnParameterServerRunLoopCheckpoint(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerRunLoopCheckpoint)
}

func (r *Recorder) OnParameterServerRunLoop(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerRunLoop)
}

func (r *Recorder) OnParameterServerRunLoopTermination(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerRunLoopTermination)
}

func (r *Recorder) OnParameterServerRunLoopEnd(ctx context.Context, _ *store.ParameterServer) error {
	return r.record(component.HookParameterServerRunLoopEnd)
}
