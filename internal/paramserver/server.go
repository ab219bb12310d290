// Package paramserver implements the parameter server process. The server
// owns the system's shared parameters; every access runs through a fixed
// hook sequence so components decide how parameters are created, read,
// written and checkpointed.
package paramserver

import (
	"context"
	"sync"
	"time"

	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/store"
)

// Server is the parameter server process. It implements
// store.ParameterClient.
type Server struct {
	mu         sync.Mutex
	components []component.Component
	store      *store.ParameterServer
}

var _ store.ParameterClient = (*Server)(nil)

// New creates a parameter server and runs its init hooks.
func New(ctx context.Context, s *store.ParameterServer, components []component.Component) (*Server, error) {
	ctx = ctxlog.With(ctx, "process", store.ScopeParameterServer)
	p := &Server{components: components, store: s}

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerInitStart, func(h component.ParameterServerInitStartHook) error {
				return h.OnParameterServerInitStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerInit, func(h component.ParameterServerInitHook) error {
				return h.OnParameterServerInit(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerInitCheckpointer, func(h component.ParameterServerInitCheckpointerHook) error {
				return h.OnParameterServerInitCheckpointer(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerInitEnd, func(h component.ParameterServerInitEndHook) error {
				return h.OnParameterServerInitEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Parameter server initialised.", "parameters", s.Parameters.Names())
	return p, nil
}

// Store returns the server's store.
func (p *Server) Store() *store.ParameterServer {
	return p.store
}

// GetParameters returns a copy of the named parameters as produced by the
// get_parameters hooks.
func (p *Server) GetParameters(ctx context.Context, names ...string) (store.Parameters, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.store
	s.ParamNames = names
	s.GetResult = nil

	err := component.Sequence(
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerGetParametersStart, func(h component.ParameterServerGetParametersStartHook) error {
				return h.OnParameterServerGetParametersStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerGetParameters, func(h component.ParameterServerGetParametersHook) error {
				return h.OnParameterServerGetParameters(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerGetParametersEnd, func(h component.ParameterServerGetParametersEndHook) error {
				return h.OnParameterServerGetParametersEnd(ctx, s)
			})
		},
	)
	if err != nil {
		return nil, err
	}
	return s.GetResult.Clone(), nil
}

// SetParameters overwrites parameters through the set_parameters hooks.
func (p *Server) SetParameters(ctx context.Context, params store.Parameters) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.store
	s.SetParams = params

	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerSetParametersStart, func(h component.ParameterServerSetParametersStartHook) error {
				return h.OnParameterServerSetParametersStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerSetParameters, func(h component.ParameterServerSetParametersHook) error {
				return h.OnParameterServerSetParameters(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerSetParametersEnd, func(h component.ParameterServerSetParametersEndHook) error {
				return h.OnParameterServerSetParametersEnd(ctx, s)
			})
		},
	)
}

// AddToParameters adds to parameters through the add_to_parameters hooks.
func (p *Server) AddToParameters(ctx context.Context, params store.Parameters) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.store
	s.AddToParams = params

	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerAddToParametersStart, func(h component.ParameterServerAddToParametersStartHook) error {
				return h.OnParameterServerAddToParametersStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerAddToParameters, func(h component.ParameterServerAddToParametersHook) error {
				return h.OnParameterServerAddToParameters(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerAddToParametersEnd, func(h component.ParameterServerAddToParametersEndHook) error {
				return h.OnParameterServerAddToParametersEnd(ctx, s)
			})
		},
	)
}

// Step runs one iteration of the run loop and then waits
// s.NonBlockingSleep, returning early if ctx is cancelled.
func (p *Server) Step(ctx context.Context) error {
	if err := p.runLoopHooks(ctx); err != nil {
		return err
	}
	if p.store.NonBlockingSleep <= 0 {
		return nil
	}
	timer := time.NewTimer(p.store.NonBlockingSleep)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *Server) runLoopHooks(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.store
	return component.Sequence(
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerRunLoopStart, func(h component.ParameterServerRunLoopStartHook) error {
				return h.OnParameterServerRunLoopStart(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerRunLoopCheckpoint, func(h component.ParameterServerRunLoopCheckpointHook) error {
				return h.OnParameterServerRunLoopCheckpoint(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerRunLoop, func(h component.ParameterServerRunLoopHook) error {
				return h.OnParameterServerRunLoop(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerRunLoopTermination, func(h component.ParameterServerRunLoopTerminationHook) error {
				return h.OnParameterServerRunLoopTermination(ctx, s)
			})
		},
		func() error {
			return component.Dispatch(ctx, p.components, component.HookParameterServerRunLoopEnd, func(h component.ParameterServerRunLoopEndHook) error {
				return h.OnParameterServerRunLoopEnd(ctx, s)
			})
		},
	)
}

// Terminated reports whether a run_loop_termination hook asked the server
// to stop.
func (p *Server) Terminated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Terminate
}

// Run steps the server until it is terminated or ctx is done.
func (p *Server) Run(ctx context.Context) error {
	ctx = ctxlog.With(ctx, "process", store.ScopeParameterServer)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parameter server run loop started.")
	for !p.Terminated() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.Step(ctx); err != nil {
			return err
		}
	}
	logger.Info("Parameter server terminated.")
	return nil
}
