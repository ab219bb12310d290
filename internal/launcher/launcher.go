// Package launcher runs the processes of a built system concurrently inside
// one Go process.
package launcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/executor"
	"github.com/vk/marlgrid/internal/paramserver"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/internal/trainer"
	"golang.org/x/sync/errgroup"
)

// Processes are the runnable parts of a built system.
type Processes struct {
	ParameterServer *paramserver.Server
	Executors       []*executor.Executor
	Trainer         *trainer.Trainer
}

// Options control a launch.
type Options struct {
	// MaxTrainerSteps stops the run once the trainer has taken this many
	// steps. Zero runs until the parameter server terminates or the context
	// is cancelled.
	MaxTrainerSteps int

	// MaxEpisodeSteps bounds each executor episode when positive.
	MaxEpisodeSteps int

	// EnvironmentFactory creates executor environments. Executors are not
	// started when it is nil.
	EnvironmentFactory store.EnvironmentFactory
}

// Run starts the parameter server, the trainer and, when an environment
// factory is given, every executor. It returns when the trainer finishes,
// the parameter server terminates, a process fails or ctx is done. The
// first failure cancels the other processes.
func Run(ctx context.Context, p Processes, opts Options) error {
	if p.ParameterServer == nil || p.Trainer == nil {
		return errors.New("launcher: parameter server and trainer are required")
	}
	logger := ctxlog.FromContext(ctx)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	// stopped turns cancellation caused by a normal stop into success.
	stopped := func(err error) error {
		if errors.Is(err, context.Canceled) && ctx.Err() == nil {
			return nil
		}
		return err
	}

	g.Go(func() error {
		defer stop()
		return stopped(p.ParameterServer.Run(gctx))
	})

	g.Go(func() error {
		defer stop()
		if err := p.Trainer.Run(gctx, opts.MaxTrainerSteps); err != nil {
			return stopped(err)
		}
		return nil
	})

	if opts.EnvironmentFactory == nil {
		logger.Info("No environment factory set, executors will not run.", "executors", len(p.Executors))
	} else {
		for _, e := range p.Executors {
			g.Go(func() error {
				logger.Debug("Running executor.", "executor", e.ID())
				return stopped(e.Run(gctx, opts.EnvironmentFactory, opts.MaxEpisodeSteps))
			})
		}
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("process failed: %w", err)
	}
	logger.Info("All processes stopped.")
	return nil
}
