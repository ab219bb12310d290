package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/launcher"
)

// Run builds the system and runs it until the trainer reaches its step
// budget, the parameter server terminates or ctx is cancelled.
func (app *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, app.logger)
	app.ctx = ctx
	app.logger.Debug("App.Run method started.")

	app.healthCheckServer()
	defer func() {
		err = errors.Join(err, app.closeHealthCheckServer(), app.system.Close())
	}()

	app.logger.Info("🚀 Launching system.", "system", app.system.Name(), "trainer_steps", app.config.TrainerSteps)
	opts := launcher.Options{MaxTrainerSteps: app.config.TrainerSteps}
	if err := app.system.Launch(ctx, opts); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			app.logger.Info("Run cancelled.")
			return nil
		}
		return fmt.Errorf("run failed: %w", err)
	}
	app.logger.Info("🏁 Run finished.")
	return nil
}
