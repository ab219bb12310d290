package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/vk/marlgrid/internal/binding"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/internal/system"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	ctx        context.Context
	logger     *slog.Logger
	config     *Config
	model      *config.Model
	system     *system.System
	httpServer *http.Server
}

// Option customises the system an App assembles.
type Option = system.Option

// WithPolicy hands p to every executor.
func WithPolicy(p store.Policy) Option { return system.WithPolicy(p) }

// WithEnvironmentFactory lets executors run episodes in environments built
// by f.
func WithEnvironmentFactory(f store.EnvironmentFactory) Option {
	return system.WithEnvironmentFactory(f)
}

// NewApp is the constructor for the main application. It loads the
// configuration, assembles the selected system from modules (the core
// modules when none are given) and applies the configuration to it. Any
// failure here is a startup error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules []registry.Module, opts ...Option) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.ConfigPath)
	if err != nil {
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Configuration loaded and translated into unified model.", "systems", model.SystemNames())

	sysCfg, err := selectSystem(ctx, model, appConfig.SystemName)
	if err != nil {
		panic(err)
	}

	if len(modules) == 0 {
		modules = coreModules
	}
	opts = append([]Option{
		system.WithConverter(binding.NewConverter()),
		system.WithNumExecutors(appConfig.NumExecutors),
	}, opts...)
	sys, err := system.New(ctx, sysCfg.Name, modules, opts...)
	if err != nil {
		panic(err)
	}
	logger.Debug("All Go modules registered.", "count", len(modules), "components", sys.Registry().Names())

	if err := sys.Configure(ctx, sysCfg); err != nil {
		panic(fmt.Errorf("failed to configure system '%s': %w", sysCfg.Name, err))
	}
	if err := sys.Registry().Validate(ctx); err != nil {
		// A mismatch between modules and configuration, so we panic.
		panic(err)
	}

	return &App{
		outW:   outW,
		ctx:    ctx,
		logger: logger,
		config: appConfig,
		model:  model,
		system: sys,
	}
}

// System returns the assembled system. This is primarily for testing.
func (app *App) System() *system.System {
	return app.system
}
