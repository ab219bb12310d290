package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vk/marlgrid/internal/app"
	"github.com/vk/marlgrid/internal/cli"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/hcl"
	"github.com/vk/marlgrid/internal/tomlconfig"
	"github.com/vk/marlgrid/internal/yamlconfig"
)

// main is the entrypoint for the marlgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// newLoader reads every supported configuration format.
func newLoader() config.Loader {
	return config.MultiLoader{
		hcl.NewLoader(),
		tomlconfig.NewLoader(),
		yamlconfig.NewLoader(),
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	var marlgridApp *app.App
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup panicked: %v", r)
			}
		}()
		marlgridApp = app.NewApp(outW, appConfig, newLoader(), nil)
	}()
	if err != nil {
		return err
	}

	return marlgridApp.Run(ctx)
}
