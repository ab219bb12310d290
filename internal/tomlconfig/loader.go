// Package tomlconfig provides a TOML implementation of the config.Loader
// interface.
//
//	[system.ippo.parameters]
//	non_blocking_sleep_seconds = 0.5
//
//	[system.ippo.component.executor_init]
//	interval = { executor_parameter_update_period = 20 }
package tomlconfig

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/fsutil"
)

// Loader loads `.toml` system files.
type Loader struct{}

// NewLoader creates a TOML loader.
func NewLoader() *Loader { return &Loader{} }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".toml"} }

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered TOML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		var doc map[string]any
		if _, err := toml.DecodeFile(file, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML file %s: %w", file, err)
		}
		fileModel, err := config.ModelFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
		if err := model.Merge(fileModel); err != nil {
			return nil, fmt.Errorf("in %s: %w", file, err)
		}
	}
	return model, nil
}
