// Package yamlconfig provides a YAML implementation of the config.Loader
// interface. The document layout mirrors the TOML one.
package yamlconfig

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// Loader loads `.yaml` and `.yml` system files.
type Loader struct{}

// NewLoader creates a YAML loader.
func NewLoader() *Loader { return &Loader{} }

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string { return []string{".yaml", ".yml"} }

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.CollectFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered YAML files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		var doc map[string]any
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML file %s: %w", file, err)
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
