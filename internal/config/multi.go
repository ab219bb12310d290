package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/marlgrid/internal/fsutil"
)

// ErrNoFiles is returned when none of the given paths contains a file any
// loader understands.
var ErrNoFiles = errors.New("no configuration files found")

// MultiLoader runs several loaders over the same paths and merges their
// models. Each loader only reads files with its own extensions.
type MultiLoader []Loader

// Extensions implements Loader.
func (m MultiLoader) Extensions() []string {
	var exts []string
	for _, l := range m {
		exts = append(exts, l.Extensions()...)
	}
	return exts
}

// Load implements Loader.
func (m MultiLoader) Load(ctx context.Context, paths ...string) (*Model, error) {
	files, err := fsutil.CollectFiles(paths, m.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s (supported: %s)", ErrNoFiles, strings.Join(paths, ", "), strings.Join(m.Extensions(), ", "))
	}

	model := NewModel()
	for _, l := range m {
		part, err := l.Load(ctx, paths...)
		if err != nil {
			return nil, err
		}
		if err := model.Merge(part); err != nil {
			return nil, err
		}
	}
	return model, nil
}
