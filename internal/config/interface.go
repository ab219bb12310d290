package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads configuration from the given paths (files or
	// directories) and translates it into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// Extensions lists the file extensions the loader understands,
	// including the leading dot.
	Extensions() []string
}

// Converter binds configuration values onto Go config structs. It acts as
// the bridge between the raw configuration and the types used by
// components.
type Converter interface {
	// DecodeAttributes sets the fields of the struct pointed to by target
	// from attrs, matching each attribute to a field by its `config` tag.
	DecodeAttributes(ctx context.Context, target any, attrs map[string]cty.Value) error

	// HasField reports whether the struct pointed to by target declares a
	// config field with the given name.
	HasField(target any, name string) bool

	// ToCtyValue converts a native Go value into its cty.Value.
	ToCtyValue(v any) (cty.Value, error)
}
