// Package config defines the format-agnostic configuration model for the
// application, along with the core interfaces (Loader, Converter) for
// loading configuration files and binding their values onto component
// config structs.
//
// The `config.Model` is the single source of truth for the `system`
// package. Concrete implementations of the interfaces, such as for HCL,
// TOML and YAML, are provided in separate packages.
package config
