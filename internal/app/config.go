package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // file or directory with .hcl, .toml or .yaml files

	// SystemName selects the system to run when the configuration defines
	// more than one.
	SystemName string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	NumExecutors int
	TrainerSteps int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.NumExecutors < 0 {
		return nil, fmt.Errorf("NumExecutors must not be negative, got %d", cfg.NumExecutors)
	}
	if cfg.TrainerSteps < 0 {
		return nil, fmt.Errorf("TrainerSteps must not be negative, got %d", cfg.TrainerSteps)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort out of range: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
