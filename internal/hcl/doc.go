// Package hcl provides the HCL implementation of the config.Loader
// interface. It is responsible for file parsing and for translating
// `system` blocks into the format-agnostic config model.
//
// A system file looks like:
//
//	system "ippo" {
//	  parameters {
//	    non_blocking_sleep_seconds = 0.5
//	  }
//
//	  component "executor_init" {
//	    interval = { executor_parameter_update_period = 20 }
//	  }
//	}
//
// Expressions may reference environment variables through `env`, e.g.
// `checkpoint_dir = env.CHECKPOINT_DIR`.
package hcl
