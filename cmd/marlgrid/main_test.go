package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up test file")
	return path
}

func TestRun_PanicRecovery(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// An HCL syntax error makes app.NewApp panic while loading.
	path := writeConfig(t, "main.hcl", `
		system "ippo" {
			parameters {
		// Missing closing brace here
	`)
	out := &bytes.Buffer{}

	// --- Act ---
	runErr := run(context.Background(), out, []string{path})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")
	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "failed to parse"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeConfig(t, "ippo.toml", `
[system.ippo.parameters]
non_blocking_sleep_seconds = 0
log_every_n_steps = 5

[system.ippo.component.parameter_server]
max_trainer_steps = 10
`)
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, []string{"-log-format", "text", "-trainer-steps", "10", "-executors", "2", path})

	// --- Assert ---
	require.NoError(t, err)
	require.Contains(t, out.String(), "Run finished.")
	require.Contains(t, out.String(), "Trainer progress.")
}
