package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/hcl"
	"github.com/vk/marlgrid/internal/tomlconfig"
	"github.com/vk/marlgrid/internal/yamlconfig"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func loaders() config.MultiLoader {
	return config.MultiLoader{hcl.NewLoader(), tomlconfig.NewLoader(), yamlconfig.NewLoader()}
}

func TestMultiLoader_MergesFormats(t *testing.T) {
	// Arrange
	dir := writeFiles(t, map[string]string{
		"system.hcl": `
system "ippo" {
  parameters {
    non_blocking_sleep_seconds = 0.5
  }
}
`,
		"components.toml": `
[system.ippo.component.executor_init]
interval = { executor_parameter_update_period = 20 }
`,
		"extra.yaml": `
system:
  ippo:
    component:
      trainer_steps: {}
`,
		"README.md": "ignored",
	})

	// Act
	model, err := loaders().Load(context.Background(), dir)

	// Assert
	require.NoError(t, err)
	sys := model.Systems["ippo"]
	require.NotNil(t, sys)
	assert.Contains(t, sys.Parameters, "non_blocking_sleep_seconds")
	assert.Contains(t, sys.Components, "executor_init")
	assert.Contains(t, sys.Components, "trainer_steps")
}

func TestMultiLoader_DuplicateAcrossFormats(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"a.toml": "[system.ippo.parameters]\nx = 1\n",
		"b.yml":  "system:\n  ippo:\n    parameters:\n      x: 2\n",
	})

	_, err := loaders().Load(context.Background(), dir)

	require.ErrorIs(t, err, config.ErrDuplicateBlock)
}

func TestMultiLoader_NoFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{"notes.txt": "nothing"})

	_, err := loaders().Load(context.Background(), dir)

	require.ErrorIs(t, err, config.ErrNoFiles)
}

func TestMultiLoader_Extensions(t *testing.T) {
	assert.Equal(t, []string{".hcl", ".toml", ".yaml", ".yml"}, loaders().Extensions())
}
