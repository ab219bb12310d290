package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/config"
	"github.com/zclconf/go-cty/cty"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
system:
  ippo:
    parameters:
      non_blocking_sleep_seconds: 0.5
    component:
      executor_init:
        interval:
          executor_parameter_update_period: 20
      trainer_steps:
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "system.yml"), []byte(content), 0644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	sys := model.Systems["ippo"]
	require.NotNil(t, sys)
	assert.True(t, sys.Parameters["non_blocking_sleep_seconds"].Equals(cty.NumberFloatVal(0.5)).True())
	interval := sys.Components["executor_init"].Attributes["interval"]
	assert.True(t, interval.GetAttr("executor_parameter_update_period").Equals(cty.NumberIntVal(20)).True())
	assert.Contains(t, sys.Components, "trainer_steps")
}

func TestLoad_DuplicateAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	content := "system:\n  ippo:\n    component:\n      executor_init: {}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(content), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(content), 0644))

	_, err := NewLoader().Load(context.Background(), dir)
	require.ErrorIs(t, err, config.ErrDuplicateBlock)
}
