package tomlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
[system.ippo.parameters]
non_blocking_sleep_seconds = 0.5

[system.ippo.component.executor_init]
interval = { executor_parameter_update_period = 20 }

[system.ippo.component.parameter_server]
extra_parameters = ["policy_weights"]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "system.toml"), []byte(content), 0644))

	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	sys := model.Systems["ippo"]
	require.NotNil(t, sys)
	assert.True(t, sys.Parameters["non_blocking_sleep_seconds"].Equals(cty.NumberFloatVal(0.5)).True())
	interval := sys.Components["executor_init"].Attributes["interval"]
	assert.True(t, interval.GetAttr("executor_parameter_update_period").Equals(cty.NumberIntVal(20)).True())
	assert.Equal(t, 1, sys.Components["parameter_server"].Attributes["extra_parameters"].LengthInt())
}

func TestLoad_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("[system"), 0644))

	_, err := NewLoader().Load(context.Background(), dir)
	require.ErrorContains(t, err, "failed to parse TOML file")
}
