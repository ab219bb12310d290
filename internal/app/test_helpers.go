package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/hcl"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/testutil"
	"github.com/vk/marlgrid/internal/tomlconfig"
	"github.com/vk/marlgrid/internal/yamlconfig"
)

// HarnessResult holds the outcome of setting up an App from config files.
type HarnessResult struct {
	App       *App
	Err       error
	LogOutput *testutil.SafeBuffer
}

// SetupAppTest writes files into a temporary directory and creates an App
// from it. A startup panic is returned as Err. Modules default to the core
// modules.
func SetupAppTest(t *testing.T, appConfig Config, files map[string]string, modules []registry.Module, opts ...Option) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	appConfig.ConfigPath = dir
	if appConfig.LogLevel == "" {
		appConfig.LogLevel = "debug"
	}
	if appConfig.LogFormat == "" {
		appConfig.LogFormat = "text"
	}

	logBuffer := &testutil.SafeBuffer{}
	testutil.DumpLogsOnCleanup(t, logBuffer)

	loader := config.MultiLoader{hcl.NewLoader(), tomlconfig.NewLoader(), yamlconfig.NewLoader()}
	result := &HarnessResult{LogOutput: logBuffer}
	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = NewApp(logBuffer, &appConfig, loader, modules, opts...)
	}()
	return result
}
