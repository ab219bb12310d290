package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/executorinit"
	"github.com/vk/marlgrid/modules/parameterserver"
)

const ippoHCL = `
system "ippo" {
  parameters {
    non_blocking_sleep_seconds = 0
    log_every_n_steps          = 1
  }

  component "executor_init" {
    interval = {
      executor_parameter_update_period = 2
    }
  }

  component "parameter_server" {
    initial_parameters = {
      policy = [0.5, 0.5]
    }
  }
}
`

// coinEnv is a two-step environment with a single agent.
type coinEnv struct{ t int }

func (e *coinEnv) Reset(context.Context) (store.Timestep, error) {
	e.t = 0
	return store.Timestep{Observations: map[string]store.Observation{
		"agent_0": {Values: []float64{0, 1}, LegalActions: []bool{true, true}},
	}}, nil
}

func (e *coinEnv) Step(_ context.Context, actions map[string]int) (store.Timestep, error) {
	e.t++
	return store.Timestep{
		Observations: map[string]store.Observation{"agent_0": {Values: []float64{0, 1}}},
		Rewards:      map[string]float64{"agent_0": float64(actions["agent_0"])},
		Last:         e.t >= 2,
	}, nil
}

// waitForExecutors holds each training step until executors have reported
// steps to the parameter server.
type waitForExecutors struct{}

func (waitForExecutors) Name() string { return "wait_for_executors" }
func (waitForExecutors) Config() any  { return nil }

func (waitForExecutors) OnTrainingStep(ctx context.Context, s *store.Trainer) error {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		params, err := s.ParameterClient.GetParameters(ctx, parameterserver.ExecutorSteps)
		if err != nil {
			return err
		}
		if params[parameterserver.ExecutorSteps][0] > 0 {
			return nil
		}
		time.Sleep(time.Millisecond)
	}
	return errors.New("executors never reported steps")
}

// healthPoller queries the health endpoint from inside the first training
// step, while the server is guaranteed to be up.
type healthPoller struct {
	url  string
	body map[string]string
}

func (p *healthPoller) Name() string { return "health_poller" }
func (p *healthPoller) Config() any  { return nil }

func (p *healthPoller) OnTrainingStep(ctx context.Context, _ *store.Trainer) error {
	if p.body != nil {
		return nil
	}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
		if err != nil {
			return err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return json.NewDecoder(resp.Body).Decode(&p.body)
	}
	return errors.New("health endpoint never answered")
}

// freePort returns a TCP port that was free a moment ago.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewApp_ConfiguresComponents(t *testing.T) {
	// Act
	result := SetupAppTest(t, Config{}, map[string]string{"ippo.hcl": ippoHCL}, nil)

	// Assert
	require.NoError(t, result.Err)
	sys := result.App.System()
	assert.Equal(t, "ippo", sys.Name())

	c, ok := sys.Registry().Get(executorinit.Name)
	require.True(t, ok)
	assert.Equal(t, map[string]int{"executor_parameter_update_period": 2}, c.Config().(*executorinit.Config).Interval)

	c, ok = sys.Registry().Get(parameterserver.Name)
	require.True(t, ok)
	psCfg := c.Config().(*parameterserver.Config)
	assert.Zero(t, psCfg.NonBlockingSleepSeconds)
	assert.Equal(t, map[string][]float64{"policy": {0.5, 0.5}}, psCfg.InitialParameters)
}

func TestNewApp_StartupErrors(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		files   map[string]string
		wantErr string
	}{
		{
			name:    "unknown parameter",
			files:   map[string]string{"a.hcl": "system \"ippo\" {\n  parameters {\n    nope = 1\n  }\n}\n"},
			wantErr: "parameter not declared by any component",
		},
		{
			name:    "unknown component",
			files:   map[string]string{"a.yaml": "system:\n  ippo:\n    component:\n      ghost: {}\n"},
			wantErr: "component not registered",
		},
		{
			name: "several systems without a name",
			files: map[string]string{
				"a.toml": "[system.ippo.parameters]\nmax_trainer_steps = 1\n",
				"b.toml": "[system.mappo.parameters]\nmax_trainer_steps = 1\n",
			},
			wantErr: "choose one with -system",
		},
		{
			name:    "unknown system name",
			cfg:     Config{SystemName: "qmix"},
			files:   map[string]string{"a.toml": "[system.ippo.parameters]\nmax_trainer_steps = 1\n"},
			wantErr: "system 'qmix' is not defined",
		},
		{
			name:    "no files",
			files:   map[string]string{"notes.txt": "hi"},
			wantErr: "no configuration files found",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := SetupAppTest(t, tc.cfg, tc.files, nil)

			require.Error(t, result.Err)
			assert.Contains(t, result.Err.Error(), "application startup panicked")
			assert.Contains(t, result.Err.Error(), tc.wantErr)
		})
	}
}

func TestNewApp_SelectsNamedSystem(t *testing.T) {
	files := map[string]string{
		"a.toml": "[system.ippo.parameters]\nmax_trainer_steps = 1\n",
		"b.toml": "[system.mappo.parameters]\nmax_trainer_steps = 2\n",
	}

	result := SetupAppTest(t, Config{SystemName: "mappo"}, files, nil)

	require.NoError(t, result.Err)
	assert.Equal(t, "mappo", result.App.System().Name())
}

func TestRun_TrainerOnly(t *testing.T) {
	// Arrange
	result := SetupAppTest(t, Config{TrainerSteps: 3}, map[string]string{"ippo.hcl": ippoHCL}, nil)
	require.NoError(t, result.Err)

	// Act
	err := result.App.Run(context.Background())

	// Assert
	require.NoError(t, err)
	logs := result.LogOutput.String()
	assert.Contains(t, logs, "No environment factory set")
	assert.Contains(t, logs, "Trainer progress.")
	assert.Contains(t, logs, "Run finished.")
}

func TestRun_WithEnvironmentAndPolicy(t *testing.T) {
	// Arrange
	policy := store.PolicyFunc(func(context.Context, string, store.Observation) (int, map[string]float64, error) {
		return 1, nil, nil
	})
	envs := func(bool) (store.Environment, error) { return &coinEnv{}, nil }
	modules := append(append([]registry.Module{}, coreModules...), registry.ModuleFunc(func(r *registry.Registry) error {
		return r.Add(waitForExecutors{})
	}))
	result := SetupAppTest(t, Config{TrainerSteps: 3, NumExecutors: 1},
		map[string]string{"ippo.hcl": ippoHCL}, modules,
		WithPolicy(policy), WithEnvironmentFactory(envs))
	require.NoError(t, result.Err)

	// Act
	err := result.App.Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Contains(t, result.LogOutput.String(), "Episode finished.")
}

func TestRun_CancelledContext(t *testing.T) {
	result := SetupAppTest(t, Config{TrainerSteps: 0}, map[string]string{"ippo.hcl": ippoHCL}, nil)
	require.NoError(t, result.Err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := result.App.Run(ctx)

	require.NoError(t, err)
	assert.Contains(t, result.LogOutput.String(), "Run cancelled.")
}

func TestHealthHandler(t *testing.T) {
	result := SetupAppTest(t, Config{}, map[string]string{"ippo.hcl": ippoHCL}, nil)
	require.NoError(t, result.Err)
	rec := httptest.NewRecorder()

	result.App.healthHandler(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"status": "ok", "system": "ippo"}, body)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	require.Error(t, err)

	_, err = NewConfig(Config{ConfigPath: "x", TrainerSteps: -1})
	require.Error(t, err)

	cfg, err := NewConfig(Config{ConfigPath: "x", NumExecutors: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.NumExecutors)
}

func TestRun_ServesHealthCheck(t *testing.T) {
	// Arrange
	port := freePort(t)
	poller := &healthPoller{url: fmt.Sprintf("http://127.0.0.1:%d/health", port)}
	modules := append(append([]registry.Module{}, coreModules...), registry.ModuleFunc(func(r *registry.Registry) error {
		return r.Add(poller)
	}))
	result := SetupAppTest(t, Config{TrainerSteps: 2, HealthcheckPort: port},
		map[string]string{"ippo.hcl": ippoHCL}, modules)
	require.NoError(t, result.Err)

	// Act
	err := result.App.Run(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"status": "ok", "system": "ippo"}, poller.body)
	assert.Contains(t, result.LogOutput.String(), "Shutting down health check server")

	_, err = http.Get(poller.url)
	assert.Error(t, err, "server should be closed after Run")
}

func TestRun_HealthCheckTeardownRepeated(t *testing.T) {
	for i := 0; i < 20; i++ {
		// Arrange
		result := SetupAppTest(t, Config{HealthcheckPort: freePort(t)}, map[string]string{"ippo.hcl": ippoHCL}, nil)
		require.NoError(t, result.Err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// Act
		err := result.App.Run(ctx)

		// Assert
		require.NoError(t, err, "run %d", i)
	}
}
