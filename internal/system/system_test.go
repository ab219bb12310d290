package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/binding"
	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/config"
	"github.com/vk/marlgrid/internal/launcher"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

type optimiserConfig struct {
	LearningRate float64 `config:"learning_rate"`
	Shared       int     `config:"shared"`
}

type optimiser struct{ cfg *optimiserConfig }

func (o *optimiser) Name() string { return "optimiser" }
func (o *optimiser) Config() any  { return o.cfg }

type bufferConfig struct {
	Size   int `config:"size"`
	Shared int `config:"shared"`
}

type buffer struct {
	cfg      *bufferConfig
	requires []string
}

func (b *buffer) Name() string                 { return "buffer" }
func (b *buffer) Config() any                  { return b.cfg }
func (b *buffer) RequiredComponents() []string { return b.requires }

func components(cs ...component.Component) registry.Module {
	return registry.ModuleFunc(func(r *registry.Registry) error {
		for _, c := range cs {
			if err := r.Add(c); err != nil {
				return err
			}
		}
		return nil
	})
}

func newSystem(t *testing.T, cs ...component.Component) *System {
	t.Helper()
	s, err := New(context.Background(), "test", []registry.Module{components(cs...)}, WithConverter(binding.NewConverter()), WithNumExecutors(0))
	require.NoError(t, err)
	return s
}

func TestNew_DuplicateComponentFails(t *testing.T) {
	_, err := New(context.Background(), "test", []registry.Module{
		components(&optimiser{cfg: &optimiserConfig{}}),
		components(&optimiser{cfg: &optimiserConfig{}}),
	})

	require.ErrorIs(t, err, registry.ErrDuplicateComponent)
}

func TestAddAndUpdate(t *testing.T) {
	// Arrange
	s := newSystem(t, &optimiser{cfg: &optimiserConfig{}}, &buffer{cfg: &bufferConfig{}})
	replacement := &optimiser{cfg: &optimiserConfig{LearningRate: 0.5}}

	// Act
	errAdd := s.Add(&optimiser{cfg: &optimiserConfig{}})
	errUpdate := s.Update(replacement)

	// Assert
	var conflict *registry.ConflictError
	require.ErrorAs(t, errAdd, &conflict)
	assert.Equal(t, "optimiser", conflict.Name)
	require.NoError(t, errUpdate)
	assert.Equal(t, []string{"optimiser", "buffer"}, s.Registry().Names())
	got, _ := s.Registry().Get("optimiser")
	assert.Same(t, replacement, got)
}

func TestConfigure_DistributesParameters(t *testing.T) {
	// Arrange
	opt := &optimiser{cfg: &optimiserConfig{}}
	buf := &buffer{cfg: &bufferConfig{}}
	s := newSystem(t, opt, buf)
	cfg := config.NewModel().System("test")
	require.NoError(t, cfg.AddParameter("learning_rate", cty.NumberFloatVal(0.01)))
	require.NoError(t, cfg.AddParameter("size", cty.NumberIntVal(128)))

	// Act
	err := s.Configure(context.Background(), cfg)

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 0.01, opt.cfg.LearningRate, 1e-9)
	assert.Equal(t, 128, buf.cfg.Size)
}

func TestConfigure_ComponentBlockWinsOverParameter(t *testing.T) {
	buf := &buffer{cfg: &bufferConfig{}}
	s := newSystem(t, buf)
	cfg := config.NewModel().System("test")
	require.NoError(t, cfg.AddParameter("size", cty.NumberIntVal(1)))
	require.NoError(t, cfg.AddComponent("buffer", map[string]cty.Value{"size": cty.NumberIntVal(2)}))

	require.NoError(t, s.Configure(context.Background(), cfg))

	assert.Equal(t, 2, buf.cfg.Size)
}

func TestConfigure_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		arrange func(cfg *config.System)
		wantErr error
	}{
		{
			name: "unknown parameter",
			arrange: func(cfg *config.System) {
				_ = cfg.AddParameter("nope", cty.True)
			},
			wantErr: ErrUnknownParameter,
		},
		{
			name: "ambiguous parameter",
			arrange: func(cfg *config.System) {
				_ = cfg.AddParameter("shared", cty.NumberIntVal(1))
			},
			wantErr: ErrAmbiguousParameter,
		},
		{
			name: "unknown component block",
			arrange: func(cfg *config.System) {
				_ = cfg.AddComponent("missing", nil)
			},
			wantErr: registry.ErrComponentNotFound,
		},
		{
			name: "component without config",
			arrange: func(cfg *config.System) {
				_ = cfg.AddComponent("recorder", map[string]cty.Value{"x": cty.True})
			},
			wantErr: ErrNotConfigurable,
		},
		{
			name: "unknown field in block",
			arrange: func(cfg *config.System) {
				_ = cfg.AddComponent("buffer", map[string]cty.Value{"x": cty.True})
			},
			wantErr: binding.ErrUnknownField,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSystem(t,
				&optimiser{cfg: &optimiserConfig{}},
				&buffer{cfg: &bufferConfig{}},
				testutil.NewRecorder("recorder"),
			)
			cfg := config.NewModel().System("test")
			tc.arrange(cfg)

			err := s.Configure(context.Background(), cfg)

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestConfigure_AmbiguousParameterNamesOwners(t *testing.T) {
	s := newSystem(t, &optimiser{cfg: &optimiserConfig{}}, &buffer{cfg: &bufferConfig{}})
	cfg := config.NewModel().System("test")
	require.NoError(t, cfg.AddParameter("shared", cty.NumberIntVal(1)))

	err := s.Configure(context.Background(), cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimiser, buffer")
}

func TestBuild_MissingRequirement(t *testing.T) {
	s := newSystem(t, &buffer{cfg: &bufferConfig{}, requires: []string{"optimiser"}})

	_, _, err := s.Build(context.Background())

	require.ErrorIs(t, err, registry.ErrMissingRequirement)
}

func TestLaunch(t *testing.T) {
	rec := testutil.NewRecorder("recorder")
	s := newSystem(t, rec)

	err := s.Launch(context.Background(), launcher.Options{MaxTrainerSteps: 2})

	require.NoError(t, err)
	assert.Contains(t, rec.Hooks(), "on_training_step_end")
	assert.Contains(t, rec.Hooks(), "on_building_launch")
}

type closer struct {
	name   string
	err    error
	closed bool
}

func (c *closer) Name() string { return c.name }
func (c *closer) Config() any  { return nil }
func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestClose_ClosesAllAndJoinsErrors(t *testing.T) {
	a := &closer{name: "a", err: assert.AnError}
	b := &closer{name: "b"}
	s := newSystem(t, a, b)

	err := s.Close()

	require.ErrorIs(t, err, assert.AnError)
	assert.True(t, a.closed)
	assert.True(t, b.closed)
}
