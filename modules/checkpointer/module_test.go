package checkpointer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/paramserver"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/parameterserver"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newComponent(dir string, clk *clock) *Component {
	c := New()
	c.cfg.CheckpointDir = dir
	c.cfg.MinuteInterval = 1
	c.now = clk.now
	return c
}

func newServer(t *testing.T, c *Component) *paramserver.Server {
	t.Helper()
	ps := parameterserver.New()
	srv, err := paramserver.New(context.Background(), store.NewParameterServer(uuid.Nil), []component.Component{ps, c})
	require.NoError(t, err)
	srv.Store().NonBlockingSleep = 0
	return srv
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "nested", FileName)
	want := &Snapshot{
		Version:    snapshotVersion,
		RunID:      "run",
		SavedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Parameters: map[string][]float64{"w": {0.5, -1}},
	}

	// Act
	require.NoError(t, Save(path, want))
	got, err := Load(path)

	// Assert
	require.NoError(t, err)
	assert.True(t, want.SavedAt.Equal(got.SavedAt))
	got.SavedAt = want.SavedAt
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, &Snapshot{Version: 99}))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported checkpoint version 99")
}

func TestCheckpoint_SavesOnIntervalAndRestores(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	srv := newServer(t, newComponent(dir, clk))
	ctx := context.Background()
	require.NoError(t, srv.AddToParameters(ctx, store.Parameters{parameterserver.TrainerSteps: {7}}))

	// Act: inside the interval nothing is written.
	require.NoError(t, srv.Step(ctx))
	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))

	clk.t = clk.t.Add(2 * time.Minute)
	require.NoError(t, srv.Step(ctx))

	// Assert: a fresh server picks up the saved counters.
	restored := newServer(t, newComponent(dir, clk))
	assert.Equal(t, []float64{7}, restored.Store().Parameters[parameterserver.TrainerSteps])
	assert.Equal(t, []float64{0}, restored.Store().Parameters[parameterserver.ExecutorSteps])
}

func TestCheckpoint_SavesOnTermination(t *testing.T) {
	dir := t.TempDir()
	clk := &clock{t: time.Now()}
	srv := newServer(t, newComponent(dir, clk))
	srv.Store().Terminate = true

	require.NoError(t, srv.Step(context.Background()))

	snap, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, srv.Store().RunID.String(), snap.RunID)
}

func TestCheckpoint_DisabledWithoutDir(t *testing.T) {
	c := New()
	s := store.NewParameterServer(uuid.Nil)

	require.NoError(t, c.OnParameterServerInitCheckpointer(context.Background(), s))
	require.NoError(t, c.OnParameterServerRunLoopCheckpoint(context.Background(), s))

	assert.Empty(t, s.Keys())
}
