package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/ctxlog"
	"github.com/vk/marlgrid/internal/store"
)

func testContext(buf *bytes.Buffer) context.Context {
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestOnTrainingStepEnd_EveryN(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	ctx := testContext(&buf)
	c := New()
	c.cfg.EveryNSteps = 2
	s := store.NewTrainer(uuid.Nil, "trainer")

	// Act
	for s.Steps = 0; s.Steps < 4; s.Steps++ {
		require.NoError(t, c.OnTrainingStepEnd(ctx, s))
	}

	// Assert
	assert.Equal(t, 2, strings.Count(buf.String(), "Trainer progress."))
	assert.Contains(t, buf.String(), "steps=4")
}

func TestOnBuildingInitEnd(t *testing.T) {
	var buf bytes.Buffer
	s := store.NewBuilder(uuid.Nil, "ippo")
	s.ComponentNames = []string{"executor_init"}

	require.NoError(t, New().OnBuildingInitEnd(testContext(&buf), s))

	assert.Contains(t, buf.String(), "system=ippo")
	assert.Contains(t, buf.String(), s.RunID.String())
}

func TestDisabledWhenZero(t *testing.T) {
	var buf bytes.Buffer
	c := New()
	c.cfg.EveryNSteps = 0
	s := store.NewExecutor(uuid.Nil, "executor_0", false)
	s.Steps = 100

	require.NoError(t, c.OnExecutionUpdateEnd(testContext(&buf), s))

	assert.Empty(t, buf.String())
}
