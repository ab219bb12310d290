package selectaction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/marlgrid/internal/component"
	"github.com/vk/marlgrid/internal/executor"
	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/executorinit"
)

func argmax(_ context.Context, _ string, obs store.Observation) (int, map[string]float64, error) {
	best := 0
	for i, v := range obs.Values {
		if v > obs.Values[best] {
			best = i
		}
	}
	return best, map[string]float64{"q": obs.Values[best]}, nil
}

func newExecutor(t *testing.T, policy store.Policy) *executor.Executor {
	t.Helper()
	s := store.NewExecutor(uuid.Nil, "executor_0", false)
	s.Policy = policy
	e, err := executor.New(context.Background(), s, []component.Component{executorinit.New(), FeedForward{}})
	require.NoError(t, err)
	return e
}

func TestSelectActions_AllAgents(t *testing.T) {
	// Arrange
	e := newExecutor(t, store.PolicyFunc(argmax))
	obs := map[string]store.Observation{
		"agent_0": {Values: []float64{0.1, 0.9}},
		"agent_1": {Values: []float64{0.7, 0.2}},
	}

	// Act
	actions, err := e.SelectActions(context.Background(), obs)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"agent_0": 1, "agent_1": 0}, actions)
	assert.Equal(t, map[string]map[string]float64{
		"agent_0": {"q": 0.9},
		"agent_1": {"q": 0.7},
	}, e.Store().PoliciesInfo)
}

func TestSelectAction_IllegalAction(t *testing.T) {
	e := newExecutor(t, store.PolicyFunc(argmax))

	_, _, err := e.SelectAction(context.Background(), "agent_0", store.Observation{
		Values:       []float64{0, 1},
		LegalActions: []bool{true, false},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal action 1")
}

func TestSelectAction_NoPolicy(t *testing.T) {
	e := newExecutor(t, nil)

	_, _, err := e.SelectAction(context.Background(), "agent_0", store.Observation{})

	require.ErrorIs(t, err, ErrNoPolicy)
}

func TestRequiresExecutorInit(t *testing.T) {
	r := registry.New()
	require.NoError(t, (&Module{}).Register(r))

	err := r.Validate(context.Background())

	require.ErrorIs(t, err, registry.ErrMissingRequirement)
	assert.Contains(t, err.Error(), executorinit.Name)
}
