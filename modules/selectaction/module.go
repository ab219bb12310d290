package selectaction

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/marlgrid/internal/registry"
	"github.com/vk/marlgrid/internal/store"
	"github.com/vk/marlgrid/modules/executorinit"
)

// Name is the component name.
const Name = "executor_select_action"

// ErrNoPolicy is returned when an action is requested but the executor has
// no policy.
var ErrNoPolicy = errors.New("executor has no policy")

// Module implements the registry.Module interface for this package.
type Module struct{}

// FeedForward selects one action per agent with a stateless policy.
type FeedForward struct{}

func (FeedForward) Name() string { return Name }

func (FeedForward) Config() any { return nil }

// RequiredComponents lists executor_init, which prepares the store.
func (FeedForward) RequiredComponents() []string {
	return []string{executorinit.Name}
}

// OnExecutionSelectActions selects an action for every observed agent, in
// agent name order.
func (FeedForward) OnExecutionSelectActions(ctx context.Context, s *store.Executor) error {
	if s.SelectAction == nil {
		return errors.New("executor store has no SelectAction")
	}
	agents := make([]string, 0, len(s.Observations))
	for agent := range s.Observations {
		agents = append(agents, agent)
	}
	sort.Strings(agents)

	for _, agent := range agents {
		action, info, err := s.SelectAction(ctx, agent, s.Observations[agent])
		if err != nil {
			return fmt.Errorf("agent '%s': %w", agent, err)
		}
		s.ActionsInfo[agent] = action
		s.PoliciesInfo[agent] = info
	}
	return nil
}

// OnExecutionSelectActionCompute asks the policy for the current agent's
// action.
func (FeedForward) OnExecutionSelectActionCompute(ctx context.Context, s *store.Executor) error {
	if s.Policy == nil {
		return ErrNoPolicy
	}
	action, info, err := s.Policy.Act(ctx, s.Agent, s.Observation)
	if err != nil {
		return err
	}
	if legal := s.Observation.LegalActions; len(legal) > 0 && (action < 0 || action >= len(legal) || !legal[action]) {
		return fmt.Errorf("policy chose illegal action %d for agent '%s'", action, s.Agent)
	}
	s.ActionInfo = action
	s.PolicyInfo = info
	return nil
}

// Register adds the component to r.
func (m *Module) Register(r *registry.Registry) error {
	return r.Add(FeedForward{})
}
