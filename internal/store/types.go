package store

import (
	"context"
	"sort"
)

// Parameters are named numeric vectors held by the parameter server.
type Parameters map[string][]float64

// Clone returns a deep copy of p.
func (p Parameters) Clone() Parameters {
	if p == nil {
		return nil
	}
	out := make(Parameters, len(p))
	for k, v := range p {
		out[k] = append([]float64(nil), v...)
	}
	return out
}

// Names returns the parameter names, sorted.
func (p Parameters) Names() []string {
	names := make([]string, 0, len(p))
	for k := range p {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// ParameterClient is the view executors and trainers have of the parameter
// server.
type ParameterClient interface {
	GetParameters(ctx context.Context, names ...string) (Parameters, error)
	SetParameters(ctx context.Context, params Parameters) error
	AddToParameters(ctx context.Context, params Parameters) error
}

// Observation is what a single agent sees at one step.
type Observation struct {
	Values       []float64
	LegalActions []bool
}

// Policy chooses an action for one agent. Implementations are supplied by
// the user; the framework ships none.
type Policy interface {
	Act(ctx context.Context, agent string, obs Observation) (action int, info map[string]float64, err error)
}

// PolicyFunc adapts a function to the Policy interface.
type PolicyFunc func(ctx context.Context, agent string, obs Observation) (int, map[string]float64, error)

// Act calls f.
func (f PolicyFunc) Act(ctx context.Context, agent string, obs Observation) (int, map[string]float64, error) {
	return f(ctx, agent, obs)
}

// Timestep is one transition returned by an Environment.
type Timestep struct {
	Observations map[string]Observation
	Rewards      map[string]float64
	Last         bool
}

// Environment is the multi-agent environment an executor acts in.
type Environment interface {
	Reset(ctx context.Context) (Timestep, error)
	Step(ctx context.Context, actions map[string]int) (Timestep, error)
}

// EnvironmentFactory creates one environment per executor.
type EnvironmentFactory func(evaluation bool) (Environment, error)
