package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Builder is the store shared by building hooks.
type Builder struct {
	Base

	SystemName     string
	ComponentNames []string
	NumExecutors   int

	// ExecutorID and IsEvaluator describe the executor currently being
	// built. They are only meaningful inside executor building hooks.
	ExecutorID  string
	IsEvaluator bool
	TrainerID   string

	// ParameterServer is set once the parameter server has been built.
	ParameterServer ParameterClient

	// Set by executor_parameter_client and trainer_parameter_client hooks.
	ExecutorParameterClient ParameterClient
	TrainerParameterClient  ParameterClient

	Policy             Policy
	EnvironmentFactory EnvironmentFactory
}

// NewBuilder creates a builder store. A nil runID gets a fresh one.
func NewBuilder(runID uuid.UUID, systemName string) *Builder {
	s := &Builder{SystemName: systemName}
	s.init(runID, ScopeBuilder)
	return s
}

// Executor is the store shared by execution hooks.
type Executor struct {
	Base

	ExecutorID  string
	IsEvaluator bool

	// Interval holds update periods keyed by name, e.g.
	// "executor_parameter_update_period".
	Interval map[string]int

	Policy          Policy
	ParameterClient ParameterClient
	Parameters      Parameters

	// Observations for all agents at the current step.
	Observations map[string]Observation
	Rewards      map[string]float64
	Last         bool

	// Agent and Observation describe the single agent inside select_action
	// hooks.
	Agent       string
	Observation Observation
	ActionInfo  int
	PolicyInfo  map[string]float64

	ActionsInfo  map[string]int
	PoliciesInfo map[string]map[string]float64

	Steps int

	// SelectAction is installed by the executor process and runs the
	// select_action hook sequence for one agent.
	SelectAction func(ctx context.Context, agent string, obs Observation) (int, map[string]float64, error)
}

// NewExecutor creates an executor store.
func NewExecutor(runID uuid.UUID, executorID string, evaluator bool) *Executor {
	s := &Executor{ExecutorID: executorID, IsEvaluator: evaluator}
	s.init(runID, ScopeExecutor)
	return s
}

// Trainer is the store shared by training hooks.
type Trainer struct {
	Base

	TrainerID       string
	Steps           int
	ParameterClient ParameterClient
	Parameters      Parameters
	Metrics         map[string]float64
}

// NewTrainer creates a trainer store.
func NewTrainer(runID uuid.UUID, trainerID string) *Trainer {
	s := &Trainer{TrainerID: trainerID, Metrics: map[string]float64{}}
	s.init(runID, ScopeTrainer)
	return s
}

// ParameterServer is the store shared by parameter server hooks.
type ParameterServer struct {
	Base

	Parameters Parameters

	// Request and result slots for the get/set/add_to hook sequences.
	ParamNames  []string
	GetResult   Parameters
	SetParams   Parameters
	AddToParams Parameters

	NonBlockingSleep time.Duration

	// Terminate is set by run_loop_termination hooks to stop the loop.
	Terminate bool
}

// NewParameterServer creates a parameter server store.
func NewParameterServer(runID uuid.UUID) *ParameterServer {
	s := &ParameterServer{Parameters: Parameters{}}
	s.init(runID, ScopeParameterServer)
	return s
}
