package search

import (
	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Agent plans a path to the goal on its first move and then follows it.
type Agent struct {
	algorithm Algorithm[game.Position]
	heuristic Heuristic[game.Position]
	collector metrics.Collector
	plan      []game.Action
	planned   bool
	step      int
}

type AgentOption func(*Agent)

func WithMetrics(c metrics.Collector) AgentOption {
	return func(a *Agent) {
		a.collector = c
	}
}

// NewAgent looks up the algorithm and heuristic by name.
func NewAgent(algorithm, heuristic string, opts ...AgentOption) (*Agent, error) {
	alg, err := AlgorithmByName[game.Position](algorithm)
	if err != nil {
		return nil, err
	}
	h, err := HeuristicByName(heuristic)
	if err != nil {
		return nil, err
	}

	a := &Agent{
		algorithm: alg,
		heuristic: h,
		collector: metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// ChooseAction replays the plan, stopping once it is used up or when no path exists.
func (a *Agent) ChooseAction(state game.State) game.Action {
	if !a.planned {
		gs, ok := state.(*game.GameState)
		if !ok {
			panic("unexpected state type")
		}
		problem := NewPositionProblem(gs, WithProblemMetrics(a.collector))
		plan, found := a.algorithm(problem, a.heuristic)
		log.Info().Msgf("Path found with total cost of %g in %d expansions (found: %v)",
			problem.CostOfActions(plan), problem.Expanded(), found)
		a.plan = plan
		a.planned = true
	}

	if a.step >= len(a.plan) {
		return game.Stop
	}
	action := a.plan[a.step]
	a.step++
	return action
}

// Plan returns the planned actions, nil before the first move.
func (a *Agent) Plan() []game.Action {
	return a.plan
}
