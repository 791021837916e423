package search

import (
	"fmt"

	"pacman/frontier"
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Successor is one step out of a state.
type Successor[S any] struct {
	State  S
	Action game.Action
	Cost   float64
}

// Problem is a single-agent search problem over comparable states.
type Problem[S comparable] interface {
	StartState() S
	IsGoal(state S) bool
	Successors(state S) []Successor[S]
	// CostOfActions returns the total cost of a sequence of actions from the start state.
	CostOfActions(actions []game.Action) float64
}

// Heuristic estimates the remaining cost from a state to the nearest goal.
type Heuristic[S comparable] func(state S, problem Problem[S]) float64

func NullHeuristic[S comparable](S, Problem[S]) float64 {
	return 0
}

type node[S any] struct {
	state S
	path  []game.Action
	cost  float64
}

// DepthFirst expands the deepest node first.
func DepthFirst[S comparable](problem Problem[S]) ([]game.Action, bool) {
	return graphSearch(problem, frontier.NewStack[node[S]]())
}

// BreadthFirst expands the shallowest node first.
func BreadthFirst[S comparable](problem Problem[S]) ([]game.Action, bool) {
	return graphSearch(problem, frontier.NewQueue[node[S]]())
}

// UniformCost expands the node with the lowest path cost first.
func UniformCost[S comparable](problem Problem[S]) ([]game.Action, bool) {
	return graphSearch(problem, frontier.NewPriorityQueueFunc(func(n node[S]) float64 {
		return n.cost
	}))
}

// AStar expands the node with the lowest path cost plus heuristic first.
func AStar[S comparable](problem Problem[S], heuristic Heuristic[S]) ([]game.Action, bool) {
	if heuristic == nil {
		heuristic = NullHeuristic[S]
	}
	return graphSearch(problem, frontier.NewPriorityQueueFunc(func(n node[S]) float64 {
		return n.cost + heuristic(n.state, problem)
	}))
}

// graphSearch tests for the goal when a node is popped and expands each state at most once.
// The same state may sit in the frontier several times; later copies are skipped on pop.
func graphSearch[S comparable](problem Problem[S], fringe frontier.Frontier[node[S]]) ([]game.Action, bool) {
	expanded := make(map[S]struct{})
	fringe.Push(node[S]{state: problem.StartState(), path: []game.Action{}})

	for !fringe.IsEmpty() {
		n := fringe.Pop()
		if problem.IsGoal(n.state) {
			log.Debug().Int("expanded", len(expanded)).Int("length", len(n.path)).Float64("cost", n.cost).Msg("search found a path")
			return n.path, true
		}
		if _, ok := expanded[n.state]; ok {
			continue
		}
		expanded[n.state] = struct{}{}

		for _, s := range problem.Successors(n.state) {
			path := make([]game.Action, len(n.path)+1)
			copy(path, n.path)
			path[len(n.path)] = s.Action
			fringe.Push(node[S]{state: s.State, path: path, cost: n.cost + s.Cost})
		}
	}

	log.Debug().Int("expanded", len(expanded)).Msg("search exhausted the frontier")
	return nil, false
}

// Algorithm is a search strategy. Uninformed strategies ignore the heuristic.
type Algorithm[S comparable] func(problem Problem[S], heuristic Heuristic[S]) ([]game.Action, bool)

func AlgorithmByName[S comparable](name string) (Algorithm[S], error) {
	switch name {
	case "dfs", "depthFirstSearch":
		return func(p Problem[S], _ Heuristic[S]) ([]game.Action, bool) { return DepthFirst(p) }, nil
	case "bfs", "breadthFirstSearch":
		return func(p Problem[S], _ Heuristic[S]) ([]game.Action, bool) { return BreadthFirst(p) }, nil
	case "ucs", "uniformCostSearch":
		return func(p Problem[S], _ Heuristic[S]) ([]game.Action, bool) { return UniformCost(p) }, nil
	case "astar", "aStarSearch":
		return AStar[S], nil
	}
	return nil, fmt.Errorf("unknown search algorithm %q", name)
}
