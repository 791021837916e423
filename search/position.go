package search

import (
	"fmt"
	"math"

	"pacman/experiments/metrics"
	"pacman/game"
)

// IllegalCost is the cost of an action sequence that runs into a wall.
const IllegalCost = 999999

// PositionProblem searches for a path from Pacman's position to a goal cell of the maze.
type PositionProblem struct {
	layout    *game.Layout
	start     game.Position
	goal      game.Position
	cost      func(game.Position) float64
	collector metrics.Collector
	expanded  int
}

type PositionOption func(*PositionProblem)

func WithGoal(goal game.Position) PositionOption {
	return func(p *PositionProblem) {
		p.goal = goal
	}
}

// WithCostFn sets the cost of stepping onto a cell. Steps cost 1 by default.
func WithCostFn(cost func(game.Position) float64) PositionOption {
	return func(p *PositionProblem) {
		p.cost = cost
	}
}

func WithProblemMetrics(c metrics.Collector) PositionOption {
	return func(p *PositionProblem) {
		p.collector = c
	}
}

// NewPositionProblem starts at Pacman's position. The goal defaults to the only pellet
// when exactly one is left, and to (1, 1) otherwise.
func NewPositionProblem(state *game.GameState, opts ...PositionOption) *PositionProblem {
	p := &PositionProblem{
		layout:    state.Layout(),
		start:     state.PacmanPosition(),
		goal:      game.Position{X: 1, Y: 1},
		cost:      func(game.Position) float64 { return 1 },
		collector: metrics.NewDummyCollector(),
	}
	if food := state.Food(); len(food) == 1 {
		p.goal = food[0]
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.layout.IsWall(p.goal) {
		panic(fmt.Sprintf("goal %v is a wall", p.goal))
	}
	return p
}

func (p *PositionProblem) StartState() game.Position {
	return p.start
}

func (p *PositionProblem) Goal() game.Position {
	return p.goal
}

func (p *PositionProblem) IsGoal(state game.Position) bool {
	return state == p.goal
}

func (p *PositionProblem) Successors(state game.Position) []Successor[game.Position] {
	p.expanded++
	p.collector.AddExpansion()

	actions := p.layout.Neighbours(state)
	successors := make([]Successor[game.Position], 0, len(actions))
	for _, a := range actions {
		next := state.Move(a)
		successors = append(successors, Successor[game.Position]{State: next, Action: a, Cost: p.cost(next)})
	}
	return successors
}

func (p *PositionProblem) CostOfActions(actions []game.Action) float64 {
	if actions == nil {
		return IllegalCost
	}
	pos := p.start
	cost := 0.0
	for _, a := range actions {
		pos = pos.Move(a)
		if p.layout.IsWall(pos) {
			return IllegalCost
		}
		cost += p.cost(pos)
	}
	return cost
}

// Expanded counts the calls to Successors.
func (p *PositionProblem) Expanded() int {
	return p.expanded
}

func ManhattanHeuristic(state game.Position, problem Problem[game.Position]) float64 {
	pp, ok := problem.(*PositionProblem)
	if !ok {
		panic("unexpected problem type")
	}
	return float64(game.Manhattan(state, pp.goal))
}

func EuclideanHeuristic(state game.Position, problem Problem[game.Position]) float64 {
	pp, ok := problem.(*PositionProblem)
	if !ok {
		panic("unexpected problem type")
	}
	return math.Hypot(float64(state.X-pp.goal.X), float64(state.Y-pp.goal.Y))
}

func HeuristicByName(name string) (Heuristic[game.Position], error) {
	switch name {
	case "", "null", "nullHeuristic":
		return NullHeuristic[game.Position], nil
	case "manhattan", "manhattanHeuristic":
		return ManhattanHeuristic, nil
	case "euclidean", "euclideanHeuristic":
		return EuclideanHeuristic, nil
	}
	return nil, fmt.Errorf("unknown heuristic %q", name)
}
