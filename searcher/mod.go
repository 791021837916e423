package searcher

import (
	"fmt"
	"time"

	"pacman/experiments/metrics"
	"pacman/game"

	"golang.org/x/exp/rand"
)

const DefaultDepth = 2

// Agent picks a move for Pacman.
type Agent interface {
	ChooseAction(state game.State) game.Action
}

type Option func(s *Searcher)

// Searcher holds the settings shared by every game-tree search.
// Depth counts full plies: every agent moves once per level.
type Searcher struct {
	depth    int
	evaluate game.Evaluate
	rng      *rand.Rand
	metrics  metrics.Collector
}

func WithDepth(depth int) Option {
	return func(s *Searcher) {
		if depth < 1 {
			panic(fmt.Sprintf("search depth must be positive, got %d", depth))
		}
		s.depth = depth
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Searcher) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

// WithRand sets the source of the random choices made at chance nodes.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) {
		if rng != nil {
			s.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithMetrics(c metrics.Collector) Option {
	return func(s *Searcher) {
		if c != nil {
			s.metrics = c
		}
	}
}

func newSearcher(options []Option) Searcher {
	s := Searcher{ // Default values
		depth:    DefaultDepth,
		evaluate: game.EvaluateScore,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// New builds one of minimax, alphabeta, expectimax, hybrid or reflex.
func New(name string, options ...Option) (Agent, error) {
	switch name {
	case "minimax":
		return NewMinimax(options...), nil
	case "alphabeta":
		return NewAlphaBeta(options...), nil
	case "expectimax":
		return NewExpectimax(options...), nil
	case "hybrid":
		return NewHybrid(options...), nil
	case "reflex":
		return NewReflex(options...), nil
	}
	return nil, fmt.Errorf("unknown search agent %q", name)
}

type decision struct {
	value  float64
	action game.Action
}

// advance moves the turn to the next agent, starting a new level after the last one.
func advance(state game.State, agent, depth int) (int, int) {
	if agent >= state.NumAgents() {
		return game.PacmanIndex, depth + 1
	}
	return agent, depth
}

func (s *Searcher) leaf(state game.State) decision {
	s.metrics.AddNode()
	return decision{value: s.evaluate(state)}
}

func (d decision) move() game.Action {
	if d.action == "" {
		return game.Stop
	}
	return d.action
}
