package engine

import (
	"fmt"
	"time"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/gamemaster"
	"pacman/meta"

	"github.com/rs/zerolog/log"
)

// Agent picks the next move of one agent in the game.
type Agent interface {
	ChooseAction(state game.State) game.Action
}

// Finisher is implemented by agents that want to see how a game ended.
type Finisher interface {
	Final(state game.State)
}

type Result struct {
	Score    float64
	Win      bool
	Moves    int // Pacman moves
	Duration time.Duration
}

type Option func(e *Engine)

func WithMaxMoves(moves int) Option {
	return func(e *Engine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		if c != nil {
			e.metrics = c
		}
	}
}

type Engine struct {
	master   *gamemaster.Local
	agents   []Agent
	maxMoves int
	metrics  metrics.Collector
}

// New sets up a game with Pacman as agent 0 followed by the ghosts in index order.
func New(state game.State, pacman Agent, ghosts []Agent, options ...Option) *Engine {
	if len(ghosts)+1 != state.NumAgents() {
		panic(fmt.Sprintf("%d ghost agents for %d ghosts", len(ghosts), state.NumAgents()-1))
	}
	e := &Engine{
		master:   gamemaster.NewLocal(state),
		agents:   append([]Agent{pacman}, ghosts...),
		maxMoves: meta.MAX_MOVES,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays until Pacman wins or loses, or has made the maximum number of moves.
func (e *Engine) Run() (Result, error) {
	start := time.Now()
	moves := 0
	for !e.master.IsOver() && moves < e.maxMoves {
		agent := e.master.Turn()
		state := e.master.State()
		if len(state.LegalActions(agent)) == 0 {
			if err := e.master.Pass(agent); err != nil {
				return Result{}, err
			}
			continue
		}

		action := e.agents[agent].ChooseAction(state)
		if err := e.master.Play(agent, action); err != nil {
			return Result{}, fmt.Errorf("agent %d: %w", agent, err)
		}
		if agent == game.PacmanIndex {
			moves++
		}
	}

	final := e.master.State()
	for _, agent := range e.agents {
		if f, ok := agent.(Finisher); ok {
			f.Final(final)
		}
	}
	e.metrics.AddEpisode()

	result := Result{
		Score:    final.Score(),
		Win:      final.IsWin(),
		Moves:    moves,
		Duration: time.Since(start),
	}
	switch {
	case final.IsWin():
		log.Debug().Msgf("Pacman emerges victorious! Score: %g", result.Score)
	case final.IsLose():
		log.Debug().Msgf("Pacman died! Score: %g", result.Score)
	default:
		log.Debug().Msgf("Stopped after %d moves. Score: %g", moves, result.Score)
	}
	return result, nil
}

func (e *Engine) State() game.State {
	return e.master.State()
}
