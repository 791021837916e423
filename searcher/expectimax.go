package searcher

import (
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Expectimax models every ghost as moving uniformly at random.
type Expectimax struct {
	Searcher
}

func NewExpectimax(options ...Option) *Expectimax {
	return &Expectimax{Searcher: newSearcher(options)}
}

func (e *Expectimax) ChooseAction(state game.State) game.Action {
	e.metrics.Start(e.depth)
	d := e.expectimax(state, game.PacmanIndex, 0)
	log.Debug().Str("agent", "expectimax").Float64("value", d.value).Str("action", string(d.action)).Msg("chose action")
	return d.move()
}

func (e *Expectimax) Value(state game.State) float64 {
	return e.expectimax(state, game.PacmanIndex, 0).value
}

func (e *Expectimax) expectimax(state game.State, agent, depth int) decision {
	agent, depth = advance(state, agent, depth)
	actions := state.LegalActions(agent)
	if depth == e.depth || len(actions) == 0 {
		return e.leaf(state)
	}

	child := func(s game.State) decision { return e.expectimax(s, agent+1, depth) }
	if agent == game.PacmanIndex {
		return optimize(state, agent, actions, greater, child)
	}
	// The action of a chance node is never played, it only reports what a ghost might do
	return e.average(values(state, agent, actions, child), actions)
}
