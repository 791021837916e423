package searcher

import (
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Minimax assumes every ghost plays the move that is worst for Pacman.
type Minimax struct {
	Searcher
}

func NewMinimax(options ...Option) *Minimax {
	return &Minimax{Searcher: newSearcher(options)}
}

func (m *Minimax) ChooseAction(state game.State) game.Action {
	m.metrics.Start(m.depth)
	d := m.minimax(state, game.PacmanIndex, 0)
	log.Debug().Str("agent", "minimax").Float64("value", d.value).Str("action", string(d.action)).Msg("chose action")
	return d.move()
}

// Value returns the minimax value of state with Pacman to move.
func (m *Minimax) Value(state game.State) float64 {
	return m.minimax(state, game.PacmanIndex, 0).value
}

func (m *Minimax) minimax(state game.State, agent, depth int) decision {
	agent, depth = advance(state, agent, depth)
	actions := state.LegalActions(agent)
	if depth == m.depth || len(actions) == 0 {
		return m.leaf(state)
	}

	child := func(s game.State) decision { return m.minimax(s, agent+1, depth) }
	if agent == game.PacmanIndex {
		return optimize(state, agent, actions, greater, child)
	}
	return optimize(state, agent, actions, less, child)
}
