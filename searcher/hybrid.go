package searcher

import (
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Hybrid mixes ghost models: odd ghosts minimize like in minimax, even ghosts
// never play their best move for Pacman and pick uniformly among the others.
// This is a variant made for a particular exercise, not a standard algorithm.
type Hybrid struct {
	Searcher
}

func NewHybrid(options ...Option) *Hybrid {
	return &Hybrid{Searcher: newSearcher(options)}
}

func (h *Hybrid) ChooseAction(state game.State) game.Action {
	h.metrics.Start(h.depth)
	d := h.hybrid(state, game.PacmanIndex, 0)
	log.Debug().Str("agent", "hybrid").Float64("value", d.value).Str("action", string(d.action)).Msg("chose action")
	return d.move()
}

func (h *Hybrid) Value(state game.State) float64 {
	return h.hybrid(state, game.PacmanIndex, 0).value
}

func (h *Hybrid) hybrid(state game.State, agent, depth int) decision {
	agent, depth = advance(state, agent, depth)
	actions := state.LegalActions(agent)
	if depth == h.depth || len(actions) == 0 {
		return h.leaf(state)
	}

	child := func(s game.State) decision { return h.hybrid(s, agent+1, depth) }
	switch {
	case agent == game.PacmanIndex:
		return optimize(state, agent, actions, greater, child)
	case agent%2 == 1:
		return optimize(state, agent, actions, less, child)
	}
	return h.averageWithoutBest(values(state, agent, actions, child), actions)
}
