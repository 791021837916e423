package searcher

import (
	"math"

	"pacman/game"

	"github.com/rs/zerolog/log"
)

// AlphaBeta computes the minimax value while skipping branches that cannot change it.
type AlphaBeta struct {
	Searcher
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	return &AlphaBeta{Searcher: newSearcher(options)}
}

func (ab *AlphaBeta) ChooseAction(state game.State) game.Action {
	ab.metrics.Start(ab.depth)
	d := ab.alphaBeta(state, game.PacmanIndex, 0, math.Inf(-1), math.Inf(1))
	log.Debug().Str("agent", "alphabeta").Float64("value", d.value).Str("action", string(d.action)).Msg("chose action")
	return d.move()
}

func (ab *AlphaBeta) Value(state game.State) float64 {
	return ab.alphaBeta(state, game.PacmanIndex, 0, math.Inf(-1), math.Inf(1)).value
}

// alpha is the best value Pacman is already guaranteed on the current path, beta the best for the ghosts.
func (ab *AlphaBeta) alphaBeta(state game.State, agent, depth int, alpha, beta float64) decision {
	agent, depth = advance(state, agent, depth)
	actions := state.LegalActions(agent)
	if depth == ab.depth || len(actions) == 0 {
		return ab.leaf(state)
	}

	if agent == game.PacmanIndex {
		best := decision{value: math.Inf(-1)}
		for i, a := range actions {
			v := ab.alphaBeta(state.Successor(agent, a), agent+1, depth, alpha, beta).value
			if i == 0 || v > best.value {
				best = decision{value: v, action: a}
			}
			if best.value > beta {
				ab.metrics.AddCutoff()
				return best
			}
			alpha = math.Max(alpha, best.value)
		}
		return best
	}

	best := decision{value: math.Inf(1)}
	for i, a := range actions {
		v := ab.alphaBeta(state.Successor(agent, a), agent+1, depth, alpha, beta).value
		if i == 0 || v < best.value {
			best = decision{value: v, action: a}
		}
		if best.value < alpha {
			ab.metrics.AddCutoff()
			return best
		}
		beta = math.Min(beta, best.value)
	}
	return best
}
