package searcher

import (
	"pacman/game"

	"github.com/rs/zerolog/log"
)

// Reflex looks a single Pacman move ahead and picks randomly among the best moves.
// Depth and the state evaluation are ignored.
type Reflex struct {
	Searcher
	score func(game.State, game.Action) float64
}

func NewReflex(options ...Option) *Reflex {
	return &Reflex{Searcher: newSearcher(options), score: game.EvaluateReflex}
}

func (r *Reflex) ChooseAction(state game.State) game.Action {
	actions := state.LegalActions(game.PacmanIndex)
	if len(actions) == 0 {
		return game.Stop
	}

	var best []game.Action
	bestScore := 0.0
	for i, a := range actions {
		score := r.score(state, a)
		r.metrics.AddNode()
		switch {
		case i == 0 || score > bestScore:
			best, bestScore = []game.Action{a}, score
		case score == bestScore:
			best = append(best, a)
		}
	}

	action := best[r.rng.Intn(len(best))]
	log.Debug().Str("agent", "reflex").Float64("value", bestScore).Str("action", string(action)).Msg("chose action")
	return action
}
