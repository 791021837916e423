package searcher

import (
	"pacman/game"
	"pacman/utils"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func greater(a, b float64) bool { return a > b }
func less(a, b float64) bool    { return a < b }

// optimize returns the first action whose child value is best according to better.
func optimize(state game.State, agent int, actions []game.Action, better func(a, b float64) bool,
	child func(game.State) decision) decision {
	var best decision
	for i, a := range actions {
		v := child(state.Successor(agent, a)).value
		if i == 0 || better(v, best.value) {
			best = decision{value: v, action: a}
		}
	}
	return best
}

// values evaluates every child of state in action order.
func values(state game.State, agent int, actions []game.Action, child func(game.State) decision) []float64 {
	out := make([]float64, len(actions))
	for i, a := range actions {
		out[i] = child(state.Successor(agent, a)).value
	}
	return out
}

// average is the value of a chance node: the mean over its children with a random action.
func (s *Searcher) average(values []float64, actions []game.Action) decision {
	return decision{
		value:  stat.Mean(values, nil),
		action: actions[s.rng.Intn(len(actions))],
	}
}

// averageWithoutBest drops the first best child before averaging, unless it is the only one.
func (s *Searcher) averageWithoutBest(values []float64, actions []game.Action) decision {
	if len(actions) > 1 {
		i := floats.MaxIdx(values)
		values = utils.RemoveIndex(values, i)
		actions = utils.RemoveIndex(actions, i)
	}
	return s.average(values, actions)
}
