package engine

import (
	"context"

	"pacman/agent"
	"pacman/game"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// GameFactory sets up the initial state and the ghosts of an episode.
type GameFactory func(episode int) (game.State, []Agent)

// learning feeds a learner the transition between two consecutive Pacman turns.
// The reward is the change in score over that span, ghost moves included.
type learning struct {
	learner agent.Learner
	last    game.State
	action  game.Action
}

func (l *learning) ChooseAction(state game.State) game.Action {
	l.observe(state)
	l.action = l.learner.ChooseAction(state)
	l.last = state
	return l.action
}

func (l *learning) Final(state game.State) {
	l.observe(state)
	l.last = nil
}

func (l *learning) observe(state game.State) {
	if l.last == nil {
		return
	}
	if err := l.learner.Update(l.last, l.action, state, state.Score()-l.last.Score()); err != nil {
		log.Error().Err(err).Msg("failed to learn from transition")
	}
}

// Train plays episodes with learner as Pacman, updating it after every move.
func Train(ctx context.Context, learner agent.Learner, episodes int, newGame GameFactory, options ...Option) ([]Result, error) {
	results := make([]Result, 0, episodes)
	pacman := &learning{learner: learner}
	window := make([]float64, 0, 100)

	for i := 0; i < episodes; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		state, ghosts := newGame(i)
		result, err := New(state, pacman, ghosts, options...).Run()
		if err != nil {
			return results, err
		}
		results = append(results, result)

		window = append(window, result.Score)
		if len(window) == cap(window) || i == episodes-1 {
			log.Info().Msgf("Completed %d out of %d training episodes, average score over last %d: %.2f",
				i+1, episodes, len(window), stat.Mean(window, nil))
			window = window[:0]
		}
	}
	return results, nil
}
