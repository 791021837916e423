package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"pacman/agent"
	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/gamemaster"
	"pacman/search"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

type fixedAgent struct {
	action game.Action
	final  game.State
}

func (a *fixedAgent) ChooseAction(state game.State) game.Action {
	return a.action
}

func (a *fixedAgent) Final(state game.State) {
	a.final = state
}

func newState(t *testing.T, text string) *game.GameState {
	t.Helper()
	l, err := game.ParseLayout("test", text)
	require.NoError(t, err)
	return game.NewGameState(l, -1)
}

func TestRun(t *testing.T) {
	t.Run("search agent clears the tiny maze", func(t *testing.T) {
		l, err := game.LayoutByName("tinyMaze")
		require.NoError(t, err)
		pacman, err := search.NewAgent("bfs", "")
		require.NoError(t, err)
		collector := metrics.NewCollector()

		result, err := New(game.NewGameState(l, 0), pacman, nil, WithMetrics(collector)).Run()
		require.NoError(t, err)
		require.True(t, result.Win)
		require.Equal(t, 8, result.Moves)
		require.Equal(t, -8.0+10+500, result.Score)
		require.Equal(t, 1, collector.Complete().Episodes)
	})

	t.Run("stops after the maximum number of moves", func(t *testing.T) {
		pacman := &fixedAgent{action: game.Stop}

		result, err := New(newState(t, "%%%%%\n%P .%\n%%%%%"), pacman, nil, WithMaxMoves(5)).Run()
		require.NoError(t, err)
		require.False(t, result.Win)
		require.Equal(t, 5, result.Moves)
		require.Equal(t, -5.0, result.Score)
		require.Equal(t, -5.0, pacman.final.Score(), "Agents should see the final state")
	})

	t.Run("ghosts catch an idle pacman", func(t *testing.T) {
		state := newState(t, "%%%%%%\n%P. G%\n%%%%%%")
		ghosts := NewGhosts("random", 1, 1)

		result, err := New(state, &fixedAgent{action: game.Stop}, ghosts).Run()
		require.NoError(t, err)
		require.False(t, result.Win)
		require.Equal(t, 3, result.Moves, "Ghost needs three moves to reach pacman")
		require.Equal(t, -3.0-500, result.Score)
	})

	t.Run("illegal moves end the game with an error", func(t *testing.T) {
		_, err := New(newState(t, "%%%%%\n%P .%\n%%%%%"), &fixedAgent{action: game.North}, nil).Run()
		require.ErrorIs(t, err, gamemaster.ErrIllegalMove)
	})

	t.Run("every ghost needs an agent", func(t *testing.T) {
		require.Panics(t, func() {
			New(newState(t, "%%%%%\n%P G%\n%%%%%"), &fixedAgent{action: game.Stop}, nil)
		})
	})
}

func TestDirectionalGhost(t *testing.T) {
	state := newState(t, "%%%%%%%\n%P.  G%\n%%%%% %\n%%%%%%%")

	t.Run("prefers moves towards pacman", func(t *testing.T) {
		g := NewDirectionalGhost(1, rand.New(rand.NewSource(1)))
		actions := state.LegalActions(1)
		require.Equal(t, []game.Action{game.South, game.West}, actions)

		weights := g.distribution(state, actions)
		require.InDelta(t, 0.1, weights[0], 1e-9)
		require.InDelta(t, 0.9, weights[1], 1e-9)
	})

	t.Run("flees while scared", func(t *testing.T) {
		g := NewDirectionalGhost(1, rand.New(rand.NewSource(1)))
		scared := newState(t, "%%%%%%%\n%Po. G%\n%%%%% %\n%%%%%%%").Play(game.PacmanIndex, game.East)
		actions := scared.LegalActions(1)

		weights := g.distribution(scared, actions)
		require.InDelta(t, 0.9, weights[0], 1e-9)
		require.InDelta(t, 0.1, weights[1], 1e-9)
	})

	t.Run("samples preferred moves most of the time", func(t *testing.T) {
		g := NewDirectionalGhost(1, rand.New(rand.NewSource(5)))
		west := 0
		for i := 0; i < 1000; i++ {
			if g.ChooseAction(state) == game.West {
				west++
			}
		}
		require.InDelta(t, 900, west, 60)
	})
}

func TestTrain(t *testing.T) {
	state := newState(t, "%%%%%%\n%P  .%\n%%%%%%")
	learner := agent.NewQLearningAgent(
		agent.WithEpsilon(0.3), agent.WithAlpha(0.5), agent.WithDiscount(0.8), agent.WithSeed(9))

	results, err := Train(context.Background(), learner, 100, func(int) (game.State, []Agent) {
		return state, nil
	}, WithMaxMoves(50))
	require.NoError(t, err)
	require.Len(t, results, 100)
	require.Greater(t, learner.Table().Len(), 0)

	eval := learner.Evaluation()
	require.Equal(t, game.East, eval.ChooseAction(state), "Learned policy should head for the food")
	result, err := New(state, eval, nil, WithMaxMoves(50)).Run()
	require.NoError(t, err)
	require.True(t, result.Win)
	require.Equal(t, 3, result.Moves)

	t.Run("cancelled training stops", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Train(ctx, learner, 10, func(int) (game.State, []Agent) { return state, nil })
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestRunMatches(t *testing.T) {
	t.Run("results keep game order", func(t *testing.T) {
		var running, peak atomic.Int32
		results, err := RunMatches(context.Background(), 10, 3, func(ctx context.Context, i int) (Result, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			defer running.Add(-1)
			return Result{Score: float64(i)}, nil
		})
		require.NoError(t, err)
		require.Len(t, results, 10)
		for i, r := range results {
			require.Equal(t, float64(i), r.Score)
		}
		require.LessOrEqual(t, peak.Load(), int32(3), "Parallelism should be capped")
	})

	t.Run("first error is returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := RunMatches(context.Background(), 5, 2, func(ctx context.Context, i int) (Result, error) {
			if i == 3 {
				return Result{}, boom
			}
			return Result{}, nil
		})
		require.ErrorIs(t, err, boom)
	})
}
