package game

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateReflex(t *testing.T) {
	t.Run("closer food is better", func(t *testing.T) {
		l, err := LayoutByName("tinyMaze")
		require.NoError(t, err)
		gs := NewGameState(l, 0)

		require.Equal(t, -7.0, EvaluateReflex(gs, West))
		require.Equal(t, -7.0, EvaluateReflex(gs, South))
		require.Equal(t, -8.0, EvaluateReflex(gs, Stop))
	})

	t.Run("moving next to an active ghost is ruled out", func(t *testing.T) {
		gs := newTestState(t, "%%%%%\n%P G%\n%%%%%")

		require.Equal(t, math.Inf(-1), EvaluateReflex(gs, East))
		require.Equal(t, 0.0, EvaluateReflex(gs, Stop), "No food left to chase")
	})
}

func TestEvaluateBetter(t *testing.T) {
	t.Run("finished games use the score", func(t *testing.T) {
		gs := newTestState(t, "%%%%\n%P.%\n%%%%")
		won := gs.Play(PacmanIndex, East)

		require.Equal(t, won.Score(), EvaluateBetter(won))
	})

	t.Run("ghost distance weighs by the scared timer", func(t *testing.T) {
		gs := newTestState(t, "%%%%%%%\n%.PG  %\n%%%%%%%")
		require.Equal(t, 0.0-1+0.5/2-2*1, EvaluateBetter(gs))

		scared := gs.copy()
		scared.agents[1].ScaredTimer = 3
		require.Equal(t, 0.0-1+0.5/2+0.5*1+3, EvaluateBetter(scared))
	})

	t.Run("fewer pellets is better", func(t *testing.T) {
		gs := newTestState(t, "%%%%%%\n%P..G%\n%%%%%%")
		ate := gs.copy()
		ate.food = make([]bool, len(gs.food))
		ate.food[2*gs.layout.Height+1] = true
		ate.foodLeft = 1

		require.Greater(t, EvaluateBetter(ate), EvaluateBetter(gs))
	})
}

func TestEvaluationByName(t *testing.T) {
	eval, err := EvaluationByName("better")
	require.NoError(t, err)
	require.NotNil(t, eval)

	eval, err = EvaluationByName("score")
	require.NoError(t, err)
	require.Equal(t, 3.0, eval(&GameState{score: 3}))

	_, err = EvaluationByName("random")
	require.Error(t, err)
}
