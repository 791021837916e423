package agent

import (
	"sync"
	"testing"

	"pacman/experiments/metrics"
	"pacman/game"

	"github.com/stretchr/testify/require"
)

type mockState struct {
	key     string
	actions []game.Action
}

func (s mockState) LegalActions(agent int) []game.Action {
	return s.actions
}

func (s mockState) Successor(agent int, action game.Action) game.State {
	panic("not used")
}

func (s mockState) NumAgents() int     { return 1 }
func (s mockState) Score() float64     { return 0 }
func (s mockState) IsWin() bool        { return false }
func (s mockState) IsLose() bool       { return false }
func (s mockState) Key() game.StateKey { return game.StateKey(s.key) }

var (
	a        = game.Action("a")
	b        = game.Action("b")
	c        = game.Action("c")
	state    = mockState{key: "s", actions: []game.Action{a, b}}
	next     = mockState{key: "s'", actions: []game.Action{b}}
	terminal = mockState{key: "end"}
)

func TestValueAndPolicy(t *testing.T) {
	t.Run("value is the best q-value", func(t *testing.T) {
		q := NewQLearningAgent()
		q.Table().Set(state.Key(), a, 2)
		q.Table().Set(state.Key(), b, 5)

		require.Equal(t, 5.0, q.Value(state))
		action, ok := q.Policy(state)
		require.True(t, ok)
		require.Equal(t, b, action)
	})

	t.Run("unseen pairs are worth zero", func(t *testing.T) {
		q := NewQLearningAgent()

		require.Equal(t, 0.0, q.QValue(state, a))
		require.Equal(t, 0.0, q.Value(state))
		require.Equal(t, 0, q.Table().Len(), "Reading should not create entries")
	})

	t.Run("no legal actions", func(t *testing.T) {
		q := NewQLearningAgent()

		require.Equal(t, 0.0, q.Value(terminal))
		_, ok := q.Policy(terminal)
		require.False(t, ok)
		_, ok = q.Action(terminal)
		require.False(t, ok)
		require.Equal(t, game.Stop, q.ChooseAction(terminal))
	})

	t.Run("ties go to the first legal action", func(t *testing.T) {
		q := NewQLearningAgent()
		q.Table().Set(state.Key(), a, -1)
		q.Table().Set(state.Key(), b, -1)

		action, _ := q.Policy(state)
		require.Equal(t, a, action)
	})

	t.Run("repeated reads agree", func(t *testing.T) {
		q := NewQLearningAgent()
		q.Table().Set(state.Key(), a, 1.25)

		for i := 0; i < 10; i++ {
			require.Equal(t, 1.25, q.QValue(state, a))
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("moves towards the discounted target", func(t *testing.T) {
		collector := metrics.NewCollector()
		q := NewQLearningAgent(WithAlpha(0.5), WithDiscount(0.9), WithMetrics(collector))
		q.Table().Set(next.Key(), b, 10)

		require.NoError(t, q.Update(state, a, next, 2))
		require.InDelta(t, 5.5, q.QValue(state, a), 1e-12)
		require.Equal(t, 1, collector.Complete().Updates)
	})

	t.Run("terminal next state only counts the reward", func(t *testing.T) {
		q := NewQLearningAgent(WithAlpha(0.5), WithDiscount(0.9))
		q.Table().Set(terminal.Key(), b, 10)

		require.NoError(t, q.Update(state, a, terminal, 2))
		require.InDelta(t, 1.0, q.QValue(state, a), 1e-12)
	})

	t.Run("illegal action leaves the table alone", func(t *testing.T) {
		q := NewQLearningAgent()

		err := q.Update(state, c, next, 2)
		require.ErrorIs(t, err, ErrIllegalAction)
		require.Equal(t, 0, q.Table().Len())
	})

	t.Run("evaluation view shares the table without learning", func(t *testing.T) {
		q := NewQLearningAgent(WithAlpha(0.5))
		eval := q.Evaluation()

		require.NoError(t, q.Update(state, a, terminal, 4))
		require.Equal(t, 2.0, eval.QValue(state, a))

		require.NoError(t, eval.Update(state, a, terminal, 100))
		require.Equal(t, 2.0, q.QValue(state, a), "Alpha 0 keeps old values")
		require.Equal(t, 0.0, eval.Epsilon())
	})

	t.Run("concurrent updates are not lost", func(t *testing.T) {
		table := NewQTable()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					table.Apply(state.Key(), a, func(old float64) float64 { return old + 1 })
				}
			}()
		}
		wg.Wait()

		require.Equal(t, 800.0, table.Get(state.Key(), a))
	})
}

func TestAction(t *testing.T) {
	three := mockState{key: "three", actions: []game.Action{a, b, c}}

	t.Run("epsilon 1 always explores uniformly", func(t *testing.T) {
		q := NewQLearningAgent(WithEpsilon(1), WithSeed(42))
		q.Table().Set(three.Key(), b, 100)

		counts := map[game.Action]int{}
		for i := 0; i < 3000; i++ {
			action, ok := q.Action(three)
			require.True(t, ok)
			counts[action]++
		}
		for _, action := range three.actions {
			require.InDelta(t, 1000, counts[action], 150, "Action %s", action)
		}
	})

	t.Run("epsilon 0 always exploits", func(t *testing.T) {
		q := NewQLearningAgent(WithEpsilon(0), WithSeed(42))
		q.Table().Set(three.Key(), c, 1)

		for i := 0; i < 100; i++ {
			action, _ := q.Action(three)
			require.Equal(t, c, action)
		}
	})

	t.Run("hyperparameters outside [0, 1] panic", func(t *testing.T) {
		require.Panics(t, func() { NewQLearningAgent(WithEpsilon(1.5)) })
		require.Panics(t, func() { NewQLearningAgent(WithAlpha(-0.1)) })
		require.Panics(t, func() { NewQLearningAgent(WithDiscount(2)) })
	})

	t.Run("pacman defaults", func(t *testing.T) {
		q := NewPacmanQAgent()
		require.Equal(t, 0.05, q.Epsilon())
		require.Equal(t, 0.8, q.Discount())
		require.Equal(t, 0.2, q.Alpha())

		require.Equal(t, 0.3, NewPacmanQAgent(WithEpsilon(0.3)).Epsilon(), "Options override defaults")
	})
}

func TestQTableEntries(t *testing.T) {
	table := NewQTable()
	table.Set("s2", a, 1)
	table.Set("s1", b, 2)
	table.Set("s1", a, 3)

	entries := table.Entries()
	require.Equal(t, []Entry{
		{State: "s1", Action: "a", Value: 3},
		{State: "s1", Action: "b", Value: 2},
		{State: "s2", Action: "a", Value: 1},
	}, entries)

	loaded := NewQTable()
	loaded.Load(entries)
	require.Equal(t, 3.0, loaded.Get("s1", a))
	require.Equal(t, 3, loaded.Len())
}
