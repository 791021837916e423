package agent

import (
	"fmt"
	"slices"
	"time"

	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

type Option func(q *QLearningAgent)

// QLearningAgent learns action values from experience with epsilon-greedy exploration.
type QLearningAgent struct {
	epsilon  float64 // Exploration probability
	alpha    float64 // Learning rate
	discount float64
	rng      *rand.Rand
	legal    func(game.State) []game.Action
	table    *QTable
	metrics  metrics.Collector
}

func WithEpsilon(epsilon float64) Option {
	return func(q *QLearningAgent) {
		q.epsilon = epsilon
	}
}

func WithAlpha(alpha float64) Option {
	return func(q *QLearningAgent) {
		q.alpha = alpha
	}
}

func WithDiscount(discount float64) Option {
	return func(q *QLearningAgent) {
		q.discount = discount
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(q *QLearningAgent) {
		if rng != nil {
			q.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithLegalActions sets how the agent finds its moves. Defaults to Pacman's legal actions.
func WithLegalActions(legal func(game.State) []game.Action) Option {
	return func(q *QLearningAgent) {
		if legal != nil {
			q.legal = legal
		}
	}
}

// WithTable shares an existing table instead of starting from an empty one.
func WithTable(table *QTable) Option {
	return func(q *QLearningAgent) {
		if table != nil {
			q.table = table
		}
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(q *QLearningAgent) {
		if c != nil {
			q.metrics = c
		}
	}
}

func NewQLearningAgent(options ...Option) *QLearningAgent {
	q := &QLearningAgent{ // Default values
		epsilon:  0.5,
		alpha:    0.5,
		discount: 1,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		legal:    pacmanActions,
		table:    NewQTable(),
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(q)
	}
	for name, v := range map[string]float64{"epsilon": q.epsilon, "alpha": q.alpha, "discount": q.discount} {
		if v < 0 || v > 1 {
			panic(fmt.Sprintf("%s must be within [0, 1], got %g", name, v))
		}
	}
	return q
}

// NewPacmanQAgent uses the hyperparameters that work for Pacman unless overridden.
func NewPacmanQAgent(options ...Option) *QLearningAgent {
	defaults := []Option{
		WithEpsilon(meta.PacmanEpsilon),
		WithDiscount(meta.PacmanDiscount),
		WithAlpha(meta.PacmanAlpha),
	}
	return NewQLearningAgent(append(defaults, options...)...)
}

func pacmanActions(state game.State) []game.Action {
	return state.LegalActions(game.PacmanIndex)
}

func (q *QLearningAgent) Table() *QTable {
	return q.table
}

func (q *QLearningAgent) QValue(state game.State, action game.Action) float64 {
	return q.table.Get(state.Key(), action)
}

func (q *QLearningAgent) qValues(state game.State, actions []game.Action) []float64 {
	key := state.Key()
	values := make([]float64, len(actions))
	for i, a := range actions {
		values[i] = q.table.Get(key, a)
	}
	return values
}

// Value is the best Q-value over the legal actions, 0 when there are none.
func (q *QLearningAgent) Value(state game.State) float64 {
	actions := q.legal(state)
	if len(actions) == 0 {
		return 0
	}
	return floats.Max(q.qValues(state, actions))
}

// Policy returns the action with the best Q-value. Ties go to the first legal action.
func (q *QLearningAgent) Policy(state game.State) (game.Action, bool) {
	actions := q.legal(state)
	if len(actions) == 0 {
		return "", false
	}
	return actions[floats.MaxIdx(q.qValues(state, actions))], true
}

// Action explores a random legal action with probability epsilon and follows the policy otherwise.
func (q *QLearningAgent) Action(state game.State) (game.Action, bool) {
	actions := q.legal(state)
	if len(actions) == 0 {
		return "", false
	}
	if q.rng.Float64() < q.epsilon {
		return actions[q.rng.Intn(len(actions))], true
	}
	return q.Policy(state)
}

func (q *QLearningAgent) ChooseAction(state game.State) game.Action {
	action, ok := q.Action(state)
	if !ok {
		return game.Stop
	}
	return action
}

// Update moves Q(state, action) towards reward plus the discounted value of next.
func (q *QLearningAgent) Update(state game.State, action game.Action, next game.State, reward float64) error {
	if !slices.Contains(q.legal(state), action) {
		return fmt.Errorf("%w: %s", ErrIllegalAction, action)
	}

	sample := reward
	if len(q.legal(next)) > 0 {
		sample += q.discount * q.Value(next)
	}
	v := q.table.Apply(state.Key(), action, func(old float64) float64 {
		return (1-q.alpha)*old + q.alpha*sample
	})
	q.metrics.AddUpdate()
	log.Trace().Str("action", string(action)).Float64("reward", reward).Float64("value", v).Msg("q update")
	return nil
}

// Evaluation returns an agent that shares the table but neither explores nor learns.
// It gets its own random source so that several can play at once.
func (q *QLearningAgent) Evaluation(options ...Option) *QLearningAgent {
	e := &QLearningAgent{
		epsilon:  0,
		alpha:    0,
		discount: q.discount,
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		legal:    q.legal,
		table:    q.table,
		metrics:  q.metrics,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (q *QLearningAgent) Epsilon() float64 {
	return q.epsilon
}

func (q *QLearningAgent) Alpha() float64 {
	return q.alpha
}

func (q *QLearningAgent) Discount() float64 {
	return q.discount
}
