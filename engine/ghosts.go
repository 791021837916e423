package engine

import (
	"pacman/game"
	"pacman/meta"

	"golang.org/x/exp/rand"
)

// RandomGhost moves uniformly at random.
type RandomGhost struct {
	index int
	rng   *rand.Rand
}

func NewRandomGhost(index int, rng *rand.Rand) *RandomGhost {
	return &RandomGhost{index: index, rng: rng}
}

func (g *RandomGhost) ChooseAction(state game.State) game.Action {
	actions := state.LegalActions(g.index)
	if len(actions) == 0 {
		return game.Stop
	}
	return actions[g.rng.Intn(len(actions))]
}

// DirectionalGhost usually moves towards Pacman, or away from him while scared.
type DirectionalGhost struct {
	index int
	rng   *rand.Rand
	prob  float64 // Probability of taking one of the preferred moves
}

func NewDirectionalGhost(index int, rng *rand.Rand) *DirectionalGhost {
	return &DirectionalGhost{index: index, rng: rng, prob: meta.DIRECTIONAL_PROB}
}

func (g *DirectionalGhost) ChooseAction(state game.State) game.Action {
	gs, ok := state.(*game.GameState)
	if !ok {
		panic("unexpected state type")
	}
	actions := gs.LegalActions(g.index)
	if len(actions) == 0 {
		return game.Stop
	}

	weights := g.distribution(gs, actions)
	r := g.rng.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return actions[i]
		}
	}
	return actions[len(actions)-1] // Fallback in case of rounding errors
}

// distribution gives prob to the preferred moves and spreads the rest over every legal move.
func (g *DirectionalGhost) distribution(gs *game.GameState, actions []game.Action) []float64 {
	ghost := gs.Agent(g.index)
	pacman := gs.PacmanPosition()
	scared := ghost.ScaredTimer > 0

	distances := make([]int, len(actions))
	best := 0
	for i, a := range actions {
		distances[i] = game.Manhattan(ghost.Position.Move(a), pacman)
		if i == 0 || (scared && distances[i] > best) || (!scared && distances[i] < best) {
			best = distances[i]
		}
	}

	numBest := 0
	for _, d := range distances {
		if d == best {
			numBest++
		}
	}

	weights := make([]float64, len(actions))
	for i, d := range distances {
		weights[i] = (1 - g.prob) / float64(len(actions))
		if d == best {
			weights[i] += g.prob / float64(numBest)
		}
	}
	return weights
}

// NewGhosts builds one ghost of the given kind per ghost in the game.
// Kinds are "random" and "directional"; each ghost gets its own random source.
func NewGhosts(kind string, count int, seed uint64) []Agent {
	ghosts := make([]Agent, count)
	for i := range ghosts {
		rng := rand.New(rand.NewSource(seed + uint64(i)))
		if kind == "directional" {
			ghosts[i] = NewDirectionalGhost(i+1, rng)
		} else {
			ghosts[i] = NewRandomGhost(i+1, rng)
		}
	}
	return ghosts
}
