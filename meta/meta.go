// meta/meta.go
package meta

// GO_ROUTINES defines the number of games played at once by experiments.
const GO_ROUTINES = 8

// MAX_MOVES caps the number of Pacman moves in a single game.
const MAX_MOVES = 500

// Defaults of the Pacman Q-learning agent.
const (
	PacmanEpsilon  = 0.05
	PacmanDiscount = 0.8
	PacmanAlpha    = 0.2
)

// DIRECTIONAL_PROB is how often a directional ghost takes its preferred move.
const DIRECTIONAL_PROB = 0.8
