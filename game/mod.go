package game

// Action is one of the five moves an agent can make. Legality depends on the state.
type Action string

const (
	North Action = "North"
	South Action = "South"
	East  Action = "East"
	West  Action = "West"
	Stop  Action = "Stop"
)

// Directions lists the moving actions in the order legal actions are generated.
var Directions = []Action{North, South, East, West}

const PacmanIndex = 0

type StateKey string

// State should be immutable - operations on State always return a new copy
type State interface {
	// LegalActions returns the moves available to the given agent, none once the game is over.
	LegalActions(agent int) []Action
	// Successor returns the state reached after agent plays action.
	Successor(agent int, action Action) State
	NumAgents() int
	Score() float64
	IsWin() bool
	IsLose() bool
	Key() StateKey
}

// Evaluate estimates how desirable a state is for Pacman. Higher is better.
type Evaluate func(State) float64

// Reverse returns the opposite direction. Stop reverses to Stop.
func Reverse(a Action) Action {
	switch a {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return Stop
}

// Vector returns the (dx, dy) offset of an action, with y growing northwards.
func Vector(a Action) (int, int) {
	switch a {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case East:
		return 1, 0
	case West:
		return -1, 0
	}
	return 0, 0
}

type Position struct {
	X int
	Y int
}

func (p Position) Move(a Action) Position {
	dx, dy := Vector(a)
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
