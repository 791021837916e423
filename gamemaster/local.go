package gamemaster

import (
	"errors"
	"fmt"

	"pacman/game"
	"pacman/utils"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrIllegalMove = errors.New("illegal move")
)

// Update records a move and the state it produced.
type Update struct {
	Agent  int
	Action game.Action
	State  game.State
}

// Local owns the state of a game and only lets agents play legal moves in turn.
type Local struct {
	state   game.State
	turn    int
	history []Update
}

func NewLocal(state game.State) *Local {
	return &Local{state: state, turn: game.PacmanIndex}
}

func (l *Local) State() game.State {
	return l.state
}

// Turn is the index of the agent expected to move next.
func (l *Local) Turn() int {
	return l.turn
}

func (l *Local) IsOver() bool {
	return l.state.IsWin() || l.state.IsLose()
}

func (l *Local) History() []Update {
	return l.history
}

func (l *Local) Play(agent int, action game.Action) error {
	if l.IsOver() {
		return ErrGameOver
	}
	if agent != l.turn {
		return fmt.Errorf("%w: agent %d played out of turn, expected agent %d", ErrIllegalMove, agent, l.turn)
	}
	if utils.FindIndex(l.state.LegalActions(agent), action) < 0 {
		return fmt.Errorf("%w: %s is not legal for agent %d", ErrIllegalMove, action, agent)
	}

	l.state = l.state.Successor(agent, action)
	l.history = append(l.history, Update{Agent: agent, Action: action, State: l.state})
	l.advance()
	return nil
}

// Pass skips the turn of an agent that is stuck without legal moves.
func (l *Local) Pass(agent int) error {
	if l.IsOver() {
		return ErrGameOver
	}
	if agent != l.turn {
		return fmt.Errorf("%w: agent %d passed out of turn, expected agent %d", ErrIllegalMove, agent, l.turn)
	}
	if len(l.state.LegalActions(agent)) > 0 {
		return fmt.Errorf("%w: agent %d cannot pass with legal moves left", ErrIllegalMove, agent)
	}
	l.advance()
	return nil
}

func (l *Local) advance() {
	l.turn = (l.turn + 1) % l.state.NumAgents()
}
