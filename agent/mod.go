package agent

import (
	"errors"

	"pacman/game"
)

var ErrIllegalAction = errors.New("illegal action")

// Learner is an agent that improves from observed transitions.
type Learner interface {
	ChooseAction(state game.State) game.Action
	// Update observes that playing action in state led to next with the given reward.
	Update(state game.State, action game.Action, next game.State, reward float64) error
}
