package searcher

import (
	"fmt"

	"pacman/game"
)

// treeState is an explicit game tree. The agent to move is implied by the depth in the tree.
type treeState struct {
	agents   int
	value    float64
	actions  []game.Action
	children []*treeState
}

func leaf(agents int, value float64) *treeState {
	return &treeState{agents: agents, value: value}
}

// branch names its children's actions a0, a1, ...
func branch(agents int, children ...*treeState) *treeState {
	actions := make([]game.Action, len(children))
	for i := range children {
		actions[i] = game.Action(fmt.Sprintf("a%d", i))
	}
	return &treeState{agents: agents, actions: actions, children: children}
}

// leaves builds a node whose children are all leaves with the given values.
func leaves(agents int, values ...float64) *treeState {
	children := make([]*treeState, len(values))
	for i, v := range values {
		children[i] = leaf(agents, v)
	}
	return branch(agents, children...)
}

func (s *treeState) LegalActions(agent int) []game.Action {
	return s.actions
}

func (s *treeState) Successor(agent int, action game.Action) game.State {
	for i, a := range s.actions {
		if a == action {
			return s.children[i]
		}
	}
	panic("illegal action " + string(action))
}

func (s *treeState) NumAgents() int {
	return s.agents
}

func (s *treeState) Score() float64 {
	return s.value
}

func (s *treeState) IsWin() bool {
	return false
}

func (s *treeState) IsLose() bool {
	return false
}

func (s *treeState) Key() game.StateKey {
	return game.StateKey(fmt.Sprintf("%p", s))
}
