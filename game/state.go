package game

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	TimePenalty = 1.0   // Charged for every Pacman move, including Stop
	FoodReward  = 10.0  // Eating a pellet
	WinReward   = 500.0 // Eating the last pellet
	LoseReward  = -500.0
	EatGhost    = 200.0
	ScaredTime  = 40 // Moves a ghost stays scared after a capsule
)

type AgentState struct {
	Position    Position
	Start       Position
	Direction   Action
	ScaredTimer int
}

// GameState is a snapshot of a Pacman game. Agent 0 is Pacman, the rest are ghosts.
type GameState struct {
	layout   *Layout
	agents   []AgentState
	food     []bool // Indexed like Layout.walls
	foodLeft int
	capsules []Position
	score    float64
	win      bool
	lose     bool
}

// NewGameState places every agent on its start position of the layout.
// numGhosts < 0 keeps every ghost of the layout.
func NewGameState(l *Layout, numGhosts int) *GameState {
	if numGhosts < 0 || numGhosts > l.NumGhosts() {
		numGhosts = l.NumGhosts()
	}

	gs := &GameState{
		layout:   l,
		agents:   make([]AgentState, 0, numGhosts+1),
		food:     make([]bool, l.Width*l.Height),
		capsules: slices.Clone(l.Capsules),
	}
	gs.agents = append(gs.agents, AgentState{Position: l.PacmanStart, Start: l.PacmanStart, Direction: Stop})
	for _, start := range l.GhostStarts[:numGhosts] {
		gs.agents = append(gs.agents, AgentState{Position: start, Start: start, Direction: Stop})
	}
	for _, p := range l.Food {
		gs.food[p.X*l.Height+p.Y] = true
	}
	gs.foodLeft = len(l.Food)
	return gs
}

func (gs *GameState) copy() *GameState {
	return &GameState{
		layout:   gs.layout, // Layouts are never modified
		agents:   slices.Clone(gs.agents),
		food:     gs.food, // Copied on write when Pacman eats
		foodLeft: gs.foodLeft,
		capsules: gs.capsules, // Copied on write when Pacman eats
		score:    gs.score,
		win:      gs.win,
		lose:     gs.lose,
	}
}

func (gs *GameState) NumAgents() int {
	return len(gs.agents)
}

func (gs *GameState) Score() float64 {
	return gs.score
}

func (gs *GameState) IsWin() bool {
	return gs.win
}

func (gs *GameState) IsLose() bool {
	return gs.lose
}

func (gs *GameState) Layout() *Layout {
	return gs.layout
}

func (gs *GameState) PacmanPosition() Position {
	return gs.agents[PacmanIndex].Position
}

// Agent returns the state of the agent with the given index.
func (gs *GameState) Agent(agent int) AgentState {
	return gs.agents[agent]
}

func (gs *GameState) Ghosts() []AgentState {
	return slices.Clone(gs.agents[1:])
}

func (gs *GameState) HasFood(p Position) bool {
	if gs.layout.IsWall(p) {
		return false
	}
	return gs.food[p.X*gs.layout.Height+p.Y]
}

func (gs *GameState) FoodCount() int {
	return gs.foodLeft
}

// Food lists the remaining pellets column by column.
func (gs *GameState) Food() []Position {
	food := make([]Position, 0, gs.foodLeft)
	for i, ok := range gs.food {
		if ok {
			food = append(food, Position{X: i / gs.layout.Height, Y: i % gs.layout.Height})
		}
	}
	return food
}

func (gs *GameState) Capsules() []Position {
	return slices.Clone(gs.capsules)
}

func (gs *GameState) LegalActions(agent int) []Action {
	if gs.win || gs.lose {
		return nil
	}
	if agent < 0 || agent >= len(gs.agents) {
		panic(fmt.Sprintf("invalid agent index %d for %d agents", agent, len(gs.agents)))
	}

	a := gs.agents[agent]
	actions := gs.layout.Neighbours(a.Position)
	if agent == PacmanIndex {
		return append(actions, Stop)
	}

	// Ghosts never stop and only turn back at dead ends
	if reverse := Reverse(a.Direction); len(actions) > 1 && reverse != Stop {
		if i := slices.Index(actions, reverse); i >= 0 {
			actions = slices.Delete(actions, i, i+1)
		}
	}
	return actions
}

func (gs *GameState) Successor(agent int, action Action) State {
	return gs.Play(agent, action)
}

// Play returns the state after agent plays action. It panics on an illegal action.
func (gs *GameState) Play(agent int, action Action) *GameState {
	if !slices.Contains(gs.LegalActions(agent), action) {
		panic(fmt.Sprintf("illegal action %s for agent %d", action, agent))
	}

	next := gs.copy()
	mover := &next.agents[agent]
	mover.Position = mover.Position.Move(action)
	mover.Direction = action

	if agent == PacmanIndex {
		next.score -= TimePenalty
		next.consume(mover.Position)
		for ghost := 1; ghost < len(next.agents); ghost++ {
			next.checkCollision(ghost)
		}
	} else {
		if mover.ScaredTimer > 0 {
			mover.ScaredTimer--
		}
		next.checkCollision(agent)
	}
	return next
}

func (gs *GameState) consume(p Position) {
	if gs.HasFood(p) {
		gs.food = slices.Clone(gs.food)
		gs.food[p.X*gs.layout.Height+p.Y] = false
		gs.foodLeft--
		gs.score += FoodReward
		if gs.foodLeft == 0 && !gs.lose {
			gs.score += WinReward
			gs.win = true
		}
	}

	if i := slices.Index(gs.capsules, p); i >= 0 {
		gs.capsules = slices.Delete(slices.Clone(gs.capsules), i, i+1)
		for ghost := 1; ghost < len(gs.agents); ghost++ {
			gs.agents[ghost].ScaredTimer = ScaredTime
		}
	}
}

func (gs *GameState) checkCollision(ghost int) {
	g := &gs.agents[ghost]
	if g.Position != gs.agents[PacmanIndex].Position {
		return
	}
	if g.ScaredTimer > 0 {
		gs.score += EatGhost
		g.Position = g.Start
		g.Direction = Stop
		g.ScaredTimer = 0
		return
	}
	if !gs.win {
		gs.score += LoseReward
		gs.lose = true
	}
}

// Key identifies the configuration of the board, ignoring the score.
func (gs *GameState) Key() StateKey {
	var b strings.Builder
	for _, a := range gs.agents {
		b.WriteString(strconv.Itoa(a.Position.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(a.Position.Y))
		b.WriteByte(',')
		b.WriteString(string(a.Direction))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(a.ScaredTimer))
		b.WriteByte(';')
	}
	b.WriteByte('|')
	for _, ok := range gs.food {
		if ok {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	for _, c := range gs.capsules {
		b.WriteString(strconv.Itoa(c.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.Y))
		b.WriteByte(';')
	}
	return StateKey(b.String())
}

// String draws the board the way layouts are written, ghosts shown as 'G'.
func (gs *GameState) String() string {
	var b strings.Builder
	for y := gs.layout.Height - 1; y >= 0; y-- {
		for x := 0; x < gs.layout.Width; x++ {
			p := Position{X: x, Y: y}
			b.WriteByte(gs.glyph(p))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Score: %g", gs.score)
	return b.String()
}

func (gs *GameState) glyph(p Position) byte {
	if gs.agents[PacmanIndex].Position == p {
		return 'P'
	}
	for _, g := range gs.agents[1:] {
		if g.Position == p {
			return 'G'
		}
	}
	switch {
	case gs.layout.IsWall(p):
		return '%'
	case gs.HasFood(p):
		return '.'
	case slices.Contains(gs.capsules, p):
		return 'o'
	}
	return ' '
}
