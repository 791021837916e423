package game

import (
	"fmt"
	"math"
)

// EvaluateScore uses the game score as is.
func EvaluateScore(s State) float64 {
	return s.Score()
}

// EvaluateBetter combines the score with the pellets left, the distances to the closest
// pellet and ghost and how long every ghost stays scared.
func EvaluateBetter(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if gs.IsWin() || gs.IsLose() {
		return gs.Score()
	}

	pacman := gs.PacmanPosition()
	value := gs.Score() - float64(gs.FoodCount()) - float64(len(gs.capsules))

	closestFood := 0.0
	for i, f := range gs.Food() {
		d := float64(Manhattan(pacman, f))
		if i == 0 || d < closestFood {
			closestFood = d
		}
	}
	value += 0.5 / (closestFood + 1)

	ghosts := gs.agents[1:]
	if len(ghosts) == 0 {
		return value
	}
	closestGhost := math.Inf(1)
	minScared := math.MaxInt
	for _, g := range ghosts {
		closestGhost = math.Min(closestGhost, float64(Manhattan(pacman, g.Position)))
		minScared = min(minScared, g.ScaredTimer)
	}
	if minScared == 0 {
		value -= 2 * closestGhost
	} else {
		// Hunting: stay close while every ghost is scared
		value += 0.5*closestGhost + float64(minScared)
	}
	return value
}

// EvaluateReflex scores the move of Pacman from s by the state it leads to.
// Moves next to an active ghost are ruled out; otherwise closer food is better.
func EvaluateReflex(s State, action Action) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	next := gs.Play(PacmanIndex, action)
	if next.IsWin() {
		return math.Inf(1)
	}
	if next.IsLose() {
		return math.Inf(-1)
	}

	pacman := next.PacmanPosition()
	for _, g := range next.agents[1:] {
		if g.ScaredTimer == 0 && Manhattan(pacman, g.Position) < 2 {
			return math.Inf(-1)
		}
	}

	// Eating a pellet makes this move as good as possible
	if gs.HasFood(pacman) {
		return 0
	}
	closest := math.MaxInt
	for _, f := range next.Food() {
		closest = min(closest, Manhattan(pacman, f))
	}
	if closest == math.MaxInt {
		return 0
	}
	return -float64(closest)
}

// EvaluationByName returns one of the evaluations usable for game-tree search.
func EvaluationByName(name string) (Evaluate, error) {
	switch name {
	case "", "score":
		return EvaluateScore, nil
	case "better":
		return EvaluateBetter, nil
	}
	return nil, fmt.Errorf("unknown evaluation function %q", name)
}
