package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"pacman/game"
	"pacman/meta"
	"pacman/search"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Agents lists the Pacman agents an experiment can run.
var Agents = []string{"minimax", "alphabeta", "expectimax", "hybrid", "reflex", "qlearning", "search"}

// Config describes an experiment: which agent plays, against which ghosts, and how often.
type Config struct {
	Agent      string `yaml:"agent" json:"agent"`
	Depth      int    `yaml:"depth" json:"depth"`
	Evaluation string `yaml:"evaluation" json:"evaluation"`

	// Q-learning
	Epsilon          float64 `yaml:"epsilon" json:"epsilon"`
	Alpha            float64 `yaml:"alpha" json:"alpha"`
	Discount         float64 `yaml:"discount" json:"discount"`
	TrainingEpisodes int     `yaml:"training_episodes" json:"training_episodes"`

	Games       int    `yaml:"games" json:"games"`
	Layout      string `yaml:"layout" json:"layout"`
	Ghosts      string `yaml:"ghosts" json:"ghosts"`
	NumGhosts   int    `yaml:"num_ghosts" json:"num_ghosts"` // Negative keeps every ghost of the layout
	Seed        uint64 `yaml:"seed" json:"seed"`
	Parallelism int    `yaml:"parallelism" json:"parallelism"`
	MaxMoves    int    `yaml:"max_moves" json:"max_moves"`
	OutputDir   string `yaml:"output_dir" json:"output_dir"`

	Search SearchConfig `yaml:"search" json:"search"`
}

type SearchConfig struct {
	Algorithm string `yaml:"algorithm" json:"algorithm"`
	Heuristic string `yaml:"heuristic" json:"heuristic"`
}

func Default() Config {
	return Config{
		Agent:            "alphabeta",
		Depth:            2,
		Evaluation:       "score",
		Epsilon:          meta.PacmanEpsilon,
		Alpha:            meta.PacmanAlpha,
		Discount:         meta.PacmanDiscount,
		TrainingEpisodes: 0,
		Games:            1,
		Layout:           "smallClassic",
		Ghosts:           "random",
		NumGhosts:        -1,
		Seed:             1,
		Parallelism:      meta.GO_ROUTINES,
		MaxMoves:         meta.MAX_MOVES,
		OutputDir:        "experiments/results",
		Search: SearchConfig{
			Algorithm: "bfs",
			Heuristic: "null",
		},
	}
}

// Load reads a YAML file over the defaults. Fields missing from the file keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !slices.Contains(Agents, c.Agent) {
		return fmt.Errorf("%w: unknown agent %q", ErrInvalidConfig, c.Agent)
	}
	if c.Depth < 1 {
		return fmt.Errorf("%w: depth must be positive, got %d", ErrInvalidConfig, c.Depth)
	}
	if _, err := game.EvaluationByName(c.Evaluation); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for name, v := range map[string]float64{"epsilon": c.Epsilon, "alpha": c.Alpha, "discount": c.Discount} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be within [0, 1], got %g", ErrInvalidConfig, name, v)
		}
	}
	if c.TrainingEpisodes < 0 {
		return fmt.Errorf("%w: training_episodes cannot be negative", ErrInvalidConfig)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if _, err := game.LayoutByName(c.Layout); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Ghosts != "random" && c.Ghosts != "directional" {
		return fmt.Errorf("%w: ghosts must be random or directional, got %q", ErrInvalidConfig, c.Ghosts)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("%w: parallelism must be positive, got %d", ErrInvalidConfig, c.Parallelism)
	}
	if c.MaxMoves < 1 {
		return fmt.Errorf("%w: max_moves must be positive, got %d", ErrInvalidConfig, c.MaxMoves)
	}
	if _, err := search.AlgorithmByName[game.Position](c.Search.Algorithm); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := search.HeuristicByName(c.Search.Heuristic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}
