package experiments

import (
	"context"
	"fmt"
	"time"

	"pacman/agent"
	"pacman/config"
	"pacman/engine"
	"pacman/experiments/metrics"
	"pacman/game"
	"pacman/search"
	"pacman/searcher"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

type Option func(r *runner)

// WithRegistry exposes the counters of the run on reg.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(r *runner) {
		r.registry = reg
	}
}

// WithName names the directory the records are written to. Defaults to the agent name.
func WithName(name string) Option {
	return func(r *runner) {
		r.name = name
	}
}

// Summary aggregates the evaluation games of a run.
type Summary struct {
	Dir          string // Empty when nothing was written
	Games        int
	Wins         int
	AverageScore float64
	Training     []engine.Result
	Results      []engine.Result
	Metric       metrics.SearchMetric
}

func (s Summary) WinRate() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games)
}

type runner struct {
	cfg       config.Config
	layout    *game.Layout
	evaluate  game.Evaluate
	collector metrics.Collector
	registry  prometheus.Registerer
	name      string
	learner   *agent.QLearningAgent
}

// Run trains the configured agent if it learns, plays the evaluation games and writes
// the records to cfg.OutputDir.
func Run(ctx context.Context, cfg config.Config, options ...Option) (Summary, error) {
	if err := cfg.Validate(); err != nil {
		return Summary{}, err
	}
	layout, err := game.LayoutByName(cfg.Layout)
	if err != nil {
		return Summary{}, err
	}
	evaluate, err := game.EvaluationByName(cfg.Evaluation)
	if err != nil {
		return Summary{}, err
	}

	r := &runner{
		cfg:       cfg,
		layout:    layout,
		evaluate:  evaluate,
		collector: metrics.NewCollector(),
		name:      cfg.Agent,
	}
	for _, option := range options {
		option(r)
	}
	if r.registry != nil {
		if err := metrics.Register(r.registry, r.collector); err != nil {
			return Summary{}, fmt.Errorf("failed to register metrics: %w", err)
		}
	}

	start := time.Now()
	log.Info().Msgf("starting %s experiment on %s...", cfg.Agent, cfg.Layout)

	summary := Summary{Games: cfg.Games}
	if cfg.Agent == "qlearning" {
		summary.Training, err = r.train(ctx)
		if err != nil {
			return summary, err
		}
	}

	summary.Results, err = engine.RunMatches(ctx, cfg.Games, cfg.Parallelism, r.play)
	if err != nil {
		return summary, err
	}

	scores := make([]float64, len(summary.Results))
	for i, result := range summary.Results {
		scores[i] = result.Score
		if result.Win {
			summary.Wins++
		}
	}
	summary.AverageScore = stat.Mean(scores, nil)
	summary.Metric = r.collector.Complete()
	summary.Metric.Duration = time.Since(start)

	log.Info().Msgf("Average Score: %.2f", summary.AverageScore)
	log.Info().Msgf("Win Rate: %d/%d (%.2f)", summary.Wins, summary.Games, summary.WinRate())

	if cfg.OutputDir != "" {
		summary.Dir, err = r.write(summary)
		if err != nil {
			return summary, err
		}
		log.Info().Msgf("stored records in %s", summary.Dir)
	}
	return summary, nil
}

// newGame seeds every game differently so parallel games stay reproducible.
func (r *runner) newGame(i int) (game.State, []engine.Agent) {
	state := game.NewGameState(r.layout, r.cfg.NumGhosts)
	ghosts := engine.NewGhosts(r.cfg.Ghosts, state.NumAgents()-1, r.seed(i))
	return state, ghosts
}

func (r *runner) seed(i int) uint64 {
	return r.cfg.Seed + uint64(i)*1000
}

func (r *runner) train(ctx context.Context) ([]engine.Result, error) {
	r.learner = agent.NewPacmanQAgent(
		agent.WithEpsilon(r.cfg.Epsilon),
		agent.WithAlpha(r.cfg.Alpha),
		agent.WithDiscount(r.cfg.Discount),
		agent.WithSeed(r.cfg.Seed),
		agent.WithMetrics(r.collector),
	)
	if r.cfg.TrainingEpisodes == 0 {
		return nil, nil
	}

	log.Info().Msgf("Beginning %d episodes of training", r.cfg.TrainingEpisodes)
	// Training games are seeded after the evaluation games
	offset := r.cfg.Games
	results, err := engine.Train(ctx, r.learner, r.cfg.TrainingEpisodes,
		func(episode int) (game.State, []engine.Agent) { return r.newGame(offset + episode) },
		engine.WithMaxMoves(r.cfg.MaxMoves), engine.WithMetrics(r.collector))
	if err != nil {
		return results, fmt.Errorf("training: %w", err)
	}
	log.Info().Msgf("Training done (turning off epsilon and alpha), %d q-values learned", r.learner.Table().Len())
	return results, nil
}

func (r *runner) play(ctx context.Context, i int) (engine.Result, error) {
	pacman, err := r.pacman(i)
	if err != nil {
		return engine.Result{}, err
	}
	state, ghosts := r.newGame(i)
	result, err := engine.New(state, pacman, ghosts,
		engine.WithMaxMoves(r.cfg.MaxMoves), engine.WithMetrics(r.collector)).Run()
	if err != nil {
		return result, fmt.Errorf("game %d: %w", i, err)
	}
	log.Debug().Msgf("completed game %d of %d with score %g", i+1, r.cfg.Games, result.Score)
	return result, nil
}

// pacman builds a fresh agent for every game so games never share a random source.
func (r *runner) pacman(i int) (engine.Agent, error) {
	switch r.cfg.Agent {
	case "search":
		return search.NewAgent(r.cfg.Search.Algorithm, r.cfg.Search.Heuristic, search.WithMetrics(r.collector))
	case "qlearning":
		return r.learner.Evaluation(agent.WithSeed(r.seed(i))), nil
	}
	return searcher.New(r.cfg.Agent,
		searcher.WithDepth(r.cfg.Depth),
		searcher.WithEvaluationFn(r.evaluate),
		searcher.WithSeed(r.seed(i)),
		searcher.WithMetrics(r.collector),
	)
}

func (r *runner) write(summary Summary) (string, error) {
	writer, err := NewWriter(r.cfg.OutputDir, r.name)
	if err != nil {
		return "", err
	}
	if err := writer.WriteSetup(r.cfg); err != nil {
		return "", err
	}

	records := make([]EpisodeRecord, 0, len(summary.Training)+len(summary.Results))
	records = r.appendRecords(records, PhaseTrain, summary.Training)
	records = r.appendRecords(records, PhaseEval, summary.Results)
	if err := writer.WriteEpisodes(records); err != nil {
		return "", err
	}

	if r.learner != nil {
		if err := writer.WriteQTable(r.learner.Table().Entries()); err != nil {
			return "", err
		}
	}
	return writer.Dir(), nil
}

func (r *runner) appendRecords(records []EpisodeRecord, phase string, results []engine.Result) []EpisodeRecord {
	for i, result := range results {
		records = append(records, EpisodeRecord{
			Game:       int32(i),
			Phase:      phase,
			Agent:      r.cfg.Agent,
			Layout:     r.cfg.Layout,
			Score:      result.Score,
			Win:        result.Win,
			Moves:      int32(result.Moves),
			DurationMs: result.Duration.Milliseconds(),
		})
	}
	return records
}
