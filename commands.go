package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"pacman/config"
	"pacman/experiments"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	metricsAddr string
	configPath  string
	flagValues  = config.Default()

	rootCmd = &cobra.Command{
		Use:           "pacman",
		Short:         "Search, adversarial and learning agents for Pacman",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			zerolog.SetGlobalLevel(level)
			return nil
		},
	}

	searchCmd = &cobra.Command{
		Use:   "search",
		Short: "Plan a path to the food with graph search and follow it",
		RunE:  runWithAgent("search"),
	}
	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play games with a game-tree search agent against ghosts",
		RunE:  runWithAgent(""),
	}
	trainCmd = &cobra.Command{
		Use:   "train",
		Short: "Train a Q-learning agent, then evaluate it",
		RunE:  runWithAgent("qlearning"),
	}
	experimentCmd = &cobra.Command{
		Use:   "experiment",
		Short: "Run the experiment described by the config file",
		RunE:  runWithAgent(""),
	}
)

// overrides copies a flag value onto the loaded config when the flag was set.
var overrides = map[string]func(c *config.Config){
	"agent":       func(c *config.Config) { c.Agent = flagValues.Agent },
	"depth":       func(c *config.Config) { c.Depth = flagValues.Depth },
	"evaluation":  func(c *config.Config) { c.Evaluation = flagValues.Evaluation },
	"epsilon":     func(c *config.Config) { c.Epsilon = flagValues.Epsilon },
	"alpha":       func(c *config.Config) { c.Alpha = flagValues.Alpha },
	"discount":    func(c *config.Config) { c.Discount = flagValues.Discount },
	"episodes":    func(c *config.Config) { c.TrainingEpisodes = flagValues.TrainingEpisodes },
	"games":       func(c *config.Config) { c.Games = flagValues.Games },
	"layout":      func(c *config.Config) { c.Layout = flagValues.Layout },
	"ghosts":      func(c *config.Config) { c.Ghosts = flagValues.Ghosts },
	"num-ghosts":  func(c *config.Config) { c.NumGhosts = flagValues.NumGhosts },
	"seed":        func(c *config.Config) { c.Seed = flagValues.Seed },
	"parallelism": func(c *config.Config) { c.Parallelism = flagValues.Parallelism },
	"max-moves":   func(c *config.Config) { c.MaxMoves = flagValues.MaxMoves },
	"output-dir":  func(c *config.Config) { c.OutputDir = flagValues.OutputDir },
	"algorithm":   func(c *config.Config) { c.Search.Algorithm = flagValues.Search.Algorithm },
	"heuristic":   func(c *config.Config) { c.Search.Heuristic = flagValues.Search.Heuristic },
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML experiment config; flags override its values")

	for _, cmd := range []*cobra.Command{searchCmd, playCmd, trainCmd, experimentCmd} {
		f := cmd.Flags()
		f.StringVar(&flagValues.Layout, "layout", flagValues.Layout, "layout name")
		f.IntVar(&flagValues.Games, "games", flagValues.Games, "number of evaluation games")
		f.StringVar(&flagValues.Ghosts, "ghosts", flagValues.Ghosts, "ghost agents: random or directional")
		f.IntVar(&flagValues.NumGhosts, "num-ghosts", flagValues.NumGhosts, "number of ghosts, negative for all of the layout")
		f.Uint64Var(&flagValues.Seed, "seed", flagValues.Seed, "random seed")
		f.IntVar(&flagValues.Parallelism, "parallelism", flagValues.Parallelism, "games played at once")
		f.IntVar(&flagValues.MaxMoves, "max-moves", flagValues.MaxMoves, "Pacman moves before a game is stopped")
		f.StringVar(&flagValues.OutputDir, "output-dir", flagValues.OutputDir, "directory for records, empty to skip")
	}

	searchCmd.Flags().StringVar(&flagValues.Search.Algorithm, "algorithm", flagValues.Search.Algorithm, "dfs, bfs, ucs or astar")
	searchCmd.Flags().StringVar(&flagValues.Search.Heuristic, "heuristic", flagValues.Search.Heuristic, "null, manhattan or euclidean")

	playCmd.Flags().StringVar(&flagValues.Agent, "agent", flagValues.Agent, "minimax, alphabeta, expectimax, hybrid or reflex")
	playCmd.Flags().IntVar(&flagValues.Depth, "depth", flagValues.Depth, "search depth in plies")
	playCmd.Flags().StringVar(&flagValues.Evaluation, "evaluation", flagValues.Evaluation, "score or better")

	trainCmd.Flags().IntVar(&flagValues.TrainingEpisodes, "episodes", flagValues.TrainingEpisodes, "training episodes")
	trainCmd.Flags().Float64Var(&flagValues.Epsilon, "epsilon", flagValues.Epsilon, "exploration rate")
	trainCmd.Flags().Float64Var(&flagValues.Alpha, "alpha", flagValues.Alpha, "learning rate")
	trainCmd.Flags().Float64Var(&flagValues.Discount, "discount", flagValues.Discount, "discount factor")

	rootCmd.AddCommand(searchCmd, playCmd, trainCmd, experimentCmd)
}

// loadConfig reads the config file, if any, and applies the flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return cfg, err
		}
	}
	for name, apply := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			apply(&cfg)
		}
	}
	return cfg, nil
}

// runWithAgent runs an experiment, forcing the agent when agent is not empty.
func runWithAgent(agent string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if agent != "" {
			cfg.Agent = agent
		}
		if cfg.Agent == "search" && !cmd.Flags().Lookup("num-ghosts").Changed {
			cfg.NumGhosts = 0
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		options := []experiments.Option{experiments.WithName(cmd.Name())}
		if metricsAddr != "" {
			reg := prometheus.NewRegistry()
			options = append(options, experiments.WithRegistry(reg))
			server := serveMetrics(reg)
			defer server.Shutdown(context.Background())
		}

		_, err = experiments.Run(ctx, cfg, options...)
		return err
	}
}

func serveMetrics(reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: metricsAddr, Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()
	log.Info().Msgf("serving metrics on %s/metrics", metricsAddr)
	return server
}
