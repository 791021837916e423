package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Register exposes the counters of c on reg. Values are read from c on every scrape.
func Register(reg prometheus.Registerer, c Collector) error {
	counters := []struct {
		name  string
		help  string
		value func(SearchMetric) int
	}{
		{"pacman_nodes_evaluated_total", "Static evaluations during game-tree search", func(m SearchMetric) int { return m.Nodes }},
		{"pacman_alphabeta_cutoffs_total", "Branches pruned by alpha-beta search", func(m SearchMetric) int { return m.Cutoffs }},
		{"pacman_search_expansions_total", "States expanded by graph search", func(m SearchMetric) int { return m.Expansions }},
		{"pacman_qlearning_updates_total", "Q-value updates", func(m SearchMetric) int { return m.Updates }},
		{"pacman_episodes_total", "Finished episodes", func(m SearchMetric) int { return m.Episodes }},
	}

	for _, counter := range counters {
		value := counter.value
		err := reg.Register(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: counter.name,
			Help: counter.help,
		}, func() float64 {
			return float64(value(c.Complete()))
		}))
		if err != nil {
			return fmt.Errorf("failed to register %s: %w", counter.name, err)
		}
	}
	return nil
}
