package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// SearchMetric is a snapshot of the work done by an agent since Start.
type SearchMetric struct {
	Depth      int
	Duration   time.Duration
	Nodes      int // Static evaluations in game-tree search
	Cutoffs    int // Alpha-beta prunings
	Expansions int // States expanded by graph search
	Updates    int // Q-learning updates
	Episodes   int
}

type Collector interface {
	Start(depth int)
	AddNode()
	AddCutoff()
	AddExpansion()
	AddUpdate()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	mu         sync.Mutex // Guards depth and startTime
	depth      int
	startTime  time.Time
	nodes      atomic.Int64
	cutoffs    atomic.Int64
	expansions atomic.Int64
	updates    atomic.Int64
	episodes   atomic.Int64
}

func NewCollector() Collector {
	return &collector{startTime: time.Now()}
}

func (m *collector) Start(depth int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startTime = time.Now()
	m.depth = depth
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddExpansion() {
	m.expansions.Add(1)
}

func (m *collector) AddUpdate() {
	m.updates.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return SearchMetric{
		Depth:      m.depth,
		Duration:   time.Since(m.startTime),
		Nodes:      int(m.nodes.Load()),
		Cutoffs:    int(m.cutoffs.Load()),
		Expansions: int(m.expansions.Load()),
		Updates:    int(m.updates.Load()),
		Episodes:   int(m.episodes.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(depth int)        {}
func (m *dummyCollector) AddNode()               {}
func (m *dummyCollector) AddCutoff()             {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) AddUpdate()             {}
func (m *dummyCollector) AddEpisode()            {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
