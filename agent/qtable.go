package agent

import (
	"cmp"
	"slices"
	"sync"

	"pacman/game"
)

type qKey struct {
	state  game.StateKey
	action game.Action
}

// Entry is one learned Q-value.
type Entry struct {
	State  string  `parquet:"state"`
	Action string  `parquet:"action"`
	Value  float64 `parquet:"value"`
}

// QTable maps state-action pairs to values. Pairs never updated are worth 0.
type QTable struct {
	mu     sync.RWMutex
	values map[qKey]float64
}

func NewQTable() *QTable {
	return &QTable{values: make(map[qKey]float64)}
}

func (t *QTable) Get(state game.StateKey, action game.Action) float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.values[qKey{state, action}]
}

func (t *QTable) Set(state game.StateKey, action game.Action, value float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.values[qKey{state, action}] = value
}

// Apply replaces the value of a pair by update(old) atomically and returns the new value.
func (t *QTable) Apply(state game.StateKey, action game.Action, update func(old float64) float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	k := qKey{state, action}
	v := update(t.values[k])
	t.values[k] = v
	return v
}

func (t *QTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.values)
}

// Entries lists the table sorted by state then action.
func (t *QTable) Entries() []Entry {
	t.mu.RLock()
	entries := make([]Entry, 0, len(t.values))
	for k, v := range t.values {
		entries = append(entries, Entry{State: string(k.state), Action: string(k.action), Value: v})
	}
	t.mu.RUnlock()

	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(a.State, b.State); c != 0 {
			return c
		}
		return cmp.Compare(a.Action, b.Action)
	})
	return entries
}

func (t *QTable) Load(entries []Entry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, e := range entries {
		t.values[qKey{game.StateKey(e.State), game.Action(e.Action)}] = e.Value
	}
}
