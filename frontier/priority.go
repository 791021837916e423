package frontier

import "container/heap"

type entry[T any] struct {
	item     T
	priority float64
	count    uint64 // Insertion order, breaks priority ties
}

type entries[T any] []entry[T]

func (e entries[T]) Len() int { return len(e) }

func (e entries[T]) Less(i, j int) bool {
	if e[i].priority != e[j].priority {
		return e[i].priority < e[j].priority
	}
	return e[i].count < e[j].count
}

func (e entries[T]) Swap(i, j int) { e[i], e[j] = e[j], e[i] }

func (e *entries[T]) Push(x any) {
	*e = append(*e, x.(entry[T]))
}

func (e *entries[T]) Pop() any {
	old := *e
	n := len(old)
	item := old[n-1]
	old[n-1] = entry[T]{}
	*e = old[:n-1]
	return item
}

// PriorityQueue pops the item with the lowest priority first.
// Items with equal priority come out in the order they were pushed.
type PriorityQueue[T any] struct {
	heap  entries[T]
	count uint64
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	return &PriorityQueue[T]{}
}

func (pq *PriorityQueue[T]) Push(item T, priority float64) {
	heap.Push(&pq.heap, entry[T]{item: item, priority: priority, count: pq.count})
	pq.count++
}

func (pq *PriorityQueue[T]) Pop() T {
	if len(pq.heap) == 0 {
		panic("frontier: pop from empty priority queue")
	}
	return heap.Pop(&pq.heap).(entry[T]).item
}

func (pq *PriorityQueue[T]) IsEmpty() bool {
	return len(pq.heap) == 0
}

func (pq *PriorityQueue[T]) Len() int {
	return len(pq.heap)
}

// PriorityQueueFunc is a PriorityQueue that computes the priority of an item on push.
type PriorityQueueFunc[T any] struct {
	queue    PriorityQueue[T]
	priority func(T) float64
}

func NewPriorityQueueFunc[T any](priority func(T) float64) *PriorityQueueFunc[T] {
	return &PriorityQueueFunc[T]{priority: priority}
}

func (pq *PriorityQueueFunc[T]) Push(item T) {
	pq.queue.Push(item, pq.priority(item))
}

func (pq *PriorityQueueFunc[T]) Pop() T {
	return pq.queue.Pop()
}

func (pq *PriorityQueueFunc[T]) IsEmpty() bool {
	return pq.queue.IsEmpty()
}

func (pq *PriorityQueueFunc[T]) Len() int {
	return pq.queue.Len()
}
