package frontier

// Frontier holds the items a search still has to expand.
// Popping an empty frontier is a programming error and panics.
type Frontier[T any] interface {
	Push(item T)
	Pop() T
	IsEmpty() bool
	Len() int
}

// Stack pops the most recently pushed item first.
type Stack[T any] struct {
	items []T
}

func NewStack[T any]() *Stack[T] {
	return &Stack[T]{}
}

func (s *Stack[T]) Push(item T) {
	s.items = append(s.items, item)
}

func (s *Stack[T]) Pop() T {
	if len(s.items) == 0 {
		panic("frontier: pop from empty stack")
	}
	n := len(s.items) - 1
	item := s.items[n]
	var zero T
	s.items[n] = zero
	s.items = s.items[:n]
	return item
}

func (s *Stack[T]) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Queue pops the earliest pushed item first.
type Queue[T any] struct {
	items []T
	head  int
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

func (q *Queue[T]) Pop() T {
	if q.IsEmpty() {
		panic("frontier: pop from empty queue")
	}
	item := q.items[q.head]
	var zero T
	q.items[q.head] = zero
	q.head++
	// Reclaim the consumed prefix once it dominates the buffer
	if q.head > 32 && q.head*2 >= len(q.items) {
		q.items = append([]T(nil), q.items[q.head:]...)
		q.head = 0
	}
	return item
}

func (q *Queue[T]) IsEmpty() bool {
	return q.head == len(q.items)
}

func (q *Queue[T]) Len() int {
	return len(q.items) - q.head
}
