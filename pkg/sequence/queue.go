package sequence

import "container/heap"

// Ring is a growable FIFO queue backed by a circular buffer. It is the
// workhorse behind flood fills and breadth-first traversals, where an
// explicit queue keeps memory bounded and avoids recursion depth limits.
// Not safe for concurrent use.
type Ring[T any] struct {
	buf  []T
	head int
	tail int
	size int
}

// NewRing creates a Ring with the given initial capacity.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity)}
}

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int {
	return r.size
}

// Push appends a value to the tail of the queue.
func (r *Ring[T]) Push(value T) {
	if r.size == len(r.buf) {
		r.grow()
	}
	r.buf[r.tail] = value
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++
}

// Pop removes and returns the value at the head of the queue.
func (r *Ring[T]) Pop() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	value := r.buf[r.head]
	var zero T
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return value, true
}

func (r *Ring[T]) grow() {
	next := make([]T, len(r.buf)*2)
	for i := 0; i < r.size; i++ {
		next[i] = r.buf[(r.head+i)%len(r.buf)]
	}
	r.buf = next
	r.head = 0
	r.tail = r.size
}

type PriorityItem[T any] struct {
	Value    T
	Priority int
	index    int
}

type priorityQueue[T any] struct {
	items []*PriorityItem[T]
}

func (pq *priorityQueue[T]) Len() int {
	return len(pq.items)
}

func (pq *priorityQueue[T]) Less(i, j int) bool {
	return pq.items[i].Priority > pq.items[j].Priority
}

func (pq *priorityQueue[T]) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *priorityQueue[T]) Push(x any) {
	item := x.(*PriorityItem[T])
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
}

func (pq *priorityQueue[T]) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil  // avoid memory leak
	item.index = -1 // for safety
	pq.items = old[0 : n-1]
	return item
}

// PriorityQueue is a max-heap keyed by an integer priority. Elements with
// equal priority dequeue in an unspecified but deterministic order given a
// deterministic insertion sequence.
type PriorityQueue[T any] struct {
	pq priorityQueue[T]
}

func NewPriorityQueue[T any]() *PriorityQueue[T] {
	pq := &PriorityQueue[T]{}
	heap.Init(&pq.pq)
	return pq
}

func (pq *PriorityQueue[T]) Len() int {
	return pq.pq.Len()
}

func (pq *PriorityQueue[T]) Enqueue(value T, priority int) *PriorityItem[T] {
	item := &PriorityItem[T]{
		Value:    value,
		Priority: priority,
	}
	heap.Push(&pq.pq, item)
	return item
}

func (pq *PriorityQueue[T]) Dequeue() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	item := heap.Pop(&pq.pq).(*PriorityItem[T])
	return item.Value, true
}

func (pq *PriorityQueue[T]) Peek() (T, bool) {
	if pq.pq.Len() == 0 {
		var zero T
		return zero, false
	}
	return pq.pq.items[0].Value, true
}
