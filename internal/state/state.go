// Package state provides a minimal observable value cell: a single current
// value plus subscriber callbacks invoked synchronously on every change, in
// registration order. Last write wins.
package state

import "sync"

type Cell[T any] struct {
	mu          sync.Mutex
	value       T
	nextID      int
	subscribers []subscriber[T]
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

func (cell *Cell[T]) Get() T {
	cell.mu.Lock()
	defer cell.mu.Unlock()
	return cell.value
}

func (cell *Cell[T]) Set(value T) {
	cell.mu.Lock()
	cell.value = value
	subscribers := make([]subscriber[T], len(cell.subscribers))
	copy(subscribers, cell.subscribers)
	cell.mu.Unlock()

	for _, entry := range subscribers {
		entry.fn(value)
	}
}

// Subscribe registers a callback and returns a function that removes it.
// The callback is not invoked with the current value, only on changes.
func (cell *Cell[T]) Subscribe(fn func(T)) func() {
	cell.mu.Lock()
	cell.nextID++
	id := cell.nextID
	cell.subscribers = append(cell.subscribers, subscriber[T]{id: id, fn: fn})
	cell.mu.Unlock()

	return func() {
		cell.mu.Lock()
		defer cell.mu.Unlock()
		for i, entry := range cell.subscribers {
			if entry.id == id {
				cell.subscribers = append(cell.subscribers[:i], cell.subscribers[i+1:]...)
				return
			}
		}
	}
}
