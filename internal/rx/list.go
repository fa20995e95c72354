package rx

import "sync"

// List is an ordered collection that signals after every mutation
type List[T any] struct {
	mu      sync.RWMutex
	items   []T
	changed *Subject[Unit]
}

// NewList creates an empty list
func NewList[T any]() *List[T] {
	return &List[T]{changed: NewSubject[Unit]()}
}

// Changed emits once per mutation
func (l *List[T]) Changed() Observable[Unit] {
	return l.changed
}

// Len returns the number of items
func (l *List[T]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// At returns the item at index i and whether i was in range
func (l *List[T]) At(i int) (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var zero T
	if i < 0 || i >= len(l.items) {
		return zero, false
	}
	return l.items[i], true
}

// Items returns a copy of the items
func (l *List[T]) Items() []T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]T, len(l.items))
	copy(out, l.items)
	return out
}

// Reset replaces the contents
func (l *List[T]) Reset(items []T) {
	l.mu.Lock()
	l.items = append([]T(nil), items...)
	l.mu.Unlock()
	l.changed.Next(Unit{})
}

// Append adds items to the end. Appending nothing is not a change.
func (l *List[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	l.mu.Lock()
	l.items = append(l.items, items...)
	l.mu.Unlock()
	l.changed.Next(Unit{})
}
