package rx

import (
	"sync"
	"sync/atomic"
)

type subjectObserver[T any] struct {
	id     uint64
	fn     func(T)
	active atomic.Bool
}

// Subject is an Observable that also lets the owner push values.
// Observers are notified in subscription order.
type Subject[T any] struct {
	mu        sync.Mutex
	nextID    uint64
	observers []*subjectObserver[T]
}

// NewSubject creates a subject with no observers
func NewSubject[T any]() *Subject[T] {
	return &Subject[T]{}
}

// Subscribe registers observer until the returned Disposable is disposed
func (s *Subject[T]) Subscribe(observer func(T)) Disposable {
	s.mu.Lock()
	s.nextID++
	o := &subjectObserver[T]{id: s.nextID, fn: observer}
	o.active.Store(true)
	s.observers = append(s.observers, o)
	s.mu.Unlock()

	return NewDisposable(func() {
		o.active.Store(false)
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, existing := range s.observers {
			if existing.id == o.id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				break
			}
		}
	})
}

// Next pushes v to every observer.
// An observer disposed while v is being delivered does not receive it.
func (s *Subject[T]) Next(v T) {
	s.mu.Lock()
	snapshot := make([]*subjectObserver[T], len(s.observers))
	copy(snapshot, s.observers)
	s.mu.Unlock()

	for _, o := range snapshot {
		if o.active.Load() {
			o.fn(v)
		}
	}
}

// HasObservers reports whether anything is subscribed
func (s *Subject[T]) HasObservers() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.observers) > 0
}

// Value holds a current value and notifies observers when it changes.
// Subscribing delivers the current value first.
type Value[T comparable] struct {
	mu      sync.Mutex
	current T
	changes *Subject[T]
}

// NewValue creates a Value holding initial
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		changes: NewSubject[T](),
	}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set stores x and notifies observers if it differs from the current value
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	if v.current == x {
		v.mu.Unlock()
		return
	}
	v.current = x
	v.mu.Unlock()

	v.changes.Next(x)
}

// Subscribe delivers the current value, then every distinct change
func (v *Value[T]) Subscribe(observer func(T)) Disposable {
	v.mu.Lock()
	current := v.current
	v.mu.Unlock()

	d := v.changes.Subscribe(observer)
	observer(current)
	return d
}
