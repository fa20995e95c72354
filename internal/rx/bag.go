package rx

import "sync"

// Bag collects disposables that share a lifetime and releases them together
type Bag struct {
	mu       sync.Mutex
	items    []Disposable
	disposed bool
}

// NewBag creates an empty bag
func NewBag() *Bag {
	return &Bag{}
}

// Add puts d in the bag. Adding to a disposed bag disposes d immediately.
func (b *Bag) Add(d Disposable) {
	if d == nil {
		return
	}
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		d.Dispose()
		return
	}
	b.items = append(b.items, d)
	b.mu.Unlock()
}

// Dispose releases everything in the bag. Later calls are no-ops.
func (b *Bag) Dispose() {
	b.mu.Lock()
	if b.disposed {
		b.mu.Unlock()
		return
	}
	b.disposed = true
	items := b.items
	b.items = nil
	b.mu.Unlock()

	for _, d := range items {
		d.Dispose()
	}
}

// Disposed reports whether Dispose has been called
func (b *Bag) Disposed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disposed
}

// Len returns the number of live disposables in the bag
func (b *Bag) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}
