package rx

import (
	"sync"
	"time"
)

// Map transforms every value of src with fn
func Map[T, R any](src Observable[T], fn func(T) R) Observable[R] {
	return ObservableFunc[R](func(observer func(R)) Disposable {
		return src.Subscribe(func(v T) {
			observer(fn(v))
		})
	})
}

// ToUnit drops the payload of src
func ToUnit[T any](src Observable[T]) Observable[Unit] {
	return Map(src, func(T) Unit { return Unit{} })
}

// Filter forwards only the values for which pred returns true
func Filter[T any](src Observable[T], pred func(T) bool) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		return src.Subscribe(func(v T) {
			if pred(v) {
				observer(v)
			}
		})
	})
}

// Skip drops the first n values of each subscription
func Skip[T any](src Observable[T], n int) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		seen := 0
		return src.Subscribe(func(v T) {
			if seen < n {
				seen++
				return
			}
			observer(v)
		})
	})
}

// Take forwards the first n values of each subscription, then unsubscribes
func Take[T any](src Observable[T], n int) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		if n <= 0 {
			return Empty
		}
		var (
			mu       sync.Mutex
			count    int
			upstream Disposable
			done     bool
		)
		finish := func() {
			mu.Lock()
			done = true
			d := upstream
			mu.Unlock()
			if d != nil {
				d.Dispose()
			}
		}
		d := src.Subscribe(func(v T) {
			mu.Lock()
			if done || count >= n {
				mu.Unlock()
				return
			}
			count++
			last := count == n
			mu.Unlock()

			observer(v)
			if last {
				finish()
			}
		})

		// src may have emitted synchronously during Subscribe
		mu.Lock()
		upstream = d
		alreadyDone := done
		mu.Unlock()
		if alreadyDone {
			d.Dispose()
		}
		return NewDisposable(finish)
	})
}

// Merge forwards the values of every source as they arrive
func Merge[T any](sources ...Observable[T]) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		bag := NewBag()
		for _, src := range sources {
			bag.Add(src.Subscribe(observer))
		}
		return bag
	})
}

// Switch subscribes to each inner observable src emits, dropping the
// previous inner subscription every time a new one arrives
func Switch[T any](src Observable[Observable[T]]) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		var (
			mu       sync.Mutex
			inner    Disposable
			disposed bool
		)
		outer := src.Subscribe(func(next Observable[T]) {
			mu.Lock()
			previous := inner
			inner = nil
			mu.Unlock()
			if previous != nil {
				previous.Dispose()
			}

			d := next.Subscribe(observer)

			mu.Lock()
			if disposed {
				mu.Unlock()
				d.Dispose()
				return
			}
			inner = d
			mu.Unlock()
		})
		return NewDisposable(func() {
			outer.Dispose()
			mu.Lock()
			disposed = true
			current := inner
			inner = nil
			mu.Unlock()
			if current != nil {
				current.Dispose()
			}
		})
	})
}

// Debounce delivers the latest value of src once no new value has arrived
// for d. Every value restarts the window. Disposing cancels a pending value.
func Debounce[T any](src Observable[T], d time.Duration, scheduler Scheduler) Observable[T] {
	return ObservableFunc[T](func(observer func(T)) Disposable {
		var (
			mu       sync.Mutex
			pending  Disposable
			latest   T
			seq      uint64
			disposed bool
		)
		upstream := src.Subscribe(func(v T) {
			mu.Lock()
			if disposed {
				mu.Unlock()
				return
			}
			latest = v
			seq++
			mine := seq
			previous := pending
			mu.Unlock()

			if previous != nil {
				previous.Dispose()
			}

			timer := scheduler.Schedule(d, func() {
				mu.Lock()
				if disposed || mine != seq {
					mu.Unlock()
					return
				}
				value := latest
				pending = nil
				mu.Unlock()
				observer(value)
			})

			mu.Lock()
			if mine == seq && !disposed {
				pending = timer
			}
			mu.Unlock()
		})
		return NewDisposable(func() {
			upstream.Dispose()
			mu.Lock()
			disposed = true
			current := pending
			pending = nil
			mu.Unlock()
			if current != nil {
				current.Dispose()
			}
		})
	})
}
