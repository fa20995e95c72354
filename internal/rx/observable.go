package rx

import "sync"

// Unit is the value carried by signals that have no payload
type Unit struct{}

// Disposable releases a subscription or a pending timer
type Disposable interface {
	Dispose()
}

// DisposableFunc adapts a function to Disposable
type DisposableFunc func()

// Dispose calls f
func (f DisposableFunc) Dispose() {
	if f != nil {
		f()
	}
}

// NewDisposable returns a Disposable that runs fn at most once
func NewDisposable(fn func()) Disposable {
	var once sync.Once
	return DisposableFunc(func() {
		once.Do(fn)
	})
}

// Empty is a Disposable that does nothing
var Empty Disposable = DisposableFunc(nil)

// Observable is a push-based source of values
type Observable[T any] interface {
	Subscribe(observer func(T)) Disposable
}

// ObservableFunc adapts a subscribe function to Observable
type ObservableFunc[T any] func(observer func(T)) Disposable

// Subscribe calls f
func (f ObservableFunc[T]) Subscribe(observer func(T)) Disposable {
	return f(observer)
}
