package commands

import (
	"context"
	"log"
	"sync"

	"repohub/internal/rx"
)

// WorkFunc performs a command's work off the UI loop
type WorkFunc[T any] func(ctx context.Context) (T, error)

// Invoker is anything that can be triggered by a signal
type Invoker interface {
	Execute() bool
}

// Action is the type-erased view of a Command used by screens
type Action interface {
	Invoker
	IsExecuting() rx.Observable[bool]
	Completed() rx.Observable[rx.Unit]
	Cancel()
}

// Command represents an asynchronous action. Its running state, results and
// failures are delivered on the UI loop through the scheduler.
type Command[T any] struct {
	name       string
	scheduler  rx.Scheduler
	work       WorkFunc[T]
	canExecute func() bool
	baseCtx    context.Context

	executing *rx.Value[bool]
	results   *rx.Subject[T]
	errors    *rx.Subject[error]

	mu     sync.Mutex
	cancel context.CancelFunc
}

// Option configures a Command
type Option func(*options)

type options struct {
	canExecute func() bool
	ctx        context.Context
}

// WithCanExecute adds a guard checked on every Execute
func WithCanExecute(fn func() bool) Option {
	return func(o *options) {
		o.canExecute = fn
	}
}

// WithContext sets the parent context of every execution
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// New creates a new command
func New[T any](name string, scheduler rx.Scheduler, work WorkFunc[T], opts ...Option) *Command[T] {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Command[T]{
		name:       name,
		scheduler:  scheduler,
		work:       work,
		canExecute: o.canExecute,
		baseCtx:    o.ctx,
		executing:  rx.NewValue(false),
		results:    rx.NewSubject[T](),
		errors:     rx.NewSubject[error](),
	}
}

// Name returns the command name used in logs
func (c *Command[T]) Name() string {
	return c.name
}

// Execute starts the work unless the command is already running or its
// guard refuses. Overlapping executions are dropped, not queued.
func (c *Command[T]) Execute() bool {
	if c.executing.Get() {
		return false
	}
	if c.canExecute != nil && !c.canExecute() {
		return false
	}

	ctx, cancel := context.WithCancel(c.baseCtx)
	c.mu.Lock()
	c.cancel = cancel
	c.mu.Unlock()
	c.executing.Set(true)

	go func() {
		result, err := c.work(ctx)
		c.scheduler.Post(func() {
			c.finish(result, err)
		})
	}()
	return true
}

// finish runs on the UI loop
func (c *Command[T]) finish(result T, err error) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()

	if err != nil {
		log.Printf("Command %s failed: %v", c.name, err)
		c.errors.Next(err)
	} else {
		c.results.Next(result)
	}
	c.executing.Set(false)
}

// Cancel cancels the context of the running execution, if any
func (c *Command[T]) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
	}
}

// IsExecuting emits the current running state, then every change
func (c *Command[T]) IsExecuting() rx.Observable[bool] {
	return c.executing
}

// Executing returns the current running state
func (c *Command[T]) Executing() bool {
	return c.executing.Get()
}

// Results emits the result of every successful execution
func (c *Command[T]) Results() rx.Observable[T] {
	return c.results
}

// Completed emits once per successful execution
func (c *Command[T]) Completed() rx.Observable[rx.Unit] {
	return rx.ToUnit[T](c.results)
}

// Errors emits the error of every failed execution
func (c *Command[T]) Errors() rx.Observable[error] {
	return c.errors
}

// Invoke executes cmd every time src emits
func Invoke[U any](src rx.Observable[U], cmd Invoker) rx.Disposable {
	return src.Subscribe(func(U) {
		cmd.Execute()
	})
}
