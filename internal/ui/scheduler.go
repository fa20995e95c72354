package ui

import (
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"repohub/internal/rx"
)

// loopMsg wakes the model to run posted work
type loopMsg struct{}

// LoopScheduler runs posted work inside the Bubble Tea update loop.
// Listen must be kept running: the model re-issues it after every loopMsg.
type LoopScheduler struct {
	mu     sync.Mutex
	queue  []func()
	notify chan struct{}
}

// NewLoopScheduler creates a scheduler with an empty queue
func NewLoopScheduler() *LoopScheduler {
	return &LoopScheduler{notify: make(chan struct{}, 1)}
}

var _ rx.Scheduler = (*LoopScheduler)(nil)

func (s *LoopScheduler) Now() time.Time {
	return time.Now()
}

// Post queues fn. Safe to call from any goroutine.
func (s *LoopScheduler) Post(fn func()) {
	s.mu.Lock()
	s.queue = append(s.queue, fn)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Schedule posts fn once delay has elapsed
func (s *LoopScheduler) Schedule(delay time.Duration, fn func()) rx.Disposable {
	var cancelled atomic.Bool
	timer := time.AfterFunc(delay, func() {
		s.Post(func() {
			if !cancelled.Load() {
				fn()
			}
		})
	})
	return rx.NewDisposable(func() {
		cancelled.Store(true)
		timer.Stop()
	})
}

// Listen waits until work is posted
func (s *LoopScheduler) Listen() tea.Cmd {
	return func() tea.Msg {
		<-s.notify
		return loopMsg{}
	}
}

// Drain runs every queued function, including ones queued meanwhile
func (s *LoopScheduler) Drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, fn := range batch {
			fn()
		}
	}
}
