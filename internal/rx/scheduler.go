package rx

import (
	"sort"
	"sync"
	"time"
)

// Scheduler runs work on the single UI loop
type Scheduler interface {
	// Now returns the scheduler's notion of the current time
	Now() time.Time
	// Post queues fn to run on the UI loop. Safe to call from any goroutine.
	Post(fn func())
	// Schedule runs fn on the UI loop once delay has elapsed.
	// Disposing the result before then cancels it.
	Schedule(delay time.Duration, fn func()) Disposable
}

type virtualTimer struct {
	due       time.Time
	seq       uint64
	fn        func()
	cancelled bool
}

// VirtualScheduler is a Scheduler driven by a logical clock.
// Nothing runs until Flush or Advance is called.
type VirtualScheduler struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	posted []func()
	timers []*virtualTimer
}

// NewVirtualScheduler creates a scheduler whose clock starts at the Unix epoch
func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{now: time.Unix(0, 0)}
}

// Now returns the logical time
func (s *VirtualScheduler) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Post queues fn until the next Flush or Advance
func (s *VirtualScheduler) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Schedule registers fn to run once the logical clock reaches now+delay
func (s *VirtualScheduler) Schedule(delay time.Duration, fn func()) Disposable {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &virtualTimer{due: s.now.Add(delay), seq: s.seq, fn: fn}
	s.timers = append(s.timers, t)
	return NewDisposable(func() {
		s.mu.Lock()
		t.cancelled = true
		s.mu.Unlock()
	})
}

// Flush runs posted work, including work posted while flushing
func (s *VirtualScheduler) Flush() {
	for {
		s.mu.Lock()
		if len(s.posted) == 0 {
			s.mu.Unlock()
			return
		}
		fn := s.posted[0]
		s.posted = s.posted[1:]
		s.mu.Unlock()
		fn()
	}
}

// Advance moves the clock forward by d, running every timer that falls due
// in order of due time
func (s *VirtualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now.Add(d)
	s.mu.Unlock()

	for {
		s.Flush()
		t := s.nextDue(target)
		if t == nil {
			break
		}
		t.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
	s.Flush()
}

// Pending returns the number of timers that have not fired or been cancelled
func (s *VirtualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// nextDue pops the earliest live timer due at or before target and moves
// the clock to its due time
func (s *VirtualScheduler) nextDue(target time.Time) *virtualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.timers[:0]
	for _, t := range s.timers {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.timers = live
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due.Equal(s.timers[j].due) {
			return s.timers[i].seq < s.timers[j].seq
		}
		return s.timers[i].due.Before(s.timers[j].due)
	})

	if len(s.timers) == 0 || s.timers[0].due.After(target) {
		return nil
	}
	t := s.timers[0]
	s.timers = s.timers[1:]
	if t.due.After(s.now) {
		s.now = t.due
	}
	return t
}
