package platform

import (
	"slices"
	"sync"
	"time"

	"github.com/go-drift/reactive/pkg/animation"
	"github.com/go-drift/reactive/pkg/errors"
)

// TimerMode determines whether a timer fires once or repeatedly.
type TimerMode int

const (
	// SingleShot timers fire once and deactivate.
	SingleShot TimerMode = iota
	// Repeated timers re-arm after every activation until stopped.
	Repeated
)

// timerEntry is the service-side state of one timer.
type timerEntry struct {
	deadline time.Time
	interval time.Duration
	mode     TimerMode
	callback func()
	active   bool
}

// TimerService maintains the active timers of a loop and fires the due
// ones in deadline order. Time comes from the animation clock, so
// tests drive timers with a fake clock.
type TimerService struct {
	mu      sync.Mutex
	entries []*timerEntry
}

func newTimerService() *TimerService {
	return &TimerService{}
}

// Timer fires a callback on the loop's goroutine after an interval,
// once or repeatedly. Create with [TimerService.NewTimer].
type Timer struct {
	svc   *TimerService
	entry *timerEntry
}

// NewTimer creates an inactive timer.
func (s *TimerService) NewTimer() *Timer {
	return &Timer{svc: s, entry: &timerEntry{}}
}

// SingleShot fires callback once after delay.
func (s *TimerService) SingleShot(delay time.Duration, callback func()) {
	s.NewTimer().Start(SingleShot, delay, callback)
}

// Start arms the timer. Starting a running timer re-arms it with the
// new interval and callback.
func (t *Timer) Start(mode TimerMode, interval time.Duration, callback func()) {
	s := t.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	t.entry.mode = mode
	t.entry.interval = interval
	t.entry.callback = callback
	t.entry.deadline = animation.Now().Add(interval)
	t.entry.active = true
	if !slices.Contains(s.entries, t.entry) {
		s.entries = append(s.entries, t.entry)
	}
}

// Restart re-arms the timer with its previous interval and callback.
func (t *Timer) Restart() {
	s := t.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.entry.callback == nil {
		return
	}
	t.entry.deadline = animation.Now().Add(t.entry.interval)
	t.entry.active = true
	if !slices.Contains(s.entries, t.entry) {
		s.entries = append(s.entries, t.entry)
	}
}

// Stop deactivates the timer. Stopping an inactive timer is a no-op.
func (t *Timer) Stop() {
	s := t.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	t.entry.active = false
}

// Running reports whether the timer is armed.
func (t *Timer) Running() bool {
	s := t.svc
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.entry.active
}

// activate fires every timer whose deadline has passed, in deadline
// order. Repeated timers re-arm relative to now, so a stalled loop
// fires each repeated timer once rather than catching up. Returns
// whether any timer fired.
func (s *TimerService) activate(now time.Time) bool {
	s.mu.Lock()
	var due []*timerEntry
	kept := s.entries[:0]
	for _, e := range s.entries {
		if !e.active {
			continue // dropped timers are pruned here
		}
		if !e.deadline.After(now) {
			due = append(due, e)
		}
		kept = append(kept, e)
	}
	s.entries = kept
	slices.SortStableFunc(due, func(a, b *timerEntry) int {
		return a.deadline.Compare(b.deadline)
	})
	for _, e := range due {
		if e.mode == Repeated {
			e.deadline = now.Add(e.interval)
		} else {
			e.active = false
		}
	}
	s.mu.Unlock()

	for _, e := range due {
		fireTimer(e)
	}
	return len(due) > 0
}

func fireTimer(e *timerEntry) {
	defer errors.Recover("platform.TimerService.activate")
	e.callback()
}

// nextDeadline returns the earliest deadline of any active timer.
func (s *TimerService) nextDeadline() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best time.Time
	found := false
	for _, e := range s.entries {
		if !e.active {
			continue
		}
		if !found || e.deadline.Before(best) {
			best = e.deadline
			found = true
		}
	}
	return best, found
}
