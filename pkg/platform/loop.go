package platform

import (
	goerrors "errors"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/reactive/pkg/animation"
	"github.com/go-drift/reactive/pkg/errors"
)

// frameInterval is how often the loop ticks running animations.
const frameInterval = 16 * time.Millisecond

// Loop is the cooperative event loop that owns the reactive graph.
// All property and model mutation happens on the goroutine the loop is
// attached to; other goroutines hand work over with Post (or the
// package-level Dispatch).
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	wake   chan struct{}
	quit   bool
	goID   uint64
	timers *TimerService
}

// NewLoop creates a loop. It does nothing until Attach or Run is
// called on the UI goroutine.
func NewLoop() *Loop {
	return &Loop{
		wake:   make(chan struct{}, 1),
		timers: newTimerService(),
	}
}

// Timers returns the loop's timer service.
func (l *Loop) Timers() *TimerService {
	return l.timers
}

// Post queues fn to run on the loop's goroutine between iterations.
// Safe to call from any goroutine.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()
	l.signal()
}

// Quit asks Run to return after the current iteration.
func (l *Loop) Quit() {
	l.mu.Lock()
	l.quit = true
	l.mu.Unlock()
	l.signal()
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Attach binds the loop to the calling goroutine and registers it as
// the process-wide UI loop for affinity checks and Dispatch. Run calls
// this automatically; call it directly when pumping the loop manually
// (tests, embedders with their own frame loop).
func (l *Loop) Attach() {
	l.mu.Lock()
	l.goID = goroutineID()
	l.mu.Unlock()

	loopMu.Lock()
	currentLoop = l
	loopMu.Unlock()
	RegisterDispatch(l.Post)
}

// Detach unregisters the loop.
func (l *Loop) Detach() {
	loopMu.Lock()
	if currentLoop == l {
		currentLoop = nil
	}
	loopMu.Unlock()
	RegisterDispatch(nil)
}

// Pump runs one loop iteration without blocking: drains posted
// callbacks, fires due timers, and advances running animations.
// Returns true if any work was done.
func (l *Loop) Pump() bool {
	worked := l.drain()
	now := animation.Now()
	if l.timers.activate(now) {
		worked = true
	}
	if animation.HasActive() {
		animation.Tick(now)
		worked = true
	}
	// Timers or animations may have posted more work.
	if l.drain() {
		worked = true
	}
	return worked
}

// Run attaches the loop to the calling goroutine and processes posted
// callbacks, timers, and animations until Quit is called.
func (l *Loop) Run() {
	l.Attach()
	defer l.Detach()

	for {
		l.mu.Lock()
		quit := l.quit
		l.mu.Unlock()
		if quit {
			return
		}

		l.Pump()

		wait := l.nextWait()
		if wait <= 0 {
			continue
		}
		timer := time.NewTimer(wait)
		select {
		case <-l.wake:
			timer.Stop()
		case <-timer.C:
		}
	}
}

// nextWait computes how long the loop may sleep before the next timer
// deadline or animation frame.
func (l *Loop) nextWait() time.Duration {
	if animation.HasActive() {
		return frameInterval
	}
	if deadline, ok := l.timers.nextDeadline(); ok {
		wait := deadline.Sub(animation.Now())
		if wait < 0 {
			return 0
		}
		return wait
	}
	return time.Hour
}

// drain runs all currently queued callbacks. Panics in callbacks are
// recovered and reported so one bad callback cannot take down the
// loop.
func (l *Loop) drain() bool {
	l.mu.Lock()
	queue := l.queue
	l.queue = nil
	l.mu.Unlock()
	for _, fn := range queue {
		runPosted(fn)
	}
	return len(queue) > 0
}

func runPosted(fn func()) {
	defer errors.Recover("platform.Loop.drain")
	fn()
}

var (
	loopMu      sync.RWMutex
	currentLoop *Loop
)

var errWrongGoroutine = goerrors.New("reactive graph accessed from a non-UI goroutine; use platform.Dispatch")

// AssertUIThread verifies that the caller runs on the goroutine of the
// attached loop. It is a no-op when DebugChecks is disabled or no loop
// is attached (tests construct isolated graphs without a loop).
// Violations are fatal: they are reported and panic.
func AssertUIThread(op string) {
	if !DebugChecks {
		return
	}
	loopMu.RLock()
	l := currentLoop
	loopMu.RUnlock()
	if l == nil {
		return
	}
	l.mu.Lock()
	bound := l.goID
	l.mu.Unlock()
	if bound == 0 || bound == goroutineID() {
		return
	}
	err := &errors.ReactiveError{
		Op:         op,
		Kind:       errors.KindAffinity,
		Err:        errWrongGoroutine,
		StackTrace: errors.CaptureStack(),
	}
	errors.Report(err)
	panic(err)
}

// goroutineID parses the current goroutine id from the runtime stack
// header. Only used for the debug affinity check, never for logic.
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	header := strings.Fields(string(buf[:n]))
	if len(header) < 2 {
		return 0
	}
	id, err := strconv.ParseUint(header[1], 10, 64)
	if err != nil {
		return 0
	}
	return id
}
