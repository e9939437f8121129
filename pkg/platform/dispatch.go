// Package platform provides the single-threaded event loop the
// reactive graph runs on: a cross-goroutine dispatch queue, the
// goroutine-affinity check, and the timer service.
package platform

import "sync"

var (
	dispatchMu   sync.RWMutex
	dispatchFunc func(callback func())
)

// RegisterDispatch sets the dispatch function used to schedule callbacks on
// the UI goroutine. [Loop.Attach] calls this automatically; embedders with
// their own event loop register here once during initialization.
func RegisterDispatch(fn func(callback func())) {
	dispatchMu.Lock()
	dispatchFunc = fn
	dispatchMu.Unlock()
}

// Dispatch schedules a callback to run on the UI goroutine. This is the
// sole concurrency-safe entry point into the reactive graph. Returns true
// if the callback was successfully scheduled, false if no dispatch
// function is registered or the callback is nil.
func Dispatch(callback func()) bool {
	dispatchMu.RLock()
	fn := dispatchFunc
	dispatchMu.RUnlock()
	if fn == nil || callback == nil {
		return false
	}
	fn(callback)
	return true
}
