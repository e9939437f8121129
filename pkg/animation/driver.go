package animation

import (
	"sync"
	"time"
)

// TickFunc advances one running animation to the given time.
// It returns true when the animation has finished and should be
// removed from the driver.
type TickFunc func(now time.Time) bool

// Driver is a registry of running animations. The embedding event loop
// calls Tick once per iteration; each registered animation samples the
// clock and invalidates its dependents.
type Driver struct {
	mu     sync.Mutex
	active map[int]TickFunc
	nextID int
}

// NewDriver creates an empty animation driver.
func NewDriver() *Driver {
	return &Driver{active: make(map[int]TickFunc)}
}

// Schedule registers a running animation. Returns a cancel function
// that removes the animation without completing it.
func (d *Driver) Schedule(tick TickFunc) func() {
	if tick == nil {
		return func() {}
	}
	d.mu.Lock()
	id := d.nextID
	d.nextID++
	d.active[id] = tick
	d.mu.Unlock()
	return func() {
		d.mu.Lock()
		delete(d.active, id)
		d.mu.Unlock()
	}
}

// Tick advances every registered animation to now, removing the ones
// that report completion. Animations scheduled from within a tick are
// picked up on the next Tick.
func (d *Driver) Tick(now time.Time) {
	d.mu.Lock()
	ids := make([]int, 0, len(d.active))
	ticks := make([]TickFunc, 0, len(d.active))
	for id, tick := range d.active {
		ids = append(ids, id)
		ticks = append(ticks, tick)
	}
	d.mu.Unlock()

	for i, tick := range ticks {
		if tick(now) {
			d.mu.Lock()
			delete(d.active, ids[i])
			d.mu.Unlock()
		}
	}
}

// HasActive reports whether any animation is still running. Event loops
// use this to keep scheduling frames while animations play.
func (d *Driver) HasActive() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.active) > 0
}

// defaultDriver serves animations started without an explicit driver.
var defaultDriver = NewDriver()

// Schedule registers a running animation with the default driver.
func Schedule(tick TickFunc) func() { return defaultDriver.Schedule(tick) }

// Tick advances the default driver to now.
func Tick(now time.Time) { defaultDriver.Tick(now) }

// HasActive reports whether the default driver has running animations.
func HasActive() bool { return defaultDriver.HasActive() }
