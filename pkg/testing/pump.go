package testing

import (
	"time"

	"github.com/go-drift/reactive/pkg/animation"
)

// FrameInterval is the simulated frame period used by PumpFrames,
// matching a 60Hz display.
const FrameInterval = 16 * time.Millisecond

// PumpFrames advances the fake clock by n frame intervals, ticking the
// animation driver once per frame. It returns as soon as no animations
// remain active.
func PumpFrames(clock *FakeClock, n int) {
	for i := 0; i < n; i++ {
		clock.Advance(FrameInterval)
		animation.Tick(clock.Now())
		if !animation.HasActive() {
			return
		}
	}
}

// PumpUntilSettled ticks frames until the animation driver drains or
// the frame budget runs out. Returns true if everything settled.
func PumpUntilSettled(clock *FakeClock, maxFrames int) bool {
	for i := 0; i < maxFrames; i++ {
		if !animation.HasActive() {
			return true
		}
		clock.Advance(FrameInterval)
		animation.Tick(clock.Now())
	}
	return !animation.HasActive()
}
