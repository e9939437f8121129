package animation

import (
	"math"
	"time"
)

// Animation configures a time-driven property transition.
//
// A zero Animation jumps to the target immediately. Set Duration for a
// finite transition, Curve for easing, Delay to postpone the start, and
// Loops to repeat the transition.
type Animation struct {
	// Duration is the length of one iteration.
	Duration time.Duration

	// Delay postpones the start of the first iteration.
	Delay time.Duration

	// Curve transforms linear progress into eased motion (optional).
	Curve func(float64) float64

	// Loops is the number of iterations. Zero and one both play a
	// single iteration; a negative value loops forever.
	Loops int
}

// Progress returns the eased progress in [0, 1] for an animation that
// started at start, evaluated at now, and whether it has finished.
// A finished animation always reports progress 1.
func (a Animation) Progress(start, now time.Time) (float64, bool) {
	elapsed := now.Sub(start) - a.Delay
	if elapsed < 0 {
		return 0, false
	}
	if a.Duration <= 0 {
		return 1, true
	}

	frac := float64(elapsed) / float64(a.Duration)
	loops := a.Loops
	if loops == 0 {
		loops = 1
	}
	if loops > 0 && frac >= float64(loops) {
		return 1, true
	}
	if frac >= 1 {
		// Looping: wrap into the current iteration.
		frac -= math.Floor(frac)
	}
	if a.Curve != nil {
		return a.Curve(frac), false
	}
	return frac, false
}
