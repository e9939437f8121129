package property

import (
	goerrors "errors"
	"time"

	"github.com/go-drift/reactive/pkg/animation"
	"github.com/go-drift/reactive/pkg/errors"
	"github.com/go-drift/reactive/pkg/platform"
)

// animState tracks a running interpolation on a property cell. For
// animated bindings the state outlives individual runs: a source
// change retargets the animation instead of jumping.
type animState[T any] struct {
	from, to T
	spec     animation.Animation
	start    time.Time
	binding  func() T // nil for SetAnimatedValue
	cancel   func()
}

var errNoLerp = goerrors.New("property has no interpolation; construct with NewAnimated or call SetLerp")

// SetAnimatedValue transitions the property from its current value to
// v over the configured animation instead of jumping. The property
// reports dirty for the duration of the run.
func (p *Property[T]) SetAnimatedValue(v T, spec animation.Animation) {
	platform.AssertUIThread("property.SetAnimatedValue")
	c := p.resolve()
	if c.lerp == nil {
		errors.Report(&errors.ReactiveError{
			Op:   "property.SetAnimatedValue",
			Kind: errors.KindAnimation,
			Err:  errNoLerp,
		})
		p.Set(v)
		return
	}
	from := c.settledValue()
	c.stopAnimation()
	c.binding = nil
	c.detachSources()
	c.dirty = false
	c.anim = &animState[T]{from: from, to: v, spec: spec, start: animation.Now()}
	c.scheduleAnim()
	c.invalidateDependents()
}

// SetAnimatedBinding attaches a binding whose result is approached via
// the configured animation. Whenever a source of the binding changes,
// the property animates from its current value to the new target.
func (p *Property[T]) SetAnimatedBinding(f func() T, spec animation.Animation) {
	platform.AssertUIThread("property.SetAnimatedBinding")
	c := p.resolve()
	if c.lerp == nil {
		errors.Report(&errors.ReactiveError{
			Op:   "property.SetAnimatedBinding",
			Kind: errors.KindAnimation,
			Err:  errNoLerp,
		})
		p.SetBinding(f)
		return
	}
	from := c.settledValue()
	c.stopAnimation()
	c.binding = nil
	c.anim = &animState[T]{from: from, to: from, spec: spec, start: animation.Now(), binding: f}
	// Dirty so the first Get evaluates the binding and starts the run.
	c.dirty = true
	c.invalidateDependents()
}

// settledValue returns the value a new animation should start from:
// the current interpolation sample if one is running, otherwise the
// (recomputed, if stale) stored value.
func (c *cell[T]) settledValue() T {
	if c.anim != nil {
		return c.sample(animation.Now())
	}
	if c.dirty && c.binding != nil {
		c.recompute()
	}
	return c.value
}

// animatedGet evaluates the property while an animation is attached:
// it retargets animated bindings whose sources changed, samples the
// interpolation, and finalizes completed runs.
func (c *cell[T]) animatedGet() T {
	st := c.anim
	if c.dirty && st.binding != nil {
		cur := c.sample(animation.Now())
		var target T
		c.evaluating = true
		withScope(&c.node, func() {
			target = st.binding()
		})
		c.evaluating = false
		c.dirty = false
		if !c.equal(target, st.to) {
			st.from = cur
			st.to = target
			st.start = animation.Now()
			c.scheduleAnim()
		}
	}

	now := animation.Now()
	if _, done := st.spec.Progress(st.start, now); done {
		c.value = st.to
		if st.binding == nil {
			c.stopAnimation()
		}
		return c.value
	}
	c.value = c.sample(now)
	return c.value
}

func (c *cell[T]) sample(now time.Time) T {
	st := c.anim
	t, _ := st.spec.Progress(st.start, now)
	return c.lerp(st.from, st.to, t)
}

// animating reports whether an interpolation is still running.
func (c *cell[T]) animating() bool {
	st := c.anim
	if st == nil {
		return false
	}
	_, done := st.spec.Progress(st.start, animation.Now())
	return !done
}

// scheduleAnim registers the cell with the animation driver so every
// frame wakes the cell's dependents while the run is active.
func (c *cell[T]) scheduleAnim() {
	st := c.anim
	if st == nil || st.cancel != nil {
		return
	}
	st.cancel = animation.Schedule(func(now time.Time) bool {
		return c.animTick(now)
	})
}

// animTick advances the animation by one frame. It returns true when
// the run is over and the driver entry should be dropped; an animated
// binding keeps its state so the next retarget re-schedules.
func (c *cell[T]) animTick(now time.Time) bool {
	st := c.anim
	if st == nil || c.dead {
		return true
	}
	// Wake dependents so they re-sample the interpolation.
	c.invalidateDependents()
	if _, done := st.spec.Progress(st.start, now); !done {
		return false
	}
	st.cancel = nil
	if st.binding == nil {
		c.value = st.to
		c.anim = nil
	}
	return true
}

func (c *cell[T]) stopAnimation() {
	if c.anim == nil {
		return
	}
	if c.anim.cancel != nil {
		c.anim.cancel()
	}
	c.anim = nil
}
