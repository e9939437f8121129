package property

import (
	"reflect"

	"github.com/go-drift/reactive/pkg/animation"
	"github.com/go-drift/reactive/pkg/diagnostics"
	"github.com/go-drift/reactive/pkg/platform"
)

// Property is a mutable value with dependency tracking and an optional
// binding. Reads inside a binding or [Tracker] evaluation record a
// dependency edge; writes lazily invalidate dependents.
//
// A Property is owned by the component that declares it and must only
// be accessed from the UI goroutine.
type Property[T any] struct {
	cell *cell[T]
}

// cell is the backing storage of a property. Two-way linked properties
// share a cell; the forward pointer re-routes retired cells to the
// shared one.
type cell[T any] struct {
	node
	value   T
	binding func() T
	eq      func(a, b T) bool
	lerp    animation.LerpFunc[T]
	anim    *animState[T]
	forward *cell[T]
}

// New creates a property holding value.
//
// Equality for the Set no-op check defaults to reflect.DeepEqual; use
// [NewWithEqual] or [Property.SetEqualFunc] for identity or custom
// semantics.
func New[T any](value T) *Property[T] {
	return &Property[T]{cell: &cell[T]{value: value}}
}

// NewWithEqual creates a property with a custom equality function.
func NewWithEqual[T any](value T, eq func(a, b T) bool) *Property[T] {
	p := New(value)
	p.cell.eq = eq
	return p
}

// NewAnimated creates a property whose value can be animated with
// SetAnimatedValue and SetAnimatedBinding.
func NewAnimated[T any](value T, lerp animation.LerpFunc[T]) *Property[T] {
	p := New(value)
	p.cell.lerp = lerp
	return p
}

// resolve follows forwarding pointers left behind by two-way linking,
// compressing the path for subsequent calls.
func (p *Property[T]) resolve() *cell[T] {
	c := p.cell
	for c.forward != nil {
		c = c.forward
	}
	p.cell = c
	return c
}

// Get returns the current value, recomputing the binding first if the
// property is dirty. The read is recorded with the innermost active
// tracking scope.
func (p *Property[T]) Get() T {
	c := p.resolve()
	if c.evaluating {
		reportCycle("property.Get")
	}
	if c.anim != nil {
		v := c.animatedGet()
		registerRead(&c.node)
		return v
	}
	if c.dirty {
		if c.binding != nil {
			c.recompute()
		} else {
			c.dirty = false
		}
	}
	registerRead(&c.node)
	return c.value
}

// GetUntracked returns the current value without recording a
// dependency edge. The value is still recomputed if stale.
func (p *Property[T]) GetUntracked() T {
	c := p.resolve()
	if c.evaluating {
		reportCycle("property.GetUntracked")
	}
	if c.anim != nil {
		return c.animatedGet()
	}
	if c.dirty && c.binding != nil {
		c.recompute()
	}
	c.dirty = false
	return c.value
}

// Set stores a new value, detaching any binding and invalidating every
// dependent. Writing a value equal to the stored one while no binding
// is attached is a no-op and invalidates nothing.
func (p *Property[T]) Set(v T) {
	platform.AssertUIThread("property.Set")
	c := p.resolve()
	if c.binding == nil && c.anim == nil && c.equal(c.value, v) {
		return
	}
	c.stopAnimation()
	c.binding = nil
	c.detachSources()
	c.value = v
	c.dirty = false
	c.invalidateDependents()
}

// SetBinding attaches a recomputation rule and marks the property
// dirty, so the next Get evaluates it.
func (p *Property[T]) SetBinding(f func() T) {
	platform.AssertUIThread("property.SetBinding")
	c := p.resolve()
	c.stopAnimation()
	c.binding = f
	c.dirty = true
	c.invalidateDependents()
}

// MarkDirty forces the property dirty and invalidates dependents. This
// is an escape hatch for generated code that mutates state the graph
// cannot see.
func (p *Property[T]) MarkDirty() {
	platform.AssertUIThread("property.MarkDirty")
	c := p.resolve()
	c.dirty = true
	c.invalidateDependents()
}

// IsDirty reports whether the next Get will recompute. A property with
// a running animation stays dirty until the animation completes.
func (p *Property[T]) IsDirty() bool {
	c := p.resolve()
	return c.dirty || c.animating()
}

// SetConstant marks the property as never changing. Reads of a
// constant property skip dependency registration entirely.
func (p *Property[T]) SetConstant() {
	c := p.resolve()
	c.constant = true
	c.dependents = nil
}

// SetEqualFunc overrides the equality used by the Set no-op check.
func (p *Property[T]) SetEqualFunc(eq func(a, b T) bool) {
	p.resolve().eq = eq
}

// SetLerp installs the interpolation used by animated sets.
func (p *Property[T]) SetLerp(lerp animation.LerpFunc[T]) {
	p.resolve().lerp = lerp
}

// Destroy detaches the property from the graph. Stale dependency edges
// pointing at a destroyed property are pruned lazily on the next
// traversal, so destruction is safe at any time.
func (p *Property[T]) Destroy() {
	c := p.resolve()
	c.stopAnimation()
	c.detachSources()
	c.dead = true
	c.dependents = nil
	c.binding = nil
}

// LinkTwoWay merges the storage of two properties so that a write to
// either is observed through both. The second property's value and
// binding win: a binding on the first is re-homed onto the shared cell
// only when the second has none, and is discarded when both are bound.
func LinkTwoWay[T any](a, b *Property[T]) {
	platform.AssertUIThread("property.LinkTwoWay")
	ca, cb := a.resolve(), b.resolve()
	if ca == cb {
		return
	}
	shared := cb
	if shared.binding == nil && ca.binding != nil {
		shared.binding = ca.binding
		shared.dirty = true
	}
	if shared.eq == nil {
		shared.eq = ca.eq
	}
	if shared.lerp == nil {
		shared.lerp = ca.lerp
	}
	ca.stopAnimation()
	ca.detachSources()
	for _, d := range ca.dependents {
		if d.live() {
			shared.addDependent(d)
		}
	}
	ca.dependents = nil
	ca.binding = nil
	ca.dead = true
	ca.forward = shared
	a.cell = shared
	shared.invalidateDependents()
}

func (c *cell[T]) recompute() {
	c.evaluating = true
	defer func() { c.evaluating = false }()
	withScope(&c.node, func() {
		c.value = c.binding()
	})
	c.dirty = false
	diagnostics.CountEvaluation()
}

func (c *cell[T]) equal(a, b T) bool {
	if c.eq != nil {
		return c.eq(a, b)
	}
	return reflect.DeepEqual(a, b)
}
