// Package repeater materializes model rows into live component
// instances, one per row, creating and destroying as few instances as
// possible as the model changes.
package repeater

import (
	"github.com/go-drift/reactive/pkg/diagnostics"
	"github.com/go-drift/reactive/pkg/model"
	"github.com/go-drift/reactive/pkg/property"
)

// entryState tracks whether an entry's instance reflects the current
// row data.
type entryState int

const (
	entryClean entryState = iota
	entryDirty
)

// entry pairs one tracked row with its (possibly not yet created)
// instance. The entry list is index-aligned with the observed model.
type entry[C any] struct {
	state    entryState
	instance C
	created  bool
}

// Repeater observes a model and keeps one component instance per row.
//
// Instance identity is stable across non-structural changes: a row
// insertion shifts trailing instances to new logical positions without
// recreating them, and a row change refreshes exactly one instance.
type Repeater[T, C any] struct {
	// model is a tracked property so enclosing trackers (layout,
	// visibility) re-run when the model reference is swapped.
	model    *property.Property[model.Model[T]]
	attached model.Model[T]
	peer     *model.Peer

	// listDirty is a property rather than a plain flag so that row
	// notifications arriving between updates invalidate whatever
	// tracker last called EnsureUpdated.
	listDirty  *property.Property[bool]
	entries    []entry[C]
	rebuildAll bool

	create func() C
	update func(instance C, index int, data T)
	init   func(instance C)
	drop   func(instance C)
}

// New creates a repeater. create builds one instance; update pushes a
// row's data into an instance.
func New[T, C any](create func() C, update func(instance C, index int, data T)) *Repeater[T, C] {
	r := &Repeater[T, C]{create: create, update: update}
	// Model handles compare by identity: two distinct models with
	// equal contents are still different models.
	r.model = property.NewWithEqual[model.Model[T]](nil, func(a, b model.Model[T]) bool {
		return a == b
	})
	r.listDirty = property.New(false)
	return r
}

// SetInitInstance registers a post-construction hook, invoked exactly
// once per instance, after the first data push.
func (r *Repeater[T, C]) SetInitInstance(init func(instance C)) {
	r.init = init
}

// SetDropInstance registers a destruction hook for removed instances.
func (r *Repeater[T, C]) SetDropInstance(drop func(instance C)) {
	r.drop = drop
}

// SetModel points the repeater at a model.
func (r *Repeater[T, C]) SetModel(m model.Model[T]) {
	r.model.Set(m)
}

// SetModelBinding derives the observed model from a binding, the way
// generated component code binds `for` expressions.
func (r *Repeater[T, C]) SetModelBinding(f func() model.Model[T]) {
	r.model.SetBinding(f)
}

// repeaterView receives the observed model's notifications.
type repeaterView[T, C any] struct {
	r *Repeater[T, C]
}

func (v *repeaterView[T, C]) RowChanged(row int) {
	r := v.r
	r.listDirty.Set(true)
	if row >= 0 && row < len(r.entries) {
		r.entries[row].state = entryDirty
	}
}

func (v *repeaterView[T, C]) RowAdded(index, count int) {
	r := v.r
	if count <= 0 || index < 0 || index > len(r.entries) {
		return
	}
	r.listDirty.Set(true)
	// Existing entries shift position without losing identity or
	// state; the new slots materialize on the next update.
	blank := make([]entry[C], count)
	for i := range blank {
		blank[i].state = entryDirty
	}
	r.entries = append(r.entries[:index], append(blank, r.entries[index:]...)...)
}

func (v *repeaterView[T, C]) RowRemoved(index, count int) {
	r := v.r
	if count <= 0 || index < 0 || index >= len(r.entries) {
		return
	}
	if index+count > len(r.entries) {
		count = len(r.entries) - index
	}
	r.listDirty.Set(true)
	for i := index; i < index+count; i++ {
		r.dropEntry(&r.entries[i])
	}
	r.entries = append(r.entries[:index], r.entries[index+count:]...)
	// Trailing entries changed logical index, so their index-dependent
	// bindings (y-offset in a list) must recompute.
	for i := index; i < len(r.entries); i++ {
		r.entries[i].state = entryDirty
	}
}

func (v *repeaterView[T, C]) Reset() {
	r := v.r
	r.rebuildAll = true
	r.listDirty.Set(true)
}

// EnsureUpdated reconciles the instance list with the observed model.
// Call before reading instances, typically from layout or rendering
// inside a property.Tracker: even when nothing is dirty the call
// re-registers the tracking edges.
func (r *Repeater[T, C]) EnsureUpdated() {
	m := r.model.Get()
	if m != r.attached {
		r.attachModel(m)
	}
	if r.listDirty.Get() || r.rebuildAll {
		r.materialize(m)
		r.listDirty.Set(false)
	}
}

// attachModel swaps the observed model, preserving instances
// best-effort: if the new model has the same row count the instances
// are kept (all marked dirty), otherwise they are dropped.
func (r *Repeater[T, C]) attachModel(m model.Model[T]) {
	if r.peer != nil {
		r.peer.Drop()
		r.peer = nil
	}
	if m != nil && m.RowCount() == len(r.entries) {
		for i := range r.entries {
			r.entries[i].state = entryDirty
		}
	} else {
		r.dropAll()
	}
	r.attached = m
	if m != nil {
		r.peer = model.NewPeer(&repeaterView[T, C]{r})
		m.AttachPeer(r.peer)
	}
	r.rebuildAll = false
	r.listDirty.Set(true)
}

// materialize resizes the entry list to the model's row count and
// pushes fresh data into every dirty entry, creating instances where
// missing.
func (r *Repeater[T, C]) materialize(m model.Model[T]) {
	if r.rebuildAll {
		count := 0
		if m != nil {
			count = m.RowCount()
		}
		if count == len(r.entries) {
			for i := range r.entries {
				r.entries[i].state = entryDirty
			}
		} else {
			r.dropAll()
		}
		r.rebuildAll = false
	}
	count := 0
	if m != nil {
		count = m.RowCount()
	}
	for i := count; i < len(r.entries); i++ {
		r.dropEntry(&r.entries[i])
	}
	if count < len(r.entries) {
		r.entries = r.entries[:count]
	}
	for len(r.entries) < count {
		r.entries = append(r.entries, entry[C]{state: entryDirty})
	}
	for i := range r.entries {
		e := &r.entries[i]
		if e.state != entryDirty {
			continue
		}
		firstTime := false
		if !e.created {
			e.instance = r.create()
			e.created = true
			firstTime = true
			diagnostics.CountInstantiation()
		}
		if data, ok := m.RowData(i); ok {
			r.update(e.instance, i, data)
		}
		if firstTime && r.init != nil {
			r.init(e.instance)
		}
		e.state = entryClean
	}
}

// Len returns the number of tracked rows.
func (r *Repeater[T, C]) Len() int {
	return len(r.entries)
}

// Instance returns the instance for a row, if one has been created.
func (r *Repeater[T, C]) Instance(index int) (C, bool) {
	if index < 0 || index >= len(r.entries) || !r.entries[index].created {
		var zero C
		return zero, false
	}
	return r.entries[index].instance, true
}

// ForEach visits every created instance in row order. Return false
// from the visitor to stop.
func (r *Repeater[T, C]) ForEach(visit func(index int, instance C) bool) {
	for i := range r.entries {
		if !r.entries[i].created {
			continue
		}
		if !visit(i, r.entries[i].instance) {
			return
		}
	}
}

// Destroy drops all instances and detaches from the model.
func (r *Repeater[T, C]) Destroy() {
	if r.peer != nil {
		r.peer.Drop()
		r.peer = nil
	}
	r.dropAll()
	r.attached = nil
	r.model.Destroy()
	r.listDirty.Destroy()
}

func (r *Repeater[T, C]) dropAll() {
	for i := range r.entries {
		r.dropEntry(&r.entries[i])
	}
	r.entries = nil
}

func (r *Repeater[T, C]) dropEntry(e *entry[C]) {
	if e.created && r.drop != nil {
		r.drop(e.instance)
	}
	e.created = false
	var zero C
	e.instance = zero
}
