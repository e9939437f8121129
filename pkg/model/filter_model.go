package model

import (
	"slices"
	"sort"

	"github.com/go-drift/reactive/pkg/diagnostics"
)

// FilterModel presents the subset of a source model's rows that
// satisfy a predicate, maintained incrementally: each source
// notification costs O(changed rows + log n), never a full re-scan.
type FilterModel[T any] struct {
	source Model[T]
	keep   func(T) bool

	// accepted holds the source indices of rows passing the
	// predicate, strictly increasing.
	accepted []int

	notify Notifier
	peer   *Peer
}

// NewFilterModel wraps source, keeping the rows for which keep returns
// true.
func NewFilterModel[T any](source Model[T], keep func(T) bool) *FilterModel[T] {
	m := &FilterModel[T]{source: source, keep: keep}
	m.rebuild()
	m.peer = NewPeer(&filterView[T]{m})
	source.AttachPeer(m.peer)
	return m
}

// filterView routes source notifications into the adapter without
// exposing the View methods on the model itself.
type filterView[T any] struct {
	m *FilterModel[T]
}

func (v *filterView[T]) RowChanged(row int)          { v.m.sourceRowChanged(row) }
func (v *filterView[T]) RowAdded(index, count int)   { v.m.sourceRowAdded(index, count) }
func (v *filterView[T]) RowRemoved(index, count int) { v.m.sourceRowRemoved(index, count) }
func (v *filterView[T]) Reset()                      { v.m.sourceReset() }

func (m *FilterModel[T]) RowCount() int {
	return len(m.accepted)
}

func (m *FilterModel[T]) RowData(row int) (T, bool) {
	if row < 0 || row >= len(m.accepted) {
		var zero T
		return zero, false
	}
	return m.source.RowData(m.accepted[row])
}

// SetRowData forwards the write to the source row. The resulting
// RowChanged from the source maps back through the adapter.
func (m *FilterModel[T]) SetRowData(row int, data T) {
	if row < 0 || row >= len(m.accepted) {
		reportOutOfRangeWrite("model.FilterModel.SetRowData", row, len(m.accepted))
		return
	}
	m.source.SetRowData(m.accepted[row], data)
}

func (m *FilterModel[T]) AttachPeer(peer *Peer) {
	m.notify.Attach(peer)
}

// SetFilter replaces the predicate, re-deriving the subset and
// emitting a Reset.
func (m *FilterModel[T]) SetFilter(keep func(T) bool) {
	m.keep = keep
	m.rebuild()
	m.notify.Reset()
}

// Destroy detaches the adapter from its source.
func (m *FilterModel[T]) Destroy() {
	m.peer.Drop()
}

func (m *FilterModel[T]) rebuild() {
	m.accepted = m.accepted[:0]
	count := m.source.RowCount()
	for i := 0; i < count; i++ {
		if data, ok := m.source.RowData(i); ok && m.keep(data) {
			m.accepted = append(m.accepted, i)
		}
	}
}

func (m *FilterModel[T]) sourceRowChanged(row int) {
	diagnostics.CountAdapterOp()
	pos := sort.SearchInts(m.accepted, row)
	present := pos < len(m.accepted) && m.accepted[pos] == row
	data, ok := m.source.RowData(row)
	accepted := ok && m.keep(data)
	switch {
	case present && accepted:
		m.notify.RowChanged(pos)
	case present && !accepted:
		m.accepted = slices.Delete(m.accepted, pos, pos+1)
		m.notify.RowRemoved(pos, 1)
	case !present && accepted:
		m.accepted = slices.Insert(m.accepted, pos, row)
		m.notify.RowAdded(pos, 1)
	}
}

func (m *FilterModel[T]) sourceRowAdded(index, count int) {
	if count <= 0 {
		return
	}
	diagnostics.CountAdapterOp()
	insertPos := sort.SearchInts(m.accepted, index)
	// Renumber rows displaced by the insertion even if nothing was
	// accepted.
	for j := insertPos; j < len(m.accepted); j++ {
		m.accepted[j] += count
	}
	var newly []int
	for i := index; i < index+count; i++ {
		if data, ok := m.source.RowData(i); ok && m.keep(data) {
			newly = append(newly, i)
		}
	}
	if len(newly) == 0 {
		return
	}
	m.accepted = slices.Insert(m.accepted, insertPos, newly...)
	m.notify.RowAdded(insertPos, len(newly))
}

func (m *FilterModel[T]) sourceRowRemoved(index, count int) {
	if count <= 0 {
		return
	}
	diagnostics.CountAdapterOp()
	// accepted is sorted, so the removed entries form one contiguous
	// range in filtered space.
	start := sort.SearchInts(m.accepted, index)
	end := sort.SearchInts(m.accepted, index+count)
	removed := end - start
	m.accepted = slices.Delete(m.accepted, start, end)
	for j := start; j < len(m.accepted); j++ {
		m.accepted[j] -= count
	}
	if removed > 0 {
		m.notify.RowRemoved(start, removed)
	}
}

func (m *FilterModel[T]) sourceReset() {
	m.rebuild()
	m.notify.Reset()
}
