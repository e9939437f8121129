package model

import (
	"slices"
	"sort"

	"github.com/go-drift/reactive/pkg/diagnostics"
)

// SortModel presents a source model's rows in comparator order,
// maintained incrementally while clean and rebuilt lazily after a
// Reset.
//
// The comparator must define a strict weak ordering. Rows that compare
// equal are ordered by their source index, so equal elements keep a
// deterministic, source-relative order.
type SortModel[T any] struct {
	source Model[T]
	less   func(a, b T) bool

	// sorted is a permutation of [0, source.RowCount()) in comparator
	// order. Invalid while dirty.
	sorted []int
	dirty  bool

	notify Notifier
	peer   *Peer
}

// NewSortModel wraps source, ordering rows by less. The permutation is
// built lazily on first access.
func NewSortModel[T any](source Model[T], less func(a, b T) bool) *SortModel[T] {
	m := &SortModel[T]{source: source, less: less, dirty: true}
	m.peer = NewPeer(&sortView[T]{m})
	source.AttachPeer(m.peer)
	return m
}

type sortView[T any] struct {
	m *SortModel[T]
}

func (v *sortView[T]) RowChanged(row int)          { v.m.sourceRowChanged(row) }
func (v *sortView[T]) RowAdded(index, count int)   { v.m.sourceRowAdded(index, count) }
func (v *sortView[T]) RowRemoved(index, count int) { v.m.sourceRowRemoved(index, count) }
func (v *sortView[T]) Reset()                      { v.m.sourceReset() }

func (m *SortModel[T]) RowCount() int {
	m.ensureSorted()
	return len(m.sorted)
}

func (m *SortModel[T]) RowData(row int) (T, bool) {
	m.ensureSorted()
	if row < 0 || row >= len(m.sorted) {
		var zero T
		return zero, false
	}
	return m.source.RowData(m.sorted[row])
}

// SetRowData forwards the write to the underlying source row.
func (m *SortModel[T]) SetRowData(row int, data T) {
	m.ensureSorted()
	if row < 0 || row >= len(m.sorted) {
		reportOutOfRangeWrite("model.SortModel.SetRowData", row, len(m.sorted))
		return
	}
	m.source.SetRowData(m.sorted[row], data)
}

func (m *SortModel[T]) AttachPeer(peer *Peer) {
	m.notify.Attach(peer)
}

// SetSortOrder replaces the comparator, invalidating the permutation
// and emitting a Reset.
func (m *SortModel[T]) SetSortOrder(less func(a, b T) bool) {
	m.less = less
	m.dirty = true
	m.notify.Reset()
}

// Destroy detaches the adapter from its source.
func (m *SortModel[T]) Destroy() {
	m.peer.Drop()
}

// ensureSorted rebuilds the permutation if it was invalidated by a
// Reset.
func (m *SortModel[T]) ensureSorted() {
	if !m.dirty {
		return
	}
	count := m.source.RowCount()
	m.sorted = m.sorted[:0]
	for i := 0; i < count; i++ {
		m.sorted = append(m.sorted, i)
	}
	slices.SortStableFunc(m.sorted, func(a, b int) int {
		da, _ := m.source.RowData(a)
		db, _ := m.source.RowData(b)
		switch {
		case m.less(da, db):
			return -1
		case m.less(db, da):
			return 1
		default:
			return a - b
		}
	})
	m.dirty = false
}

// insertionPoint returns where a row with the given data belongs,
// comparing against current source data. Ties order by source index.
func (m *SortModel[T]) insertionPoint(row int, data T) int {
	return sort.Search(len(m.sorted), func(k int) bool {
		existing := m.sorted[k]
		ed, _ := m.source.RowData(existing)
		if m.less(ed, data) {
			return false
		}
		if m.less(data, ed) {
			return true
		}
		return existing > row
	})
}

func (m *SortModel[T]) sourceRowChanged(row int) {
	if m.dirty {
		m.notify.Reset()
		return
	}
	diagnostics.CountAdapterOp()
	oldPos := slices.Index(m.sorted, row)
	if oldPos < 0 {
		return
	}
	data, _ := m.source.RowData(row)
	m.sorted = slices.Delete(m.sorted, oldPos, oldPos+1)
	newPos := m.insertionPoint(row, data)
	m.sorted = slices.Insert(m.sorted, newPos, row)
	if newPos == oldPos {
		m.notify.RowChanged(oldPos)
	} else {
		m.notify.RowRemoved(oldPos, 1)
		m.notify.RowAdded(newPos, 1)
	}
}

func (m *SortModel[T]) sourceRowAdded(index, count int) {
	if count <= 0 {
		return
	}
	if m.dirty {
		m.notify.Reset()
		return
	}
	diagnostics.CountAdapterOp()
	// Renumber existing entries displaced by the insertion first, so
	// comparisons read the right source rows.
	for k := range m.sorted {
		if m.sorted[k] >= index {
			m.sorted[k] += count
		}
	}
	for i := index; i < index+count; i++ {
		data, _ := m.source.RowData(i)
		pos := m.insertionPoint(i, data)
		m.sorted = slices.Insert(m.sorted, pos, i)
		m.notify.RowAdded(pos, 1)
	}
}

func (m *SortModel[T]) sourceRowRemoved(index, count int) {
	if count <= 0 {
		return
	}
	if m.dirty {
		m.notify.Reset()
		return
	}
	diagnostics.CountAdapterOp()
	// The removed source rows are scattered in sorted space; collect
	// their positions, then emit one removal per contiguous run.
	var positions []int
	for k, src := range m.sorted {
		if src >= index && src < index+count {
			positions = append(positions, k)
		}
	}
	kept := m.sorted[:0]
	for _, src := range m.sorted {
		if src >= index && src < index+count {
			continue
		}
		if src >= index+count {
			src -= count
		}
		kept = append(kept, src)
	}
	m.sorted = kept

	// positions is ascending; emit runs in order, adjusting each for
	// the rows already reported removed.
	emitted := 0
	for start := 0; start < len(positions); {
		end := start + 1
		for end < len(positions) && positions[end] == positions[end-1]+1 {
			end++
		}
		runLen := end - start
		m.notify.RowRemoved(positions[start]-emitted, runLen)
		emitted += runLen
		start = end
	}
}

func (m *SortModel[T]) sourceReset() {
	m.dirty = true
	m.notify.Reset()
}
