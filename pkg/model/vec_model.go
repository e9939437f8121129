package model

import (
	"slices"

	"github.com/go-drift/reactive/pkg/platform"
)

// VecModel is a mutable, slice-backed model.
type VecModel[T any] struct {
	rows   []T
	notify Notifier
}

// NewVecModel creates a model holding the given rows.
func NewVecModel[T any](rows ...T) *VecModel[T] {
	return &VecModel[T]{rows: rows}
}

// FromSlice creates a model from a copy of rows.
func FromSlice[T any](rows []T) *VecModel[T] {
	return &VecModel[T]{rows: slices.Clone(rows)}
}

func (m *VecModel[T]) RowCount() int {
	return len(m.rows)
}

func (m *VecModel[T]) RowData(row int) (T, bool) {
	if row < 0 || row >= len(m.rows) {
		var zero T
		return zero, false
	}
	return m.rows[row], true
}

func (m *VecModel[T]) SetRowData(row int, data T) {
	platform.AssertUIThread("model.VecModel.SetRowData")
	if row < 0 || row >= len(m.rows) {
		reportOutOfRangeWrite("model.VecModel.SetRowData", row, len(m.rows))
		return
	}
	m.rows[row] = data
	m.notify.RowChanged(row)
}

func (m *VecModel[T]) AttachPeer(peer *Peer) {
	m.notify.Attach(peer)
}

// Push appends rows at the end of the model.
func (m *VecModel[T]) Push(rows ...T) {
	m.Insert(len(m.rows), rows...)
}

// Insert adds rows at the given index.
func (m *VecModel[T]) Insert(index int, rows ...T) {
	platform.AssertUIThread("model.VecModel.Insert")
	if len(rows) == 0 || index < 0 || index > len(m.rows) {
		return
	}
	m.rows = slices.Insert(m.rows, index, rows...)
	m.notify.RowAdded(index, len(rows))
}

// Remove deletes the row at index.
func (m *VecModel[T]) Remove(index int) {
	m.RemoveRange(index, 1)
}

// RemoveRange deletes count rows starting at index.
func (m *VecModel[T]) RemoveRange(index, count int) {
	platform.AssertUIThread("model.VecModel.RemoveRange")
	if index < 0 || count <= 0 || index >= len(m.rows) {
		return
	}
	if index+count > len(m.rows) {
		count = len(m.rows) - index
	}
	m.rows = slices.Delete(m.rows, index, index+count)
	m.notify.RowRemoved(index, count)
}

// SetVec replaces the entire contents, emitting a single Reset.
func (m *VecModel[T]) SetVec(rows []T) {
	platform.AssertUIThread("model.VecModel.SetVec")
	m.rows = slices.Clone(rows)
	m.notify.Reset()
}
