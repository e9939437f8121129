package model

// MapModel presents a source model's rows through a pure transform.
// The transform is applied lazily on read, never cached, so structural
// notifications pass through without re-running it.
type MapModel[T, U any] struct {
	source Model[T]
	mapFn  func(T) U
	notify Notifier
	peer   *Peer
}

// NewMapModel wraps source, exposing each row as mapFn(row).
func NewMapModel[T, U any](source Model[T], mapFn func(T) U) *MapModel[T, U] {
	m := &MapModel[T, U]{source: source, mapFn: mapFn}
	m.peer = NewPeer(&mapView[T, U]{m})
	source.AttachPeer(m.peer)
	return m
}

type mapView[T, U any] struct {
	m *MapModel[T, U]
}

func (v *mapView[T, U]) RowChanged(row int)          { v.m.notify.RowChanged(row) }
func (v *mapView[T, U]) RowAdded(index, count int)   { v.m.notify.RowAdded(index, count) }
func (v *mapView[T, U]) RowRemoved(index, count int) { v.m.notify.RowRemoved(index, count) }
func (v *mapView[T, U]) Reset()                      { v.m.notify.Reset() }

func (m *MapModel[T, U]) RowCount() int {
	return m.source.RowCount()
}

func (m *MapModel[T, U]) RowData(row int) (U, bool) {
	data, ok := m.source.RowData(row)
	if !ok {
		var zero U
		return zero, false
	}
	return m.mapFn(data), true
}

// SetRowData is a logged no-op: the transform cannot be inverted.
func (m *MapModel[T, U]) SetRowData(row int, data U) {
	reportReadOnlyWrite("model.MapModel.SetRowData", row)
}

func (m *MapModel[T, U]) AttachPeer(peer *Peer) {
	m.notify.Attach(peer)
}

// Destroy detaches the adapter from its source.
func (m *MapModel[T, U]) Destroy() {
	m.peer.Drop()
}
