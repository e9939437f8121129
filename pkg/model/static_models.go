package model

// IntModel exposes n rows where row i yields the value i. Used for
// count-based repetition. The model is read-only and never notifies.
type IntModel int

func (m IntModel) RowCount() int {
	if m < 0 {
		return 0
	}
	return int(m)
}

func (m IntModel) RowData(row int) (int, bool) {
	if row < 0 || row >= m.RowCount() {
		return 0, false
	}
	return row, true
}

func (m IntModel) SetRowData(row int, data int) {
	reportReadOnlyWrite("model.IntModel.SetRowData", row)
}

func (m IntModel) AttachPeer(peer *Peer) {
	// The model never changes: nothing to attach.
}

// BoolModel exposes one row when true and none when false. Used for
// conditional instantiation.
type BoolModel bool

func (m BoolModel) RowCount() int {
	if m {
		return 1
	}
	return 0
}

func (m BoolModel) RowData(row int) (struct{}, bool) {
	if row != 0 || !m {
		return struct{}{}, false
	}
	return struct{}{}, true
}

func (m BoolModel) SetRowData(row int, data struct{}) {
	reportReadOnlyWrite("model.BoolModel.SetRowData", row)
}

func (m BoolModel) AttachPeer(peer *Peer) {
	// The model never changes: nothing to attach.
}
