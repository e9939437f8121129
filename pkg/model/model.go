// Package model defines the row-oriented collection protocol consumed
// by repeating UI constructs, plus the incremental Filter, Sort, and
// Map adapters over it.
package model

import (
	goerrors "errors"
	"fmt"

	"github.com/go-drift/reactive/pkg/errors"
)

// Model is an observable ordered sequence of rows.
//
// Implementations must emit notifications only after their internal
// state is fully updated, so an observer reacting to a notification
// never sees a half-updated model.
type Model[T any] interface {
	// RowCount returns the number of rows.
	RowCount() int

	// RowData returns the data for a row. The second return value is
	// false iff row is out of range; callers must treat that as "no
	// such row" and stop iterating.
	RowData(row int) (T, bool)

	// SetRowData writes the data for a row. Read-only models log a
	// diagnostic and do nothing; mutable models emit RowChanged after
	// a successful write.
	SetRowData(row int, data T)

	// AttachPeer subscribes a peer to change notifications.
	AttachPeer(peer *Peer)
}

// View receives structural change notifications from a Model.
//
// RowAdded is delivered after the rows are present and readable at
// [index, index+count); RowRemoved after they are gone. RowChanged
// implies the row count is unchanged. Reset invalidates every cached
// positional assumption and forces a full re-derivation.
type View interface {
	RowChanged(row int)
	RowAdded(index, count int)
	RowRemoved(index, count int)
	Reset()
}

// Peer is a weak handle to a View. A Model never keeps a dead view
// alive: dropping the peer stops notifications, and the notifier
// prunes dropped peers on the next dispatch.
type Peer struct {
	view    View
	dropped bool
}

// NewPeer wraps a view for attachment to one or more models.
func NewPeer(view View) *Peer {
	return &Peer{view: view}
}

// Drop severs the peer. Safe to call at any time, including from
// within a notification.
func (p *Peer) Drop() {
	p.dropped = true
	p.view = nil
}

func (p *Peer) live() bool {
	return p != nil && !p.dropped && p.view != nil
}

// Notifier dispatches model notifications to attached peers. Embed one
// in a Model implementation and forward AttachPeer to Attach.
type Notifier struct {
	peers []*Peer
}

// Attach subscribes a peer. Attaching a dropped peer is a no-op.
func (n *Notifier) Attach(p *Peer) {
	if !p.live() {
		return
	}
	for _, existing := range n.peers {
		if existing == p {
			return
		}
	}
	n.peers = append(n.peers, p)
}

// RowChanged notifies peers that one row's data changed.
func (n *Notifier) RowChanged(row int) {
	n.dispatch(func(v View) { v.RowChanged(row) })
}

// RowAdded notifies peers that count rows were inserted at index.
func (n *Notifier) RowAdded(index, count int) {
	n.dispatch(func(v View) { v.RowAdded(index, count) })
}

// RowRemoved notifies peers that count rows were removed at index.
func (n *Notifier) RowRemoved(index, count int) {
	n.dispatch(func(v View) { v.RowRemoved(index, count) })
}

// Reset notifies peers that the model changed beyond incremental
// description.
func (n *Notifier) Reset() {
	n.dispatch(func(v View) { v.Reset() })
}

// dispatch delivers one notification to the peers attached at the
// time of the call. Peers attached by a callback are kept for
// subsequent notifications; dropped peers are pruned afterwards.
func (n *Notifier) dispatch(f func(View)) {
	snapshot := n.peers
	dead := false
	for _, p := range snapshot {
		if !p.live() {
			dead = true
			continue
		}
		f(p.view)
	}
	if !dead {
		return
	}
	// Compact into a fresh array: a callback may have attached to
	// n.peers, and reusing the snapshot's backing array would
	// overwrite the attachment.
	kept := make([]*Peer, 0, len(n.peers))
	for _, p := range n.peers {
		if p.live() {
			kept = append(kept, p)
		}
	}
	n.peers = kept
}

var (
	errReadOnly   = goerrors.New("model is read-only")
	errOutOfRange = goerrors.New("row index out of range")
)

// reportReadOnlyWrite logs a write against a model that cannot accept
// it. UI code paths must stay robust to misconfiguration, so this is
// recoverable rather than fatal.
func reportReadOnlyWrite(op string, row int) {
	errors.Report(&errors.ReactiveError{
		Op:     op,
		Kind:   errors.KindReadOnlyModel,
		Err:    errReadOnly,
		Detail: fmt.Sprintf("row=%d", row),
	})
}

// reportOutOfRangeWrite logs a write addressed past the model's rows.
// Mutable models ignore such writes rather than failing.
func reportOutOfRangeWrite(op string, row, rowCount int) {
	errors.Report(&errors.ReactiveError{
		Op:     op,
		Kind:   errors.KindRowOutOfRange,
		Err:    errOutOfRange,
		Detail: fmt.Sprintf("row=%d rows=%d", row, rowCount),
	})
}
