package testing

import (
	"fmt"

	"github.com/go-drift/reactive/pkg/model"
)

// ModelRecorder is a model.View that records every notification as a
// formatted string, for asserting on adapter output ordering.
type ModelRecorder struct {
	Events []string
}

// Observe attaches the recorder to a model and returns the peer so the
// test can drop it.
func (r *ModelRecorder) Observe(m interface{ AttachPeer(*model.Peer) }) *model.Peer {
	peer := model.NewPeer(r)
	m.AttachPeer(peer)
	return peer
}

func (r *ModelRecorder) RowChanged(row int) {
	r.Events = append(r.Events, fmt.Sprintf("changed(%d)", row))
}

func (r *ModelRecorder) RowAdded(index, count int) {
	r.Events = append(r.Events, fmt.Sprintf("added(%d,%d)", index, count))
}

func (r *ModelRecorder) RowRemoved(index, count int) {
	r.Events = append(r.Events, fmt.Sprintf("removed(%d,%d)", index, count))
}

func (r *ModelRecorder) Reset() {
	r.Events = append(r.Events, "reset")
}

// Take returns the recorded events and clears the log.
func (r *ModelRecorder) Take() []string {
	events := r.Events
	r.Events = nil
	return events
}
