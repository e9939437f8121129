package property

import (
	goerrors "errors"

	"github.com/go-drift/reactive/pkg/diagnostics"
	"github.com/go-drift/reactive/pkg/errors"
)

// node is the untyped dependency state shared by property cells and
// trackers: the dirty bit, the list of dependents that read this node,
// and the list of sources this node read during its last evaluation.
type node struct {
	dirty      bool
	evaluating bool
	constant   bool
	dead       bool

	// dependents are the nodes that read this node and must be
	// invalidated when it changes. Dead entries are pruned during the
	// next invalidation pass, not eagerly.
	dependents []*node

	// sources are the nodes this node read during its last binding or
	// tracker evaluation. The edges are dropped and re-recorded on
	// every evaluation, so a binding that stops reading a property
	// stops depending on it.
	sources []*node
}

func (n *node) live() bool { return !n.dead }

func (n *node) addDependent(d *node) {
	for _, existing := range n.dependents {
		if existing == d {
			return
		}
	}
	n.dependents = append(n.dependents, d)
}

func (n *node) removeDependent(d *node) {
	for i, existing := range n.dependents {
		if existing == d {
			n.dependents = append(n.dependents[:i], n.dependents[i+1:]...)
			return
		}
	}
}

// invalidate marks this node and, transitively, everything that read it
// as dirty. Marking is lazy: no recomputation happens here.
func (n *node) invalidate() {
	if n.dead || n.constant || n.dirty {
		return
	}
	n.dirty = true
	n.invalidateDependents()
}

// invalidateDependents propagates dirtiness to dependents without
// touching this node's own dirty bit. Dead dependents are pruned.
func (n *node) invalidateDependents() {
	diagnostics.CountInvalidation()
	kept := n.dependents[:0]
	for _, d := range n.dependents {
		if !d.live() {
			continue
		}
		kept = append(kept, d)
		d.invalidate()
	}
	n.dependents = kept
}

// detachSources removes this node from the dependent lists of
// everything it read during its previous evaluation.
func (n *node) detachSources() {
	for _, src := range n.sources {
		src.removeDependent(n)
	}
	n.sources = n.sources[:0]
}

// currentScope is the innermost active dependency-recording scope. The
// graph runs on a single goroutine by contract, so a package global is
// sufficient and lock-free.
var currentScope *node

// registerRead records that the currently evaluating scope, if any,
// read src.
func registerRead(src *node) {
	if src.constant || src.dead {
		return
	}
	dep := currentScope
	if dep == nil || dep == src {
		return
	}
	src.addDependent(dep)
	for _, existing := range dep.sources {
		if existing == src {
			return
		}
	}
	dep.sources = append(dep.sources, src)
}

// withScope runs f while dep records every property read in the call
// tree as one of its sources. The previous dependency set is dropped
// first, so the edges reflect exactly the reads of this evaluation.
func withScope(dep *node, f func()) {
	dep.detachSources()
	prev := currentScope
	currentScope = dep
	defer func() { currentScope = prev }()
	f()
}

// errCycle is the underlying error for cyclic binding reports.
var errCycle = goerrors.New("binding reads its own property")

// reportCycle reports a cyclic binding and aborts. A cycle in the
// dataflow graph would otherwise loop forever or silently return stale
// data, so this is a fatal programming error.
func reportCycle(op string) {
	err := &errors.ReactiveError{
		Op:         op,
		Kind:       errors.KindCyclicBinding,
		Err:        errCycle,
		StackTrace: errors.CaptureStack(),
	}
	errors.Report(err)
	panic(err)
}
