package property

// Tracker is a standalone dependency-recording scope, used by layout
// and rendering code to find out whether anything it read has changed
// since the last evaluation.
//
// A freshly created Tracker is dirty, so the first EvaluateIfDirty
// always runs.
type Tracker struct {
	node
}

// NewTracker creates a tracker ready for its first evaluation.
func NewTracker() *Tracker {
	t := &Tracker{}
	t.dirty = true
	return t
}

// Evaluate runs f, recording every property read in the call tree as a
// dependency of this tracker. When nested inside another evaluation,
// the tracker registers itself with the enclosing scope, so
// invalidations of this tracker are visible to the outer one.
func (t *Tracker) Evaluate(f func()) {
	registerRead(&t.node)
	withScope(&t.node, f)
	t.dirty = false
}

// EvaluateAsDependencyRoot runs f with dependency tracking isolated
// from any enclosing scope: changes to properties read here are
// invisible to outer trackers.
func (t *Tracker) EvaluateAsDependencyRoot(f func()) {
	prev := currentScope
	currentScope = nil
	defer func() { currentScope = prev }()
	t.Evaluate(f)
}

// EvaluateIfDirty runs f only if a tracked property changed since the
// last evaluation (or the tracker was never evaluated). Returns
// whether f ran.
func (t *Tracker) EvaluateIfDirty(f func()) bool {
	if !t.dirty {
		return false
	}
	t.Evaluate(f)
	return true
}

// IsDirty reports whether any tracked property changed since the last
// Evaluate.
func (t *Tracker) IsDirty() bool {
	return t.dirty
}

// Destroy detaches the tracker from the graph. Pending dependency
// edges are pruned lazily.
func (t *Tracker) Destroy() {
	t.detachSources()
	t.dead = true
	t.dependents = nil
}
