// Package property implements the dependency-tracked property graph at
// the heart of the reactive runtime.
//
// A [Property] is a mutable storage location with a dirty bit and an
// optional binding that recomputes its value on demand. Reading a
// property inside a binding evaluation or a [Tracker] scope records a
// dependency edge; writing a property lazily invalidates everything
// that read it. Recomputation happens only at the next Get, so the cost
// of a write is bounded by the number of dependents actually marked.
//
// The graph is single-threaded by contract: all reads and writes must
// happen on the UI goroutine. Cross-goroutine updates go through
// platform.Dispatch. In debug mode violations are detected and treated
// as fatal.
package property
