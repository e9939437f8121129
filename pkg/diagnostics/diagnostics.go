// Package diagnostics provides opt-in counters for the reactive graph
// and a YAML-loadable configuration for enabling them.
package diagnostics

import "sync"

var (
	mu      sync.Mutex
	enabled bool
	counts  Snapshot
)

// Snapshot is a point-in-time copy of the runtime counters.
type Snapshot struct {
	// Evaluations is the number of binding recomputations.
	Evaluations uint64 `yaml:"evaluations"`
	// Invalidations is the number of dirty-propagation passes.
	Invalidations uint64 `yaml:"invalidations"`
	// AdapterOps is the number of incremental re-index operations
	// performed by model adapters.
	AdapterOps uint64 `yaml:"adapterOps"`
	// Instantiations is the number of component instances created by
	// repeaters.
	Instantiations uint64 `yaml:"instantiations"`
}

// Enable turns counting on. Counting is off by default; the counters
// cost one mutex acquisition per graph operation when enabled.
func Enable() {
	mu.Lock()
	enabled = true
	mu.Unlock()
}

// Disable turns counting off without clearing the counters.
func Disable() {
	mu.Lock()
	enabled = false
	mu.Unlock()
}

// Enabled reports whether counting is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

// Take returns a copy of the current counters.
func Take() Snapshot {
	mu.Lock()
	defer mu.Unlock()
	return counts
}

// Reset clears the counters.
func Reset() {
	mu.Lock()
	counts = Snapshot{}
	mu.Unlock()
}

// CountEvaluation records one binding recomputation.
func CountEvaluation() {
	if !enabled {
		return
	}
	mu.Lock()
	if enabled {
		counts.Evaluations++
	}
	mu.Unlock()
}

// CountInvalidation records one dirty-propagation pass.
func CountInvalidation() {
	if !enabled {
		return
	}
	mu.Lock()
	if enabled {
		counts.Invalidations++
	}
	mu.Unlock()
}

// CountAdapterOp records one incremental adapter re-index.
func CountAdapterOp() {
	if !enabled {
		return
	}
	mu.Lock()
	if enabled {
		counts.AdapterOps++
	}
	mu.Unlock()
}

// CountInstantiation records one repeater instance creation.
func CountInstantiation() {
	if !enabled {
		return
	}
	mu.Lock()
	if enabled {
		counts.Instantiations++
	}
	mu.Unlock()
}
