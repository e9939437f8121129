package platform

// DebugChecks controls whether goroutine-affinity violations are
// detected. When true, mutating the property graph or a model from a
// goroutine other than the attached loop's is reported and panics.
// Production builds may disable the check for performance; misuse then
// races undetected, which is the documented cost of turning it off.
var DebugChecks = true

// SetDebugChecks enables or disables affinity checking.
func SetDebugChecks(debug bool) {
	DebugChecks = debug
}
