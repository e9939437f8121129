// Package testing provides deterministic test support for the reactive
// runtime: a controllable clock for animated properties and timers, a
// frame pump, and a notification recorder for model adapters.
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import reactivetest "github.com/go-drift/reactive/pkg/testing"
package testing
