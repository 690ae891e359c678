// Package registry collects component bindings at init time so that any
// package can declare "type X implements capability Y" without a central
// list of types. Bindings are applied when a fresh Arenas registry (or a
// World wrapping one) is built.
//
// Usage, from a component-defining package:
//
//	func init() {
//	    registry.Bind(func(as *arena.Arenas) {
//	        arena.Implements[Renderable, Bouncer](as)
//	    })
//	}
package registry

import (
	"sync"

	"github.com/lixenwraith/slotarena/arena"
)

// Binding applies one or more capability registrations to a registry.
type Binding func(*arena.Arenas)

var (
	mu       sync.Mutex
	bindings []Binding
)

// Bind records a binding. Safe to call from init() in any package;
// order of application is order of registration.
func Bind(b Binding) {
	mu.Lock()
	defer mu.Unlock()
	bindings = append(bindings, b)
}

// Apply runs every recorded binding against as.
// Re-applying is harmless: capability registration is idempotent.
func Apply(as *arena.Arenas) {
	mu.Lock()
	defer mu.Unlock()
	for _, b := range bindings {
		b(as)
	}
}

// Count returns the number of recorded bindings.
func Count() int {
	mu.Lock()
	defer mu.Unlock()
	return len(bindings)
}
