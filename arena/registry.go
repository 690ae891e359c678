package arena

import "reflect"

// Arenas is the registry: one arena per concrete type, created lazily on
// first insertion and keyed by the type's identity. Callers never declare
// component types up front; any package can insert its own structs.
//
// Arenas is not safe for concurrent use. The intended discipline is one
// owner per frame (see package comment).
type Arenas struct {
	arenas map[reflect.Type]untypedArena

	// order records arena creation order, keeping any cross-arena
	// traversal deterministic across runs (map iteration order is not).
	order []reflect.Type

	caps       capabilityTable
	singletons map[reflect.Type]any
}

// NewArenas creates an empty registry.
func NewArenas() *Arenas {
	return &Arenas{
		arenas:     make(map[reflect.Type]untypedArena),
		caps:       newCapabilityTable(),
		singletons: make(map[reflect.Type]any),
	}
}

// lookup finds the arena for T without creating it.
func lookup[T any](as *Arenas) (*Arena[T], bool) {
	u, ok := as.arenas[typeOf[T]()]
	if !ok {
		return nil, false
	}
	return typedArena[T](u), true
}

// ArenaFor returns the arena for T, creating an empty one on first use.
// The returned arena is the live storage, not a copy.
func ArenaFor[T any](as *Arenas) *Arena[T] {
	t := typeOf[T]()
	if u, ok := as.arenas[t]; ok {
		return typedArena[T](u)
	}
	a := NewArena[T]()
	as.arenas[t] = a
	as.order = append(as.order, t)
	return a
}

// Insert stores v in the arena for T (created lazily) and returns an
// owned key. The owned key is the handle for removal and guaranteed
// access; pass copies of key.Key() around freely.
func Insert[T any](as *Arenas, v T) OwnedKey[T] {
	return OwnedKey[T]{key: ArenaFor[T](as).Insert(v)}
}

// Get returns a pointer to the value for k, or (nil, false) if no arena
// for T exists or the key is stale. Never creates an arena.
func Get[T any](as *Arenas, k Key[T]) (*T, bool) {
	a, ok := lookup[T](as)
	if !ok {
		return nil, false
	}
	return a.Get(k)
}

// MustGet returns the value for an owned key. The owned-key contract
// says the value is present; a miss means the contract was broken
// (key copied and removed, or used after FreeArena), which is fatal.
func MustGet[T any](as *Arenas, k OwnedKey[T]) *T {
	v, ok := Get(as, k.key)
	if !ok {
		panic("arena: owned key does not resolve: " + k.String())
	}
	return v
}

// Remove consumes the owned key and extracts its value. Returns
// (zero, false) if the value is already gone. After Remove, every copy
// of the underlying Key is stale.
func Remove[T any](as *Arenas, k OwnedKey[T]) (T, bool) {
	a, ok := lookup[T](as)
	if !ok {
		var zero T
		return zero, false
	}
	return a.Remove(k.key)
}

// EachOf visits every live value of type T, in index order.
// A type that was never inserted yields an empty traversal.
func EachOf[T any](as *Arenas, fn func(Key[T], *T) bool) {
	if a, ok := lookup[T](as); ok {
		a.Each(fn)
	}
}

// CountOf returns the number of live values of type T.
func CountOf[T any](as *Arenas) int {
	a, ok := lookup[T](as)
	if !ok {
		return 0
	}
	return a.Len()
}

// FreeArena drops the entire arena for T: every stored value, the slot
// table, and the registry entry. Calling it for a never-used type is a
// no-op.
//
// Outstanding OwnedKeys for T are the caller's responsibility: using one
// after FreeArena resolves against a fresh arena whose generations
// restarted, so it must not be done. The registry does not track arena
// epochs to detect this.
func FreeArena[T any](as *Arenas) {
	t := typeOf[T]()
	u, ok := as.arenas[t]
	if !ok {
		return
	}
	u.clear()
	delete(as.arenas, t)
	for i, ot := range as.order {
		if ot == t {
			as.order = append(as.order[:i], as.order[i+1:]...)
			break
		}
	}
}

// ArenaCount returns the number of per-type arenas currently held.
func (as *Arenas) ArenaCount() int { return len(as.arenas) }

// Total returns the number of live values across all arenas.
func (as *Arenas) Total() int {
	n := 0
	for _, u := range as.arenas {
		n += u.length()
	}
	return n
}

// Clear drops every arena and singleton. Capability registrations are
// kept: they describe types, not instances.
func (as *Arenas) Clear() {
	for _, u := range as.arenas {
		u.clear()
	}
	as.arenas = make(map[reflect.Type]untypedArena)
	as.order = as.order[:0]
	as.singletons = make(map[reflect.Type]any)
}
