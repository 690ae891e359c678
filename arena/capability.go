package arena

import (
	"fmt"
	"reflect"
)

// capabilityTable records, per capability (an interface type), which
// concrete types registered an implementation, in registration order.
// It holds no per-instance state: iteration resolves arenas at call time,
// so types registered before any value exists simply contribute nothing.
type capabilityTable struct {
	impls map[reflect.Type][]reflect.Type
	seen  map[capKey]struct{}
}

type capKey struct {
	capability reflect.Type
	concrete   reflect.Type
}

func newCapabilityTable() capabilityTable {
	return capabilityTable{
		impls: make(map[reflect.Type][]reflect.Type),
		seen:  make(map[capKey]struct{}),
	}
}

func (t *capabilityTable) register(capability, concrete reflect.Type) {
	k := capKey{capability: capability, concrete: concrete}
	if _, dup := t.seen[k]; dup {
		// Re-registration is a no-op; a duplicate entry would make
		// iteration yield every value of the type twice.
		return
	}
	t.seen[k] = struct{}{}
	t.impls[capability] = append(t.impls[capability], concrete)
}

// Implements registers concrete type T as an implementor of capability C
// for this registry. C must be an interface type and *T must satisfy it;
// either violation is a programming error and panics at registration
// time, before any iteration can observe torn state. Registering the
// same (C, T) pair again is a no-op.
//
// Registration is what makes values of T visible to EachCapability[C];
// it can happen before or after the first value of T is inserted, but
// must happen before iteration is expected to yield them.
func Implements[C any, T any](as *Arenas) {
	capability := typeOf[C]()
	if capability.Kind() != reflect.Interface {
		panic(fmt.Sprintf("arena: capability %v is not an interface type", capability))
	}
	concrete := typeOf[T]()
	if !reflect.PointerTo(concrete).Implements(capability) {
		panic(fmt.Sprintf("arena: *%v does not implement %v", concrete, capability))
	}
	as.caps.register(capability, concrete)
}

// EachCapability visits every stored value whose concrete type
// registered capability C, yielding the capability view. Traversal
// order is deterministic: types in registration order, then slot index
// order within each type's arena; singletons of registered types come
// after that type's arena values.
//
// The yielded interface is backed by a pointer into the slot, so
// methods with pointer receivers mutate the stored value in place.
// A capability with no registered implementors (or none with live
// values) yields an empty traversal, not an error.
//
// Do not insert or remove values of the visited types during traversal.
func EachCapability[C any](as *Arenas, fn func(C) bool) {
	capability := typeOf[C]()
	for _, concrete := range as.caps.impls[capability] {
		stop := false
		if u, ok := as.arenas[concrete]; ok {
			u.eachPtr(func(p any) bool {
				if !fn(p.(C)) {
					stop = true
				}
				return !stop
			})
		}
		if stop {
			return
		}
		if s, ok := as.singletons[concrete]; ok {
			if !fn(s.(C)) {
				return
			}
		}
	}
}

// CapabilityCount returns the number of live values EachCapability[C]
// would yield. Useful for sizing frame-local buffers.
func CapabilityCount[C any](as *Arenas) int {
	n := 0
	for _, concrete := range as.caps.impls[typeOf[C]()] {
		if u, ok := as.arenas[concrete]; ok {
			n += u.length()
		}
		if _, ok := as.singletons[concrete]; ok {
			n++
		}
	}
	return n
}

// Implementors returns the concrete types registered for capability C,
// in registration order.
func Implementors[C any](as *Arenas) []reflect.Type {
	impls := as.caps.impls[typeOf[C]()]
	out := make([]reflect.Type, len(impls))
	copy(out, impls)
	return out
}
