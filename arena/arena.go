// Package arena provides generational slot-map storage for arbitrary
// component types, a type-erased registry that holds one arena per
// concrete type, and capability iteration over every stored value whose
// type registered an interface implementation.
//
// The package is designed for single-threaded, frame-synchronous use:
// one owner (the per-frame driver) holds the registry for the duration
// of a frame. No operation locks, blocks, or spawns goroutines.
package arena

import "fmt"

// noFreeSlot terminates the intrusive free list.
const noFreeSlot = ^uint32(0)

// slot is one storage cell. Exactly one of the two states holds:
// occupied (generation + value) or free (generation + free-list link).
// The generation only ever increases, so a key issued for an earlier
// occupancy of the same index can never validate again.
type slot[T any] struct {
	occupied   bool
	generation uint32
	nextFree   uint32
	value      T
}

// Arena is a growable slot table for values of a single type T.
// Insert returns a Key that stays valid until the value is removed;
// lookups with stale keys report absence instead of panicking.
//
// The zero value is not valid; use NewArena, which initializes the
// free-list sentinel.
type Arena[T any] struct {
	slots    []slot[T]
	freeHead uint32
	count    int
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{freeHead: noFreeSlot}
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int { return a.count }

// Cap returns the number of slots, live or free.
func (a *Arena[T]) Cap() int { return len(a.slots) }

// Reserve appends n free slots, linking them into the free list.
// Existing keys and indices are unaffected.
func (a *Arena[T]) Reserve(n int) {
	start := len(a.slots)
	for i := 0; i < n; i++ {
		idx := start + i
		next := uint32(idx + 1)
		if i == n-1 {
			next = a.freeHead
		}
		a.slots = append(a.slots, slot[T]{nextFree: next})
	}
	if n > 0 {
		a.freeHead = uint32(start)
	}
}

// Insert stores v and returns its key. O(1) amortized: a free slot is
// reused if available (the key carries the slot's bumped generation),
// otherwise the table grows by doubling.
func (a *Arena[T]) Insert(v T) Key[T] {
	if a.freeHead == noFreeSlot {
		// Doubling keeps insertion O(1) amortized; at least one slot.
		a.Reserve(max(len(a.slots), 1))
	}
	idx := a.freeHead
	s := &a.slots[idx]
	if s.occupied {
		panic("arena: corrupt free list")
	}
	a.freeHead = s.nextFree
	s.occupied = true
	s.nextFree = noFreeSlot
	s.value = v
	a.count++
	return Key[T]{index: idx, generation: s.generation}
}

// Get returns a pointer to the value for k, or (nil, false) if the key
// is out of range, the slot is free, or the generation does not match.
// Stale keys are routine, not errors.
//
// The pointer is valid until the next Insert or Reserve on this arena
// (growth may move the slot table); do not retain it across inserts.
func (a *Arena[T]) Get(k Key[T]) (*T, bool) {
	if int(k.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[k.index]
	if !s.occupied || s.generation != k.generation {
		return nil, false
	}
	return &s.value, true
}

// Contains reports whether k refers to a live value.
func (a *Arena[T]) Contains(k Key[T]) bool {
	_, ok := a.Get(k)
	return ok
}

// Remove extracts the value for k, frees the slot and bumps its
// generation so every copy of k goes permanently stale. Returns
// (zero, false) on a stale or bogus key; double-remove is a safe no-op.
func (a *Arena[T]) Remove(k Key[T]) (T, bool) {
	var zero T
	if int(k.index) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[k.index]
	if !s.occupied || s.generation != k.generation {
		return zero, false
	}
	v := s.value
	s.value = zero // release references held by the value
	s.occupied = false
	s.generation++
	s.nextFree = a.freeHead
	a.freeHead = k.index
	a.count--
	return v, true
}

// Each visits every live value in index order, yielding the key and a
// pointer to the value. Returning false from fn stops the traversal.
// Each call starts a fresh traversal. Mutating through the pointer is
// allowed; inserting or removing during the traversal is not.
func (a *Arena[T]) Each(fn func(Key[T], *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.occupied {
			continue
		}
		k := Key[T]{index: uint32(i), generation: s.generation}
		if !fn(k, &s.value) {
			return
		}
	}
}

// Retain removes every live value for which pred returns false.
func (a *Arena[T]) Retain(pred func(Key[T], *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.occupied {
			continue
		}
		k := Key[T]{index: uint32(i), generation: s.generation}
		if !pred(k, &s.value) {
			a.Remove(k)
		}
	}
}

// Clear removes all values and releases the slot table.
// All outstanding keys for this arena go stale: the table restarts
// empty, but per-slot generations restart too, so keys from before a
// Clear must not be used again (caller responsibility, see FreeArena).
func (a *Arena[T]) Clear() {
	a.slots = nil
	a.freeHead = noFreeSlot
	a.count = 0
}

func (a *Arena[T]) String() string {
	return fmt.Sprintf("Arena[%s]{len: %d, cap: %d}", typeName[T](), a.count, len(a.slots))
}
