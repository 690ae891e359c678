package arena

import "fmt"

// Key identifies one logical slot in an Arena[T].
// It pairs a slot index with the generation the slot had when the value
// was inserted. A key is plain data: copyable, comparable with ==, and
// never grants access by itself. After the slot is removed and reused,
// every copy of the old key stops validating (generation mismatch).
type Key[T any] struct {
	index      uint32
	generation uint32
}

// NewKey constructs a key from raw parts.
// Normally keys come from Insert; this exists for serialization and tests.
func NewKey[T any](index, generation uint32) Key[T] {
	return Key[T]{index: index, generation: generation}
}

// Index returns the slot index of the key.
func (k Key[T]) Index() uint32 { return k.index }

// Generation returns the generation the key was issued with.
func (k Key[T]) Generation() uint32 { return k.generation }

// Less orders keys by (index, generation).
// Two keys are equal (==) iff both index and generation match.
func (k Key[T]) Less(other Key[T]) bool {
	if k.index != other.index {
		return k.index < other.index
	}
	return k.generation < other.generation
}

func (k Key[T]) String() string {
	return fmt.Sprintf("Key(%d:%d)", k.index, k.generation)
}

// OwnedKey is a key whose possession asserts the referenced value is live.
// It is the only key form accepted by Remove and MustGet, and Remove takes
// it by value so the caller naturally gives it up.
//
// Go has no move-only types, so the single-owner discipline is a contract,
// not a compiler guarantee: do not copy an OwnedKey, and do not use one
// after passing it to Remove. The generation check still catches violations
// (a consumed OwnedKey stops validating like any stale key). Reclamation is
// explicit: dropping an OwnedKey without calling Remove leaks the slot
// until FreeArena or Clear.
type OwnedKey[T any] struct {
	key Key[T]
}

// Key returns the shareable, non-owning form of the key.
// Any number of plain keys may be handed out; they all go stale together
// when the owned key is consumed by Remove.
func (o OwnedKey[T]) Key() Key[T] { return o.key }

func (o OwnedKey[T]) String() string {
	return fmt.Sprintf("Owned%s", o.key)
}
