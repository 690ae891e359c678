package arena

import "testing"

type widget struct {
	Name string
	N    int
}

func TestInsertGetRoundTrip(t *testing.T) {
	a := NewArena[widget]()

	k := a.Insert(widget{Name: "hans", N: 3})
	v, ok := a.Get(k)
	if !ok {
		t.Fatalf("Get after Insert failed for %v", k)
	}
	if v.Name != "hans" || v.N != 3 {
		t.Errorf("Got %+v, want {hans 3}", *v)
	}

	// Mutation through the pointer is visible on re-read
	v.N = 7
	v2, _ := a.Get(k)
	if v2.N != 7 {
		t.Errorf("Mutation lost: got N=%d, want 7", v2.N)
	}
}

func TestStaleKeyRejection(t *testing.T) {
	a := NewArena[widget]()

	k := a.Insert(widget{Name: "gone"})
	copied := k // copies of the key go stale together

	if _, ok := a.Remove(k); !ok {
		t.Fatal("First Remove failed")
	}
	if _, ok := a.Get(k); ok {
		t.Error("Get succeeded with stale key")
	}
	if _, ok := a.Get(copied); ok {
		t.Error("Get succeeded with stale key copy")
	}
	// Double-remove is a safe no-op
	if _, ok := a.Remove(k); ok {
		t.Error("Second Remove succeeded; want no-op")
	}
}

func TestBogusKeysNeverPanic(t *testing.T) {
	a := NewArena[widget]()
	a.Insert(widget{})

	outOfRange := NewKey[widget](999, 0)
	if _, ok := a.Get(outOfRange); ok {
		t.Error("Get succeeded with out-of-range index")
	}
	if _, ok := a.Remove(outOfRange); ok {
		t.Error("Remove succeeded with out-of-range index")
	}
	wrongGen := NewKey[widget](0, 42)
	if _, ok := a.Get(wrongGen); ok {
		t.Error("Get succeeded with wrong generation")
	}
}

func TestGenerationNonCollision(t *testing.T) {
	a := NewArena[widget]()

	keys := make([]Key[widget], 0, 8)
	for i := 0; i < 8; i++ {
		keys = append(keys, a.Insert(widget{N: i}))
	}

	victim := keys[3]
	a.Remove(victim)
	replacement := a.Insert(widget{N: 99})

	// Slot reuse: same index, strictly greater generation
	if replacement.Index() != victim.Index() {
		t.Fatalf("Freed slot not reused: replacement index %d, victim index %d",
			replacement.Index(), victim.Index())
	}
	if replacement.Generation() <= victim.Generation() {
		t.Errorf("Generation did not increase: old %d, new %d",
			victim.Generation(), replacement.Generation())
	}

	// The old key must not validate against the new occupant
	if _, ok := a.Get(victim); ok {
		t.Error("Stale key validated against reused slot")
	}
	v, ok := a.Get(replacement)
	if !ok || v.N != 99 {
		t.Errorf("New key lookup: got (%v, %v), want ({99}, true)", v, ok)
	}
}

func TestEachCompleteness(t *testing.T) {
	a := NewArena[widget]()
	for i := 0; i < 5; i++ {
		a.Insert(widget{N: i})
	}

	var got []int
	lastIdx := -1
	a.Each(func(k Key[widget], v *widget) bool {
		if int(k.Index()) <= lastIdx {
			t.Errorf("Traversal not in index order: %d after %d", k.Index(), lastIdx)
		}
		lastIdx = int(k.Index())
		got = append(got, v.N)
		return true
	})

	if len(got) != 5 {
		t.Fatalf("Each yielded %d values, want 5", len(got))
	}
	for i, n := range got {
		if n != i {
			t.Errorf("Position %d: got %d, want %d", i, n, i)
		}
	}
}

func TestEachExcludesRemoved(t *testing.T) {
	a := NewArena[widget]()
	keys := make([]Key[widget], 0, 5)
	for i := 0; i < 5; i++ {
		keys = append(keys, a.Insert(widget{N: i}))
	}
	a.Remove(keys[2])

	seen := 0
	a.Each(func(_ Key[widget], v *widget) bool {
		if v.N == 2 {
			t.Error("Each yielded a removed value")
		}
		seen++
		return true
	})
	if seen != 4 {
		t.Errorf("Each yielded %d values after removal, want 4", seen)
	}
}

func TestEachRestartableAndStoppable(t *testing.T) {
	a := NewArena[int]()
	for i := 0; i < 10; i++ {
		a.Insert(i)
	}

	first := 0
	a.Each(func(Key[int], *int) bool {
		first++
		return first < 3 // stop early
	})
	if first != 3 {
		t.Errorf("Early stop visited %d, want 3", first)
	}

	// A fresh call starts over and sees everything
	second := 0
	a.Each(func(Key[int], *int) bool {
		second++
		return true
	})
	if second != 10 {
		t.Errorf("Fresh traversal visited %d, want 10", second)
	}
}

func TestEachMutation(t *testing.T) {
	a := NewArena[widget]()
	for i := 0; i < 4; i++ {
		a.Insert(widget{N: i})
	}

	a.Each(func(_ Key[widget], v *widget) bool {
		v.N *= 10
		return true
	})

	sum := 0
	a.Each(func(_ Key[widget], v *widget) bool {
		sum += v.N
		return true
	})
	if sum != 60 { // 0+10+20+30
		t.Errorf("Sum after mutation: got %d, want 60", sum)
	}
}

func TestRetain(t *testing.T) {
	a := NewArena[int]()
	for i := 0; i < 10; i++ {
		a.Insert(i)
	}

	a.Retain(func(_ Key[int], v *int) bool {
		return *v%2 == 0
	})

	if a.Len() != 5 {
		t.Fatalf("Len after Retain: got %d, want 5", a.Len())
	}
	a.Each(func(_ Key[int], v *int) bool {
		if *v%2 != 0 {
			t.Errorf("Odd value %d survived Retain", *v)
		}
		return true
	})
}

func TestReserveKeepsKeysValid(t *testing.T) {
	a := NewArena[int]()
	k := a.Insert(42)
	a.Reserve(64)

	v, ok := a.Get(k)
	if !ok || *v != 42 {
		t.Errorf("Key invalidated by Reserve: got (%v, %v)", v, ok)
	}
	if a.Len() != 1 {
		t.Errorf("Len changed by Reserve: got %d, want 1", a.Len())
	}
	if a.Cap() < 65 {
		t.Errorf("Cap after Reserve(64): got %d, want >= 65", a.Cap())
	}
}

func TestGrowthReusesFreeListFirst(t *testing.T) {
	a := NewArena[int]()
	keys := make([]Key[int], 0, 16)
	for i := 0; i < 16; i++ {
		keys = append(keys, a.Insert(i))
	}
	capBefore := a.Cap()

	for _, k := range keys[4:8] {
		a.Remove(k)
	}
	for i := 0; i < 4; i++ {
		a.Insert(100 + i)
	}

	if a.Cap() != capBefore {
		t.Errorf("Arena grew (%d -> %d) although free slots were available",
			capBefore, a.Cap())
	}
	if a.Len() != 16 {
		t.Errorf("Len: got %d, want 16", a.Len())
	}
}

func TestClear(t *testing.T) {
	a := NewArena[widget]()
	k := a.Insert(widget{Name: "x"})
	a.Clear()

	if a.Len() != 0 || a.Cap() != 0 {
		t.Errorf("After Clear: len=%d cap=%d, want 0/0", a.Len(), a.Cap())
	}
	if _, ok := a.Get(k); ok {
		t.Error("Key validated after Clear")
	}
	// Arena stays usable
	k2 := a.Insert(widget{Name: "y"})
	if v, ok := a.Get(k2); !ok || v.Name != "y" {
		t.Error("Insert after Clear failed")
	}
}

func TestKeyEqualityAndOrder(t *testing.T) {
	k1 := NewKey[int](1, 0)
	k2 := NewKey[int](1, 0)
	k3 := NewKey[int](1, 1)
	k4 := NewKey[int](2, 0)

	if k1 != k2 {
		t.Error("Identical keys compare unequal")
	}
	if k1 == k3 {
		t.Error("Keys with different generations compare equal")
	}
	if !k1.Less(k3) || !k3.Less(k4) || k4.Less(k1) {
		t.Error("Key ordering is not (index, generation) lexicographic")
	}
}

func TestManyChurnCycles(t *testing.T) {
	a := NewArena[string]()
	live := make(map[Key[string]]string)

	for round := 0; round < 50; round++ {
		for i := 0; i < 20; i++ {
			s := string(rune('a' + i%26))
			live[a.Insert(s)] = s
		}
		// Remove every other live key
		i := 0
		for k := range live {
			if i%2 == 0 {
				if _, ok := a.Remove(k); !ok {
					t.Fatalf("Remove of live key %v failed", k)
				}
				delete(live, k)
			}
			i++
		}
	}

	if a.Len() != len(live) {
		t.Fatalf("Len %d does not match tracked live set %d", a.Len(), len(live))
	}
	for k, want := range live {
		v, ok := a.Get(k)
		if !ok || *v != want {
			t.Fatalf("Live key %v: got (%v, %v), want (%q, true)", k, v, ok, want)
		}
	}
}
