package registry

import (
	"testing"

	"github.com/lixenwraith/slotarena/arena"
)

type blip struct{ N int }

func (b *blip) Bump() { b.N++ }

type bumper interface{ Bump() }

func TestBindApply(t *testing.T) {
	before := Count()
	Bind(func(as *arena.Arenas) {
		arena.Implements[bumper, blip](as)
	})
	if Count() != before+1 {
		t.Fatalf("Count: got %d, want %d", Count(), before+1)
	}

	as := arena.NewArenas()
	Apply(as)
	arena.Insert(as, blip{})

	n := 0
	arena.EachCapability(as, func(b bumper) bool {
		b.Bump()
		n++
		return true
	})
	if n != 1 {
		t.Errorf("Capability iteration after Apply yielded %d, want 1", n)
	}

	// Re-applying must not double-register
	Apply(as)
	n = 0
	arena.EachCapability(as, func(bumper) bool {
		n++
		return true
	})
	if n != 1 {
		t.Errorf("Re-Apply double-yielded: got %d, want 1", n)
	}
}
