// Package engine is the frame-synchronous consumer layer around the
// arena core: a World owning the component registry and global
// resources, a priority-ordered system list, an event queue with a
// dispatch router, and a fixed-tick scheduler driving it all.
//
// The arena registry itself performs no locking; the engine upholds the
// single-owner-per-frame discipline by funneling all mutation through
// the scheduler's tick.
package engine

import (
	"time"

	"github.com/lixenwraith/slotarena/arena"
	"github.com/lixenwraith/slotarena/registry"
	"github.com/lixenwraith/slotarena/status"
)

// System is a per-tick unit of game/application logic.
type System interface {
	// Update runs once per tick with exclusive access to the world.
	Update(world *World, dt time.Duration)

	// Priority orders systems; lower values run first. TimingEarly,
	// TimingDefault and TimingLate are the conventional values.
	Priority() int
}

// World owns the component arenas, global resources and the system
// list. It is handed to systems one at a time during a tick; nothing in
// it is safe for concurrent mutation.
type World struct {
	Arenas    *arena.Arenas
	Resources *Resources

	systems *TimingQueue[System]
}

// NewWorld creates a world with an empty arena registry and applies all
// init-time capability bindings (see the registry package).
func NewWorld() *World {
	w := &World{
		Arenas:    arena.NewArenas(),
		Resources: NewResources(),
		systems:   NewTimingQueue[System](),
	}
	registry.Apply(w.Arenas)
	AddResource(w.Resources, &TimeResource{})
	AddResource(w.Resources, status.NewRegistry())
	return w
}

// AddSystem registers a system at its Priority in the update order.
// Registration order breaks ties. The returned key removes the system
// again.
func (w *World) AddSystem(s System) EntryKey {
	return w.systems.Insert(s, Timing(s.Priority()))
}

// RemoveSystem unregisters a previously added system.
// Returns false if the key is unknown or already removed.
func (w *World) RemoveSystem(key EntryKey) bool {
	_, ok := w.systems.Remove(key)
	return ok
}

// Update runs all systems in priority order.
func (w *World) Update(dt time.Duration) {
	w.systems.Each(func(s System) bool {
		s.Update(w, dt)
		return true
	})
}

// SystemCount returns the number of registered systems.
func (w *World) SystemCount() int { return w.systems.Len() }
