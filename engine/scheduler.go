package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/slotarena/status"
)

// Timing orders entries in a TimingQueue. Think of it as inverse
// priority: a higher timing value runs later in a schedule.
type Timing int

// Standard timings for update functions; consumers may use any value.
const (
	TimingEarly   Timing = -100
	TimingDefault Timing = 0
	TimingLate    Timing = 100
)

// EntryKey identifies one entry in a TimingQueue for later removal.
type EntryKey int32

type timingEntry[T any] struct {
	timing  Timing
	key     EntryKey
	element T
}

// TimingQueue keeps elements sorted ascending by Timing, stable for
// equal timings. It backs the World's ordered system list; insertion
// and removal are rare (setup time), iteration is per-tick.
type TimingQueue[T any] struct {
	nextKey EntryKey
	entries []timingEntry[T]
}

// NewTimingQueue creates an empty queue.
func NewTimingQueue[T any]() *TimingQueue[T] {
	return &TimingQueue[T]{}
}

// Insert adds element at the given timing and returns its removal key.
// Elements with equal timing keep insertion order.
func (q *TimingQueue[T]) Insert(element T, timing Timing) EntryKey {
	key := q.nextKey
	q.nextKey++
	entry := timingEntry[T]{timing: timing, key: key, element: element}

	at := len(q.entries)
	for i, e := range q.entries {
		if e.timing > timing {
			at = i
			break
		}
	}
	q.entries = append(q.entries, timingEntry[T]{})
	copy(q.entries[at+1:], q.entries[at:])
	q.entries[at] = entry
	return key
}

// Remove deletes the entry with the given key.
// Returns (zero, false) if the key is not present.
func (q *TimingQueue[T]) Remove(key EntryKey) (T, bool) {
	for i, e := range q.entries {
		if e.key == key {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e.element, true
		}
	}
	var zero T
	return zero, false
}

// Each visits elements in timing order.
func (q *TimingQueue[T]) Each(fn func(T) bool) {
	for i := range q.entries {
		if !fn(q.entries[i].element) {
			return
		}
	}
}

// Len returns the number of entries.
func (q *TimingQueue[T]) Len() int { return len(q.entries) }

// Scheduler drives a world on a fixed tick: dispatch queued events,
// advance the time resource, run systems. It owns the only goroutine
// that mutates the world, which is what lets the arena core stay
// lock-free.
type Scheduler struct {
	world  *World
	router *Router
	queue  *EventQueue

	tickInterval time.Duration
	timeRes      *TimeResource

	tickCount atomic.Uint64
	running   atomic.Bool
	stopChan  chan struct{}
	wg        sync.WaitGroup

	// Cached metric pointers; writes per tick are lock-free.
	statTicks   *atomic.Int64
	statEvents  *atomic.Int64
	statTickSec *status.AtomicFloat
}

// NewScheduler creates a scheduler for world with the given tick
// interval. The scheduler creates and owns the event queue; use Queue
// to hand it to producers.
func NewScheduler(world *World, tickInterval time.Duration) *Scheduler {
	queue := NewEventQueue(0)
	statusReg := MustGetResource[*status.Registry](world.Resources)
	return &Scheduler{
		world:        world,
		router:       NewRouter(queue),
		queue:        queue,
		tickInterval: tickInterval,
		timeRes:      MustGetResource[*TimeResource](world.Resources),
		stopChan:     make(chan struct{}),
		statTicks:    statusReg.Ints.Get("engine.ticks"),
		statEvents:   statusReg.Ints.Get("engine.events.dispatched"),
		statTickSec:  statusReg.Floats.Get("engine.tick.seconds"),
	}
}

// Queue returns the event queue producers push into.
func (s *Scheduler) Queue() *EventQueue { return s.queue }

// RegisterHandler adds an event handler. Call before Start.
func (s *Scheduler) RegisterHandler(h Handler) {
	s.router.Register(h)
}

// Start launches the tick loop on its own goroutine.
// Calling Start on a running scheduler is a no-op.
func (s *Scheduler) Start() {
	if !s.running.CompareAndSwap(false, true) {
		return
	}
	s.wg.Add(1)
	go s.run()
}

func (s *Scheduler) run() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}

// Tick runs one frame: time advance, event dispatch, system updates.
// Exposed so tests and external drivers (a render loop that owns frame
// pacing) can drive the world without the internal goroutine.
func (s *Scheduler) Tick(now time.Time) {
	s.timeRes.advance(now)
	dispatched := s.router.DispatchAll(s.world)
	s.world.Update(s.timeRes.Delta)
	s.tickCount.Add(1)
	s.statTicks.Add(1)
	s.statEvents.Add(int64(dispatched))
	s.statTickSec.Set(s.timeRes.Delta.Seconds())
}

// Stop halts the tick loop and waits for the in-flight tick to finish.
// Stopping an already stopped scheduler is a no-op, and a stopped
// scheduler can be started again.
func (s *Scheduler) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		return
	}
	close(s.stopChan)
	s.wg.Wait()
	// Fresh channel for the next Start/Stop cycle; the loop goroutine
	// has exited by now, so nobody reads the old one.
	s.stopChan = make(chan struct{})
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.tickCount.Load()
}
