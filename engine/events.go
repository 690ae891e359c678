package engine

import "sync"

// EventType identifies a kind of event. Consumers define their own
// constants; the engine reserves nothing.
type EventType int

// Event is one queued occurrence. Payload is consumer-defined and may
// be nil.
type Event struct {
	Type    EventType
	Payload any

	// Tick records when the event was pushed, for staleness checks.
	Tick uint64
}

// EventQueue is a bounded FIFO of events. Pushes may come from any
// goroutine (input readers, timers); consumption happens on the tick
// goroutine only. When full, the oldest event is dropped so producers
// never block the frame.
type EventQueue struct {
	mu      sync.Mutex
	events  []Event
	cap     int
	dropped uint64
}

// DefaultEventQueueCap bounds the queue when no capacity is given.
const DefaultEventQueueCap = 256

// NewEventQueue creates a queue holding at most capacity events.
// capacity <= 0 selects DefaultEventQueueCap.
func NewEventQueue(capacity int) *EventQueue {
	if capacity <= 0 {
		capacity = DefaultEventQueueCap
	}
	return &EventQueue{events: make([]Event, 0, capacity), cap: capacity}
}

// Push appends an event, evicting the oldest when the queue is full.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == q.cap {
		copy(q.events, q.events[1:])
		q.events = q.events[:len(q.events)-1]
		q.dropped++
	}
	q.events = append(q.events, ev)
}

// Consume drains all pending events in FIFO order.
func (q *EventQueue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := make([]Event, len(q.events))
	copy(out, q.events)
	q.events = q.events[:0]
	return out
}

// Len returns the number of pending events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped returns the number of events evicted by overflow.
func (q *EventQueue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Handler processes routed events. Systems implement this to receive
// events before World.Update runs.
type Handler interface {
	// HandleEvent processes one event, synchronously on the tick
	// goroutine.
	HandleEvent(world *World, ev Event)

	// EventTypes returns the types this handler wants.
	EventTypes() []EventType
}

// Router dispatches queued events to registered handlers.
// Dispatch is single-threaded; handlers for one event run in
// registration order before the next event is considered.
type Router struct {
	handlers map[EventType][]Handler
	queue    *EventQueue
}

// NewRouter creates a router attached to the given queue.
func NewRouter(queue *EventQueue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for each of its declared event types.
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes all pending events, routes them, and returns
// the number of events processed. Called once per tick, before
// World.Update.
func (r *Router) DispatchAll(world *World) int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(world, ev)
		}
	}
	return len(events)
}

// HandlerCount returns the number of handlers for t.
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t])
}
